// Package pg connects to PostgreSQL through a pgx pool and applies goose
// migrations from an fs.FS. Healthcheck plugs the pool into a health endpoint.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, flashstore.Migrations(), log); err != nil {
//	    return err
//	}
//
// Migrate serializes callers since goose keeps its settings in package globals.
package pg
