// Package flashstore provides server-side toast.Backend implementations for
// Redis, PostgreSQL and MongoDB.
//
// Every backend reads and deletes a key in one server-side operation (GETDEL,
// DELETE ... RETURNING, FindOneAndDelete), so a stored list is delivered at
// most once even when two requests of one client race.
//
//	backend := flashstore.NewRedis(client)
//	store := toast.NewServerStore(backend, cookies, "", 5*time.Minute)
//
// The PostgreSQL backend needs the toast_flash table; apply Migrations with
// pg.Migrate at startup.
package flashstore
