package flashstore

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrations returns the goose migrations creating the toast_flash table.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// DB is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	upsertFlash = `INSERT INTO toast_flash (key, data, expires_at) VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, expires_at = EXCLUDED.expires_at`
	popFlash           = `DELETE FROM toast_flash WHERE key = $1 RETURNING data, expires_at`
	deleteFlash        = `DELETE FROM toast_flash WHERE key = $1`
	deleteExpiredFlash = `DELETE FROM toast_flash WHERE expires_at <= $1`
)

// Postgres stores toast lists in the toast_flash table. Apply Migrations
// before use.
type Postgres struct {
	db  DB
	now func() time.Time
}

// NewPostgres creates a PostgreSQL backend. It panics when db is nil.
func NewPostgres(db DB) *Postgres {
	if db == nil {
		panic(ErrNilClient)
	}
	return &Postgres{db: db, now: time.Now}
}

func (b *Postgres) Save(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if _, err := b.db.Exec(ctx, upsertFlash, key, data, b.now().Add(ttl)); err != nil {
		return errors.Join(ErrBackend, err)
	}
	return nil
}

// Pop deletes the row and returns its data in one statement. Expired rows
// are removed and reported as missing.
func (b *Postgres) Pop(ctx context.Context, key string) ([]byte, error) {
	var (
		data      []byte
		expiresAt time.Time
	)
	err := b.db.QueryRow(ctx, popFlash, key).Scan(&data, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrBackend, err)
	}
	if !expiresAt.After(b.now()) {
		return nil, nil
	}
	return data, nil
}

func (b *Postgres) Delete(ctx context.Context, key string) error {
	if _, err := b.db.Exec(ctx, deleteFlash, key); err != nil {
		return errors.Join(ErrBackend, err)
	}
	return nil
}

// DeleteExpired removes expired rows and returns how many were deleted.
func (b *Postgres) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := b.db.Exec(ctx, deleteExpiredFlash, b.now())
	if err != nil {
		return 0, errors.Join(ErrBackend, err)
	}
	return tag.RowsAffected(), nil
}
