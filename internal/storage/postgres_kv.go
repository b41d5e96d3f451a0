package storage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxIface is the subset of pgxpool.Pool the KV needs; pgxmock satisfies it
// in tests.
type PgxIface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresKV struct {
	db PgxIface
}

// NewPostgresKV returns a KV stored in a single admin_state table. TTLs are
// not supported by this backend and are ignored.
func NewPostgresKV(db PgxIface) *PostgresKV {
	return &PostgresKV{db: db}
}

// Migrate creates the backing table if it does not exist.
func (p *PostgresKV) Migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS admin_state (
			key TEXT PRIMARY KEY,
			value JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	_, err := p.db.Exec(ctx, query)
	return err
}

func (p *PostgresKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	query := `SELECT value FROM admin_state WHERE key = $1`
	err := p.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (p *PostgresKV) Set(ctx context.Context, key string, value []byte, _ time.Duration) error {
	query := `
		INSERT INTO admin_state (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()
	`
	_, err := p.db.Exec(ctx, query, key, value)
	return err
}

func (p *PostgresKV) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM admin_state WHERE key = $1`
	_, err := p.db.Exec(ctx, query, key)
	return err
}
