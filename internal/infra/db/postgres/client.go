package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &DB{Pool: pool}, nil
}

func (db *DB) Close() { db.Pool.Close() }

const schema = `
CREATE TABLE IF NOT EXISTS quotations (
	id UUID PRIMARY KEY,
	quotation_no TEXT NOT NULL,
	date DATE NOT NULL,
	customer_name TEXT NOT NULL,
	customer_address TEXT NOT NULL,
	bike_reg_no TEXT NOT NULL DEFAULT '',
	items JSONB NOT NULL,
	total_amount NUMERIC(12,2) NOT NULL,
	remarks TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS quotations_quotation_no_idx ON quotations (quotation_no);
`

// Migrate applies the schema. Idempotent, runs at startup.
func (db *DB) Migrate(ctx context.Context) error {
	_, err := db.Pool.Exec(ctx, schema)
	return err
}
