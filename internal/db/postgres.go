// Package db builds the PostgreSQL and Redis connections the ingest service
// runs on.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool sizing for the posting store. Ingestion is short bursts of
// lookup-then-write pairs plus the periodic expiry sweep, so a small pool is
// plenty.
const (
	pgMaxConns        = 8
	pgMinConns        = 1
	pgMaxConnIdleTime = 5 * time.Minute
)

// PoolConfig parses databaseURL and applies the ingest service's pool tuning.
func PoolConfig(databaseURL string) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	cfg.MaxConns = pgMaxConns
	cfg.MinConns = pgMinConns
	cfg.MaxConnIdleTime = pgMaxConnIdleTime
	return cfg, nil
}

// NewPostgresPool opens the posting-store pool and verifies connectivity.
func NewPostgresPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := PoolConfig(databaseURL)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open posting store pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("posting store ping failed: %w", err)
	}

	return pool, nil
}
