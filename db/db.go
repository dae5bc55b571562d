// Package db provides database connectivity for the lichen application.
// It turns the configured DSN into a pgxpool.Pool that the feature packages
// share for the lifetime of the process. All durable state lives behind this
// pool; the process itself holds nothing.
package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/lichen-go/apperror"
	"github.com/user/lichen-go/config"
)

// NewPool establishes a PostgreSQL connection pool from the configured DSN.
//
// The pool is configured with the max connection count from DBConfig plus
// idle/lifetime limits, and the connection is verified with a ping before
// the pool is handed to callers, so a bad DSN fails at startup rather than
// on the first request.
func NewPool(cfg *config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, apperror.NewDatabaseError("error parsing database DSN", err)
	}

	poolConfig.MaxConns = int32(cfg.PoolSize)
	poolConfig.MaxConnIdleTime = 10 * time.Minute
	poolConfig.MaxConnLifetime = 30 * time.Minute

	// Bound pool creation so an unreachable database does not block startup
	// indefinitely.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, apperror.NewDatabaseError("error creating connection pool", err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, apperror.NewDatabaseError("error connecting to the database", err)
	}

	return pool, nil
}
