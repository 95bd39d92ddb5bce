// Package db opens the PostgreSQL pool shared by all repositories.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/paytoken/internal/logging"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// RetryInterval is the pause between connection attempts.
var RetryInterval = 5 * time.Second

// PoolOptions tunes the shared pool.
type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultPoolOptions suits a single gateway instance.
var DefaultPoolOptions = PoolOptions{
	MaxOpenConns:    25,
	MaxIdleConns:    25,
	ConnMaxLifetime: 5 * time.Minute,
	ConnMaxIdleTime: 5 * time.Minute,
}

// ErrNoAttempts is returned when Connect is asked to try zero times.
var ErrNoAttempts = errors.New("no connection attempts configured")

// Connect opens a pgx-backed pool for dsn and pings it, retrying up to
// attempts times with RetryInterval in between. Each ping is bounded by
// pingTimeout. The DSN is never logged since it carries the password.
func Connect(ctx context.Context, dsn string, attempts int, pingTimeout time.Duration, logger logging.Logger) (*sql.DB, error) {
	if attempts < 1 {
		return nil, ErrNoAttempts
	}

	db, err := sqlOpen("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	db.SetMaxOpenConns(DefaultPoolOptions.MaxOpenConns)
	db.SetMaxIdleConns(DefaultPoolOptions.MaxIdleConns)
	db.SetConnMaxLifetime(DefaultPoolOptions.ConnMaxLifetime)
	db.SetConnMaxIdleTime(DefaultPoolOptions.ConnMaxIdleTime)

	for attempt := 1; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err = db.PingContext(pingCtx)
		cancel()
		if err == nil {
			return db, nil
		}

		logger.Error(ctx, "Unable to connect to database", "attempt", attempt, "of", attempts, "error", err)
		if attempt >= attempts {
			break
		}

		select {
		case <-ctx.Done():
			_ = db.Close()
			return nil, ctx.Err()
		case <-time.After(RetryInterval):
		}
	}

	_ = db.Close()
	return nil, fmt.Errorf("database unreachable after %d attempts: %w", attempts, err)
}
