// Package dbx provides tiny DB abstractions shared by repositories.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by our repos.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Conn is a DBTX that can also be probed for liveness. *sql.DB satisfies it;
// a transaction does not, since a transaction says nothing about the pool.
type Conn interface {
	DBTX
	PingContext(ctx context.Context) error
}

var _ Conn = (*sql.DB)(nil)
