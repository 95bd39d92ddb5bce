package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/paytoken/internal/dbx"
	"github.com/dmitrijs2005/paytoken/internal/server/repositories/orders"
)

// RepositoryManager vends repositories bound to a connection and owns the
// schema migrations.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Orders(db dbx.Conn) orders.Repository
}
