// Package orders declares the order store contract and its PostgreSQL
// implementation. The store only ever receives engine-issued tokens.
package orders

import (
	"context"

	"github.com/dmitrijs2005/paytoken/internal/server/models"
)

// Repository persists tokens as orders.
type Repository interface {
	// Save creates a new order for token with a store-assigned ID and the
	// current time as both created_at and updated_at.
	Save(ctx context.Context, token string) (*models.Order, error)

	// FindByID returns the order with the given ID, or a not-found error.
	FindByID(ctx context.Context, id int64) (*models.Order, error)

	// FindAll returns every live order ordered by ID.
	FindAll(ctx context.Context) ([]*models.Order, error)

	// Probe reports whether the store is reachable. It never fails.
	Probe(ctx context.Context) bool
}
