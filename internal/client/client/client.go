package client

import (
	"context"

	"github.com/dmitrijs2005/paytoken/internal/client/models"
)

// Gateway is the HTTP API contract used by the CLI.
type Gateway interface {
	Pay(ctx context.Context, req *models.PaymentRequest) (*models.PaymentResult, error)
	Order(ctx context.Context, id int64) (*models.Order, error)
	Orders(ctx context.Context) ([]*models.Order, error)
}

// Health reports whether service is serving. The empty name means the
// gateway as a whole.
type Health interface {
	Check(ctx context.Context, service string) (bool, error)
	Close() error
}
