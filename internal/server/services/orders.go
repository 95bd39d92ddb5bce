package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/paytoken/internal/dbx"
	"github.com/dmitrijs2005/paytoken/internal/server/models"
	"github.com/dmitrijs2005/paytoken/internal/server/repositories/repomanager"
)

// OrderService reads stored orders back. Orders carry tokens only.
type OrderService struct {
	db          dbx.Conn
	repomanager repomanager.RepositoryManager
	timeout     time.Duration
}

func NewOrderService(db dbx.Conn, m repomanager.RepositoryManager, timeout time.Duration) *OrderService {
	return &OrderService{db: db, repomanager: m, timeout: timeout}
}

// Get returns a single order or common.ErrorNotFound.
func (s *OrderService) Get(ctx context.Context, id int64) (*models.Order, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	return s.repomanager.Orders(s.db).FindByID(ctx, id)
}

func (s *OrderService) List(ctx context.Context) ([]*models.Order, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	return s.repomanager.Orders(s.db).FindAll(ctx)
}
