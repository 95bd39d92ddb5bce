package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/paytoken/internal/common"
	"github.com/dmitrijs2005/paytoken/internal/dbx"
	"github.com/dmitrijs2005/paytoken/internal/server/models"
)

// now is a seam for tests.
var now = func() time.Time { return time.Now().UTC() }

// PostgresRepository implements Repository over a dbx.Conn (*sql.DB).
type PostgresRepository struct {
	db dbx.Conn
}

// NewPostgresRepository constructs a repository bound to the given connection.
func NewPostgresRepository(db dbx.Conn) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Save inserts a new order. The card_number column receives the token.
func (r *PostgresRepository) Save(ctx context.Context, token string) (*models.Order, error) {
	query := `
		INSERT INTO orders (card_number, created_at, updated_at)
		VALUES ($1, $2, $2)
		RETURNING id, created_at, updated_at
	`
	order := &models.Order{Token: token}
	if err := r.db.QueryRowContext(ctx, query, token, now()).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: db error: %w", common.ErrStorage, err)
	}
	return order, nil
}

// FindByID returns a live order. Absent and soft-deleted orders yield
// common.ErrorNotFound.
func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	query := `
		SELECT id, card_number, created_at, updated_at, deleted_at
		FROM orders
		WHERE id = $1 AND deleted_at IS NULL
	`
	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: db error: %w", common.ErrStorage, err)
	}
	return order, nil
}

// FindAll returns all live orders ordered by id.
func (r *PostgresRepository) FindAll(ctx context.Context) ([]*models.Order, error) {
	query := `
		SELECT id, card_number, created_at, updated_at, deleted_at
		FROM orders
		WHERE deleted_at IS NULL
		ORDER BY id ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to select orders: %w", common.ErrStorage, err)
	}
	defer rows.Close()

	result := make([]*models.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
		}
		result = append(result, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	return result, nil
}

// Probe pings the pool.
func (r *PostgresRepository) Probe(ctx context.Context) bool {
	return r.db.PingContext(ctx) == nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (*models.Order, error) {
	var (
		order     models.Order
		deletedAt sql.NullTime
	)
	if err := s.Scan(&order.ID, &order.Token, &order.CreatedAt, &order.UpdatedAt, &deletedAt); err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		order.DeletedAt = &t
	}
	return &order, nil
}
