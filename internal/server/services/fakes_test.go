package services

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/dmitrijs2005/paytoken/internal/common"
	"github.com/dmitrijs2005/paytoken/internal/dbx"
	"github.com/dmitrijs2005/paytoken/internal/server/models"
	"github.com/dmitrijs2005/paytoken/internal/server/repositories/orders"
)

type fakeTokenizer struct {
	mu    sync.Mutex
	calls []string
	fn    func(ctx context.Context, pan string) (string, error)
}

func (f *fakeTokenizer) Tokenize(ctx context.Context, pan string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, pan)
	n := len(f.calls)
	f.mu.Unlock()
	if f.fn != nil {
		return f.fn(ctx, pan)
	}
	return "tok-" + string(rune('a'+n-1)), nil
}

func (f *fakeTokenizer) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeOrders struct {
	mu      sync.Mutex
	nextID  int64
	saved   []*models.Order
	saveErr error
	findErr error
	probe   func(ctx context.Context) bool
	saveFn  func(ctx context.Context, token string) (*models.Order, error)
}

func (f *fakeOrders) Save(ctx context.Context, token string) (*models.Order, error) {
	if f.saveFn != nil {
		return f.saveFn(ctx, token)
	}
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	now := time.Now().UTC()
	o := &models.Order{ID: f.nextID, Token: token, CreatedAt: now, UpdatedAt: now}
	f.saved = append(f.saved, o)
	return o, nil
}

func (f *fakeOrders) FindByID(_ context.Context, id int64) (*models.Order, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.saved {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeOrders) FindAll(context.Context) ([]*models.Order, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Order, len(f.saved))
	copy(out, f.saved)
	return out, nil
}

func (f *fakeOrders) Probe(ctx context.Context) bool {
	if f.probe != nil {
		return f.probe(ctx)
	}
	return true
}

func (f *fakeOrders) Saved() []*models.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saved
}

type fakeRepoManager struct {
	orders *fakeOrders
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Orders(dbx.Conn) orders.Repository { return m.orders }

type fakeVaultProbe func(ctx context.Context) bool

func (f fakeVaultProbe) IsHealthy(ctx context.Context) bool { return f(ctx) }
