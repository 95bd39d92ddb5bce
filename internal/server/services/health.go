package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/paytoken/internal/logging"
	"github.com/dmitrijs2005/paytoken/internal/server/models"
)

// VaultProbe is implemented by vault.Client.
type VaultProbe interface {
	IsHealthy(ctx context.Context) bool
}

// StoreProbe is implemented by orders.Repository.
type StoreProbe interface {
	Probe(ctx context.Context) bool
}

// HealthService aggregates dependency liveness. It never fails: an
// unreachable, slow or panicking dependency is simply reported as Fail.
type HealthService struct {
	vault   VaultProbe
	store   StoreProbe
	timeout time.Duration
	logger  logging.Logger
}

func NewHealthService(vault VaultProbe, store StoreProbe, timeout time.Duration, logger logging.Logger) *HealthService {
	return &HealthService{
		vault:   vault,
		store:   store,
		timeout: timeout,
		logger:  logger.With("module", "health_service"),
	}
}

// Health runs both probes concurrently, each under its own deadline.
func (s *HealthService) Health(ctx context.Context) models.HealthStatus {
	var wg sync.WaitGroup
	var vaultOK, storeOK bool

	wg.Add(2)
	go func() {
		defer wg.Done()
		vaultOK = s.probe(ctx, "vault", s.vault.IsHealthy)
	}()
	go func() {
		defer wg.Done()
		storeOK = s.probe(ctx, "db", s.store.Probe)
	}()
	wg.Wait()

	return models.HealthStatus{
		Vault: models.StatusOf(vaultOK),
		DB:    models.StatusOf(storeOK),
	}
}

func (s *HealthService) probe(ctx context.Context, name string, check func(context.Context) bool) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error(ctx, "Health probe panicked", "probe", name, "panic", fmt.Sprint(r))
			ok = false
		}
	}()

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	ok = check(ctx)
	if !ok {
		s.logger.Warn(ctx, "Dependency unhealthy", "probe", name)
	}
	return ok
}
