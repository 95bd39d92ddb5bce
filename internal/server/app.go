// Package server wires and runs the payment gateway: it opens the order
// store, applies migrations, builds the tokenization client and services,
// and serves the HTTP API and the gRPC health service until shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/paytoken/internal/logging"
	"github.com/dmitrijs2005/paytoken/internal/server/config"
	"github.com/dmitrijs2005/paytoken/internal/server/httpapi"
	"github.com/dmitrijs2005/paytoken/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/paytoken/internal/server/services"
	"github.com/dmitrijs2005/paytoken/internal/server/shared/db"
	"github.com/dmitrijs2005/paytoken/internal/server/vault"

	gs "github.com/dmitrijs2005/paytoken/internal/server/grpc"
)

// connectDB is a seam for tests.
var connectDB = db.Connect

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	vault       *vault.Client
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	if c.VaultAddr == "" {
		return nil, errors.New("vault address is not configured")
	}
	if c.VaultToken == "" {
		return nil, errors.New("vault token is not configured")
	}
	if c.DatabaseDSN == "" {
		return nil, errors.New("database dsn is not configured")
	}

	vc := vault.NewClient(c.VaultToken, c.VaultAddr, vault.WithRole(c.VaultTransformRole))

	return &App{
		config:      c,
		logger:      logger,
		repomanager: repomanager.NewPostgresRepositoryManager(),
		vault:       vc,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc, p *services.PaymentService, h *services.HealthService, o *services.OrderService) {

	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, p, h, o)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "HTTP server error", "error", err)
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc, h *services.HealthService) {

	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, h)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, "gRPC server error", "error", err)
			cancelFunc()
		}
	}
}

func (app *App) openStore(ctx context.Context) (*sql.DB, error) {
	conn, err := connectDB(ctx, app.config.DatabaseDSN, app.config.DatabaseConnectAttempts, app.config.DatabaseTimeout, app.logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := app.repomanager.RunMigrations(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	return conn, nil
}

// Run blocks until a termination signal arrives, ctx is cancelled or either
// server fails. It returns an error only when start-up fails.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	conn, err := app.openStore(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	payments := services.NewPaymentService(conn, app.repomanager, app.vault, app.config, app.logger)
	health := services.NewHealthService(app.vault, app.repomanager.Orders(conn), app.config.HealthTimeout, app.logger)
	orders := services.NewOrderService(conn, app.repomanager, app.config.DatabaseTimeout)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc, payments, health, orders)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc, health)
	}()

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
	return nil
}
