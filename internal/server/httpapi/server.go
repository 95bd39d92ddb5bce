// Package httpapi exposes the gateway's public HTTP surface: the payment
// endpoint, the composite health check and read access to stored orders.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/paytoken/internal/logging"
	"github.com/dmitrijs2005/paytoken/internal/server/models"
	"github.com/gorilla/mux"
)

// Payer is implemented by services.PaymentService.
type Payer interface {
	Pay(ctx context.Context, req *models.PaymentRequest) (*models.PaymentResponse, error)
}

// HealthReporter is implemented by services.HealthService.
type HealthReporter interface {
	Health(ctx context.Context) models.HealthStatus
}

// OrderReader is implemented by services.OrderService.
type OrderReader interface {
	Get(ctx context.Context, id int64) (*models.Order, error)
	List(ctx context.Context) ([]*models.Order, error)
}

var shutdownTimeout = 10 * time.Second

type Server struct {
	address string
	handler http.Handler
	logger  logging.Logger
}

func NewServer(address string, l logging.Logger, p Payer, h HealthReporter, o OrderReader) *Server {
	logger := l.With("module", "http_server")
	return &Server{
		address: address,
		handler: NewRouter(logger, p, h, o),
		logger:  logger,
	}
}

// NewRouter builds the gateway routes with request-id, recovery and access
// log middleware.
func NewRouter(logger logging.Logger, p Payer, h HealthReporter, o OrderReader) http.Handler {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware, accessLogMiddleware(logger), recoverMiddleware(logger))

	r.Handle("/", &paymentHandler{payments: p, logger: logger}).Methods(http.MethodPost)
	r.Handle("/health", &healthHandler{health: h}).Methods(http.MethodGet)

	oh := &ordersHandler{orders: o, logger: logger}
	r.HandleFunc("/orders", oh.list).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}", oh.get).Methods(http.MethodGet)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
