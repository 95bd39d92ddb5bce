// Package grpc serves the standard grpc.health.v1 service so orchestrators
// can probe the gateway without going through the public HTTP API.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/paytoken/internal/logging"
	"github.com/dmitrijs2005/paytoken/internal/server/models"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthChecker is implemented by services.HealthService.
type HealthChecker interface {
	Health(ctx context.Context) models.HealthStatus
}

type GRPCServer struct {
	healthpb.UnimplementedHealthServer
	address string
	health  HealthChecker
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, h HealthChecker) (*GRPCServer, error) {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		health:  h,
	}, nil
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.recoverInterceptor))
	healthpb.RegisterHealthServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
