package grpc

import (
	"context"

	"github.com/dmitrijs2005/paytoken/internal/server/models"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// Service names understood by Check. The empty name is the gateway as a
// whole and is SERVING only when every dependency is.
const (
	ServiceOverall = ""
	ServiceVault   = "vault"
	ServiceDB      = "db"
)

func (s *GRPCServer) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	var ok bool

	switch req.GetService() {
	case ServiceOverall:
		hs := s.health.Health(ctx)
		ok = hs.Vault == models.StatusOK && hs.DB == models.StatusOK
	case ServiceVault:
		ok = s.health.Health(ctx).Vault == models.StatusOK
	case ServiceDB:
		ok = s.health.Health(ctx).DB == models.StatusOK
	default:
		return nil, status.Errorf(codes.NotFound, "unknown service %q", req.GetService())
	}

	return &healthpb.HealthCheckResponse{Status: servingStatus(ok)}, nil
}

func servingStatus(ok bool) healthpb.HealthCheckResponse_ServingStatus {
	if ok {
		return healthpb.HealthCheckResponse_SERVING
	}
	return healthpb.HealthCheckResponse_NOT_SERVING
}
