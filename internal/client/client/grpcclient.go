package client

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

type GRPCHealthClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      healthpb.HealthClient
}

func NewGRPCHealthClient(endpointURL string) (*GRPCHealthClient, error) {
	c := &GRPCHealthClient{endpointURL: endpointURL}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCHealthClient) InitGRPCClient() error {

	conn, err := grpc.NewClient(s.endpointURL, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = healthpb.NewHealthClient(conn)
	return nil
}

func (s *GRPCHealthClient) Check(ctx context.Context, service string) (bool, error) {

	resp, err := s.client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return false, s.mapError(err)
	}

	return resp.GetStatus() == healthpb.HealthCheckResponse_SERVING, nil
}

func (s *GRPCHealthClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCHealthClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.NotFound:
		return ErrUnknownService
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
