// Package client contains the CLI's transports to the paytoken gateway.
//
// # Overview
//
// The package provides:
//  1. GatewayClient, which calls the public HTTP API: Pay, Order and Orders.
//  2. GRPCHealthClient, which asks the standard grpc.health.v1 service for
//     the serving status of the gateway or one of its dependencies.
//
// # Error Handling
//
// Transport and status failures are exposed as sentinel errors that callers
// can match with errors.Is: ErrUnavailable, ErrRejected, ErrNotFound,
// ErrUpstream, ErrServer and ErrUnknownService.
package client
