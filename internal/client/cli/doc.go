// Package cli implements the paytoken operator CLI.
//
// Usage:
//
//	cli [flags] pay               submit a payment; card number and CV2 are read without echo
//	cli [flags] orders            list stored orders (tokens only)
//	cli [flags] order <id>        show one order
//	cli [flags] health [service]  gRPC health check; service is "", "vault" or "db"
//
// Without a command the CLI starts an interactive prompt accepting the same
// commands plus help and exit.
package cli
