// Package config loads runtime configuration for the paytoken operator CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the gateway HTTP API
//	-g string   host:port of the gateway gRPC health endpoint
//	-i int      per-request timeout (seconds)
//
// # JSON schema
//
//	{
//	  "gateway_addr": "http://127.0.0.1:9090",
//	  "health_addr": "127.0.0.1:50051",
//	  "request_timeout": "15s"
//	}
package config
