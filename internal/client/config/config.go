package config

import "time"

// Config holds runtime settings for the operator CLI.
//
// Fields:
//   - GatewayAddr: base URL of the gateway HTTP API.
//   - HealthAddr: host:port of the gRPC health service.
//   - RequestTimeout: deadline for each call to the gateway.
type Config struct {
	GatewayAddr    string
	HealthAddr     string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with defaults matching a locally running gateway.
func (c *Config) LoadDefaults() {
	c.GatewayAddr = "http://127.0.0.1:9090"
	c.HealthAddr = "127.0.0.1:50051"
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
