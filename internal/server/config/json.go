package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/paytoken/internal/flagx"
	"github.com/dmitrijs2005/paytoken/internal/timex"
)

// JsonConfig is the on-disk shape of the optional configuration file.
// Timeouts use timex.Duration, so both "10s" and integer nanoseconds work.
// Zero-valued fields leave the current setting untouched.
type JsonConfig struct {
	EndpointAddrHTTP        string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC        string         `json:"endpoint_addr_grpc"`
	DatabaseDSN             string         `json:"database_dsn"`
	DatabaseConnectAttempts int            `json:"database_connect_attempts"`
	DatabaseTimeout         timex.Duration `json:"database_timeout"`
	VaultAddr               string         `json:"vault_addr"`
	VaultToken              string         `json:"vault_token"`
	VaultTransformRole      string         `json:"vault_transform_role"`
	VaultTimeout            timex.Duration `json:"vault_timeout"`
	HealthTimeout           timex.Duration `json:"health_timeout"`
}

// parseJson loads the file named by -c/-config, if any, and copies every
// non-zero field into config. Unreadable files and invalid JSON panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFile(os.Args[1:])

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.EndpointAddrGRPC != "" {
		config.EndpointAddrGRPC = c.EndpointAddrGRPC
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.DatabaseConnectAttempts != 0 {
		config.DatabaseConnectAttempts = c.DatabaseConnectAttempts
	}
	if c.DatabaseTimeout.Duration != 0 {
		config.DatabaseTimeout = c.DatabaseTimeout.Duration
	}
	if c.VaultAddr != "" {
		config.VaultAddr = c.VaultAddr
	}
	if c.VaultToken != "" {
		config.VaultToken = c.VaultToken
	}
	if c.VaultTransformRole != "" {
		config.VaultTransformRole = c.VaultTransformRole
	}
	if c.VaultTimeout.Duration != 0 {
		config.VaultTimeout = c.VaultTimeout.Duration
	}
	if c.HealthTimeout.Duration != 0 {
		config.HealthTimeout = c.HealthTimeout.Duration
	}
}
