package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// loadDotEnv is a seam for tests; a missing .env file is not an error.
var loadDotEnv = func() error { return godotenv.Load() }

// parseEnv overlays Config with environment variables. A .env file in the
// working directory is loaded first; variables already present in the
// process environment win over it. Empty variables are ignored.
//
// Recognised variables:
//
//	HTTP_ADDR, GRPC_ADDR
//	DATABASE_DSN, DATABASE_CONNECT_ATTEMPTS, DATABASE_TIMEOUT
//	VAULT_ADDR, VAULT_TOKEN, VAULT_TRANSFORM_ROLE, VAULT_TIMEOUT
//	HEALTH_TIMEOUT
//
// Timeouts use time.ParseDuration syntax ("10s"). Malformed numeric values
// panic, like malformed JSON and flags do.
func parseEnv(config *Config) {
	_ = loadDotEnv()

	setString(&config.EndpointAddrHTTP, "HTTP_ADDR")
	setString(&config.EndpointAddrGRPC, "GRPC_ADDR")
	setString(&config.DatabaseDSN, "DATABASE_DSN")
	setInt(&config.DatabaseConnectAttempts, "DATABASE_CONNECT_ATTEMPTS")
	setDuration(&config.DatabaseTimeout, "DATABASE_TIMEOUT")
	setString(&config.VaultAddr, "VAULT_ADDR")
	setString(&config.VaultToken, "VAULT_TOKEN")
	setString(&config.VaultTransformRole, "VAULT_TRANSFORM_ROLE")
	setDuration(&config.VaultTimeout, "VAULT_TIMEOUT")
	setDuration(&config.HealthTimeout, "HEALTH_TIMEOUT")
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func setString(dst *string, key string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := lookup(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		*dst = n
	}
}

func setDuration(dst *time.Duration, key string) {
	if v, ok := lookup(key); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		*dst = d
	}
}
