package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/paytoken/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":9090")
//	-g string   gRPC health bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN
//	-n int      database connect attempts at start-up
//	-s int      database call timeout, seconds
//	-v string   Vault address
//	-t string   Vault token
//	-r string   Vault Transform role
//	-w int      Vault call timeout, seconds
//	-p int      health probe timeout, seconds
//
// Only the flags listed above are taken from os.Args, see flagx.FilterArgs.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-n", "-s", "-v", "-t", "-r", "-w", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port to run server")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC health address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.IntVar(&config.DatabaseConnectAttempts, "n", config.DatabaseConnectAttempts, "database connect attempts")
	databaseTimeout := fs.Int("s", int(config.DatabaseTimeout.Seconds()), "database timeout (in seconds)")
	fs.StringVar(&config.VaultAddr, "v", config.VaultAddr, "Vault address")
	fs.StringVar(&config.VaultToken, "t", config.VaultToken, "Vault token")
	fs.StringVar(&config.VaultTransformRole, "r", config.VaultTransformRole, "Vault transform role")
	vaultTimeout := fs.Int("w", int(config.VaultTimeout.Seconds()), "Vault timeout (in seconds)")
	healthTimeout := fs.Int("p", int(config.HealthTimeout.Seconds()), "health probe timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Durations are only touched when given explicitly, so sub-second values
	// from the environment or JSON survive.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "s":
			config.DatabaseTimeout = time.Duration(*databaseTimeout) * time.Second
		case "w":
			config.VaultTimeout = time.Duration(*vaultTimeout) * time.Second
		case "p":
			config.HealthTimeout = time.Duration(*healthTimeout) * time.Second
		}
	})
}
