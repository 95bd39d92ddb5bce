package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/paytoken/internal/flagx"
)

// FlagsWithValue lists the CLI flags that consume the following argument.
// The command parser uses it to tell flag values from command words.
var FlagsWithValue = []string{"-a", "-g", "-i", "-c", "-config"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gateway base URL (default from Config)
//	-g string   gRPC health address (default from Config)
//	-i int      request timeout in seconds (default from Config)
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.GatewayAddr, "a", cfg.GatewayAddr, "gateway base URL")
	fs.StringVar(&cfg.HealthAddr, "g", cfg.HealthAddr, "gRPC health address and port")
	requestTimeout := fs.Int("i", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		}
	})
}
