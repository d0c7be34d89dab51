package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/forohub/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-m string   metrics bind address (empty disables)
//	-d string   PostgreSQL DSN
//	-i string   token issuer
//	-t int      token validity, minutes
//	-z int      token zone offset, minutes east of UTC (pass negatives as -z=-300)
//	-w int      shutdown timeout, seconds
//	-l string   log level
//
// Only these flags are taken from args (see flagx.FilterArgs), so -c/-config
// and flags owned by other components do not collide.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-m", "-d", "-i", "-t", "-z", "-w", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.EndpointAddrMetrics, "m", config.EndpointAddrMetrics, "address and port to serve metrics")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.TokenIssuer, "i", config.TokenIssuer, "token issuer")

	validity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity (in minutes)")
	zoneOffset := fs.Int("z", int(config.TokenZoneOffset.Minutes()), "token zone offset (in minutes east of UTC)")
	shutdown := fs.Int("w", int(config.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")

	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*validity) * time.Minute
	config.TokenZoneOffset = time.Duration(*zoneOffset) * time.Minute
	config.ShutdownTimeout = time.Duration(*shutdown) * time.Second
}
