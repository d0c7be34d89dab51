// Package config holds the ForoHub CLI client settings.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the ForoHub CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the HTTP API, e.g. "http://127.0.0.1:8080".
//   - RequestTimeout: upper bound for a single API call.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
