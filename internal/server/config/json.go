package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/forohub/internal/flagx"
	"github.com/dmitrijs2005/forohub/internal/timex"
)

// JsonConfig is the on-disk shape of the server config. Duration fields
// accept "2h"-style strings or integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP      string          `json:"endpoint_addr_http"`
	EndpointAddrMetrics   *string         `json:"endpoint_addr_metrics"`
	DatabaseDSN           string          `json:"database_dsn"`
	TokenIssuer           string          `json:"token_issuer"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	TokenZoneOffset       *timex.Duration `json:"token_zone_offset"`
	ShutdownTimeout       *timex.Duration `json:"shutdown_timeout"`
	LogLevel              string          `json:"log_level"`
}

// parseJson overlays values from the file named by -c/-config onto config.
// Keys absent from the file leave the current value untouched. Nothing is
// loaded when no file is named; an unreadable or invalid file panics.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
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
	if c.EndpointAddrMetrics != nil {
		config.EndpointAddrMetrics = *c.EndpointAddrMetrics
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.TokenIssuer != "" {
		config.TokenIssuer = c.TokenIssuer
	}
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.TokenZoneOffset != nil {
		config.TokenZoneOffset = c.TokenZoneOffset.Duration
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
}
