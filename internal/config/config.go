// Package config provides configuration loading for the gateway.
//
// Configuration is loaded from environment variables with sensible
// defaults. Per-tenant credentials are handled separately by the
// tenant package, which uses the same environment-first convention.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the gateway's non-tenant configuration.
type Config struct {
	Server        ServerConfig
	Observability ObservabilityConfig
	Bulk          BulkConfig
}

// ServerConfig holds HTTP listener and shutdown settings.
type ServerConfig struct {
	// Port is the HTTP listen port. Default: 3000.
	Port int

	// ShutdownTimeout bounds the graceful-drain window on SIGINT/SIGTERM.
	// Default: 5s.
	ShutdownTimeout time.Duration
}

// ObservabilityConfig holds logging and metrics settings.
type ObservabilityConfig struct {
	// LogLevel is one of debug, info, warn, error. Default: info.
	LogLevel string

	// LogEncoding is json or console. Default: json.
	LogEncoding string

	// MetricsEnabled controls whether /metrics is registered. Default: true.
	MetricsEnabled bool
}

// BulkConfig controls the wire shape of bulk resubmit/discard tools.
type BulkConfig struct {
	// Mode is "fanout" (one POST per id against the per-id endpoint) or
	// "collective" (a single POST carrying all ids to a collective
	// endpoint), for upstream deployments that only accept the latter.
	// Default: fanout.
	Mode string
}

const (
	BulkModeFanout     = "fanout"
	BulkModeCollective = "collective"
)

// Load reads configuration from the process environment, applying defaults
// for anything unset.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            envInt("PORT", 3000),
			ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Observability: ObservabilityConfig{
			LogLevel:       envString("LOG_LEVEL", "info"),
			LogEncoding:    envString("LOG_ENCODING", "json"),
			MetricsEnabled: envBool("METRICS_ENABLED", true),
		},
		Bulk: BulkConfig{
			Mode: envString("BULK_MODE", BulkModeFanout),
		},
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %s", c.Server.ShutdownTimeout)
	}
	switch c.Observability.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Observability.LogLevel)
	}
	switch c.Observability.LogEncoding {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log encoding: %s", c.Observability.LogEncoding)
	}
	switch c.Bulk.Mode {
	case BulkModeFanout, BulkModeCollective:
	default:
		return fmt.Errorf("invalid bulk mode: %s", c.Bulk.Mode)
	}
	return nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
