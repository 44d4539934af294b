// Package config builds runtime configuration from environment variables so
// main and the CLI commands stay lean.
package config

import (
	"os"
	"strconv"
	"time"
)

// DefaultBaseURL is the public eCFR registry endpoint.
const DefaultBaseURL = "https://www.ecfr.gov"

// Config captures process-level configuration shared by the CLI commands.
type Config struct {
	BaseURL     string        // remote registry base URL
	DBPath      string        // SQLite database file; empty means the default under $HOME
	Addr        string        // listen address for the serve command
	HTTPTimeout time.Duration // per-request timeout for registry fetches
}

// FromEnv builds a Config from environment variables with defaults.
func FromEnv() Config {
	baseURL := os.Getenv("CFRSYNC_BASE_URL")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	addr := os.Getenv("CFRSYNC_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	timeout := 10 * time.Second
	if raw := os.Getenv("CFRSYNC_HTTP_TIMEOUT"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}

	return Config{
		BaseURL:     baseURL,
		DBPath:      os.Getenv("CFRSYNC_DB_PATH"),
		Addr:        addr,
		HTTPTimeout: timeout,
	}
}
