// Package config assembles the client configuration from defaults, an
// optional JSON file, environment variables, and command-line flags.
// Later sources override earlier ones.
package config

import "time"

// Config holds runtime settings for the gymtrack client.
type Config struct {
	// APIBaseURL is the base address of the training service.
	APIBaseURL string
	// RequestTimeout bounds every HTTP request.
	RequestTimeout time.Duration
	// DatabasePath is the SQLite file holding the persisted session.
	DatabasePath string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:3333"
	c.RequestTimeout = 15 * time.Second
	c.DatabasePath = "gymtrack.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config: defaults first, then JSON (if a file
// was given), then environment, then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
