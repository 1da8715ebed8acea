package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// envConfig is a DTO for the environment stage. Unset variables leave
// the corresponding Config field as-is.
type envConfig struct {
	APIBaseURL     string        `env:"GYMTRACK_API_URL"`
	RequestTimeout time.Duration `env:"GYMTRACK_REQUEST_TIMEOUT"`
	DatabasePath   string        `env:"GYMTRACK_DB_PATH"`
	LogLevel       string        `env:"GYMTRACK_LOG_LEVEL"`
}

func parseEnv(cfg *Config) {
	var ec envConfig
	if err := envconfig.Process(context.Background(), &ec); err != nil {
		panic(fmt.Sprintf("config: failed to read environment: %v", err))
	}

	if ec.APIBaseURL != "" {
		cfg.APIBaseURL = ec.APIBaseURL
	}
	if ec.RequestTimeout != 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
	if ec.DatabasePath != "" {
		cfg.DatabasePath = ec.DatabasePath
	}
	if ec.LogLevel != "" {
		cfg.LogLevel = ec.LogLevel
	}
}
