package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds process-level settings, populated from environment variables.
// Pipeline definitions themselves live in spec files; config covers only the
// ambient concerns around a run.
type Config struct {
	LogLevel     string
	LogFormat    string
	FetchTimeout time.Duration
	MissingToken string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	fetchTimeout, err := parseFetchTimeout()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		LogLevel:     envOrDefault("LOG_LEVEL", "info"),
		LogFormat:    envOrDefault("LOG_FORMAT", "json"),
		FetchTimeout: fetchTimeout,
		MissingToken: os.Getenv("MISSING_TOKEN"),
	}

	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: want json or text", cfg.LogFormat)
	}

	return cfg, nil
}

func parseFetchTimeout() (time.Duration, error) {
	s := envOrDefault("FETCH_TIMEOUT", "10s")
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid FETCH_TIMEOUT %q", s)
	}
	return d, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
