package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Server holds the API process settings. Values come from the environment,
// which cmd/api seeds from an optional .env file.
type Server struct {
	Addr            string
	LogLevel        string
	ServiceName     string
	OTelEnabled     bool
	ShutdownTimeout time.Duration
}

const (
	DefaultAddr            = ":8080"
	DefaultServiceName     = "web-calculator"
	DefaultShutdownTimeout = 5 * time.Second
)

// LoadServer reads API_ADDR, LOG_LEVEL, OTEL_SERVICE_NAME, OTEL_ENABLED and
// SHUTDOWN_TIMEOUT, falling back to defaults for unset variables.
func LoadServer() (Server, error) {
	cfg := Server{
		Addr:            getenv("API_ADDR", DefaultAddr),
		LogLevel:        os.Getenv("LOG_LEVEL"),
		ServiceName:     getenv("OTEL_SERVICE_NAME", DefaultServiceName),
		ShutdownTimeout: DefaultShutdownTimeout,
	}

	if raw := os.Getenv("OTEL_ENABLED"); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return Server{}, fmt.Errorf("OTEL_ENABLED: %w", err)
		}
		cfg.OTelEnabled = enabled
	}

	if raw := os.Getenv("SHUTDOWN_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Server{}, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return Server{}, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", d)
		}
		cfg.ShutdownTimeout = d
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
