package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults used when the matching environment variable is unset.
const (
	DefaultAddr            = ":9321"
	DefaultServiceName     = "go-chi-calculator"
	DefaultShutdownTimeout = 5 * time.Second
	DefaultAPIURL          = "http://localhost:9321"
)

// Config holds the settings shared by the api server and the calculator
// front-end. Each binary reads only the fields it needs.
type Config struct {
	// Server
	Addr            string
	ServiceName     string
	Telemetry       bool
	ShutdownTimeout time.Duration

	// Front-end
	APIURL  string
	LogFile string
	Timeout time.Duration
}

// LoadDotEnv loads environment variables from .env when present.
// Existing process environment variables are not overridden.
func LoadDotEnv() error {
	err := godotenv.Load()
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load .env: %w", err)
}

// Load builds a Config from the process environment.
func Load() (Config, error) {
	cfg := Config{
		Addr:            getEnv("CALC_ADDR", DefaultAddr),
		ServiceName:     getEnv("OTEL_SERVICE_NAME", DefaultServiceName),
		Telemetry:       true,
		ShutdownTimeout: DefaultShutdownTimeout,
		APIURL:          getEnv("CALC_API_URL", DefaultAPIURL),
		LogFile:         os.Getenv("CALC_LOG_FILE"),
	}

	var err error

	if v := os.Getenv("CALC_TELEMETRY"); v != "" {
		cfg.Telemetry, err = strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("parsing CALC_TELEMETRY: %w", err)
		}
	}

	if v := os.Getenv("CALC_SHUTDOWN_TIMEOUT"); v != "" {
		cfg.ShutdownTimeout, err = time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parsing CALC_SHUTDOWN_TIMEOUT: %w", err)
		}
	}

	if v := os.Getenv("CALC_TIMEOUT"); v != "" {
		cfg.Timeout, err = time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parsing CALC_TIMEOUT: %w", err)
		}
		if cfg.Timeout < 0 {
			return Config{}, fmt.Errorf("CALC_TIMEOUT must not be negative, got %s", cfg.Timeout)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
