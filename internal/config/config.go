package config

import (
	"os"
)

// Config holds process configuration for a ledger session.
type Config struct {
	LogLevel       string
	MetricsEnabled bool
	MetricsAddr    string
}

// Load loads configuration from environment variables with default values.
func Load() *Config {
	return &Config{
		LogLevel:       getEnv("LEDGER_LOG_LEVEL", "info"),
		MetricsEnabled: getEnv("LEDGER_METRICS_ENABLED", "false") == "true",
		MetricsAddr:    getEnv("LEDGER_METRICS_ADDR", ":9090"),
	}
}

// getEnv retrieves an environment variable or returns a default value if not set.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
