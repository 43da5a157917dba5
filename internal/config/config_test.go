package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.MetricsEnabled {
		t.Errorf("metrics must be disabled by default")
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("expected default metrics addr :9090, got %s", cfg.MetricsAddr)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LEDGER_LOG_LEVEL", "debug")
	t.Setenv("LEDGER_METRICS_ENABLED", "true")
	t.Setenv("LEDGER_METRICS_ADDR", ":9999")

	cfg := Load()

	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug, got %s", cfg.LogLevel)
	}
	if !cfg.MetricsEnabled {
		t.Errorf("expected metrics enabled")
	}
	if cfg.MetricsAddr != ":9999" {
		t.Errorf("expected :9999, got %s", cfg.MetricsAddr)
	}
}
