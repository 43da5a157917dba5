package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"currency_ledger/internal/cli"
	"currency_ledger/internal/config"
	"currency_ledger/internal/ledger"
	"currency_ledger/internal/repository/memory"
	"currency_ledger/pkg/metrics"
)

const (
	appName = "currency_ledger"
)

func main() {
	cfg := config.Load()
	logger := setupLogger(cfg)
	logger.Info("Starting application",
		slog.String("name", appName))

	collector := metrics.NewCollector(logger)
	registry := memory.NewAccountRegistry()
	rates := memory.NewRateTable()
	service := ledger.NewService(registry, rates, logger)
	driver := cli.NewDriver(service, collector, logger, os.Stdin, os.Stdout)

	var metricsServer *http.Server
	if cfg.MetricsEnabled {
		metricsServer = collector.StartMetricsServer(cfg.MetricsAddr)
	}

	ctx := context.Background()
	if err := driver.Run(ctx); err != nil {
		logger.Error("Session failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	shutdown(ctx, logger, metricsServer, collector)
	logger.Info("Application shutdown complete")
}

func setupLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Logs go to stderr so they do not interleave with the menu prompts.
	handler := slog.NewJSONHandler(os.Stderr, opts)
	return slog.New(handler)
}

func shutdown(ctx context.Context, logger *slog.Logger, metricsServer *http.Server, collector *metrics.Collector) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Metrics server shutdown failed", slog.String("error", err.Error()))
		}
	}

	if err := collector.Shutdown(shutdownCtx); err != nil {
		logger.Error("Metrics collector shutdown failed", slog.String("error", err.Error()))
	}
}
