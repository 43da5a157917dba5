package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry            *prometheus.Registry
	operationsProcessed *prometheus.CounterVec
	operationsFailed    *prometheus.CounterVec
	operationDuration   prometheus.Histogram
	projectionHorizon   prometheus.Histogram
	accountBalance      *prometheus.GaugeVec
	mu                  sync.RWMutex
	logger              *slog.Logger
}

func NewCollector(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}

	registry := prometheus.NewRegistry()

	collector := &Collector{
		registry: registry,
		operationsProcessed: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_operations_total",
			Help: "Total number of completed ledger operations",
		}, []string{"operation"}),
		operationsFailed: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_operations_failed_total",
			Help: "Total number of failed ledger operations",
		}, []string{"operation"}),
		operationDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_operation_duration_seconds",
			Help:    "Time taken to complete a ledger operation",
			Buckets: prometheus.DefBuckets,
		}),
		projectionHorizon: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "interest_projection_horizon_days",
			Help:    "Distribution of requested interest projection horizons",
			Buckets: []float64{1, 7, 30, 90, 180, 365, 730},
		}),
		accountBalance: promauto.With(registry).NewGaugeVec(prometheus.GaugeOpts{
			Name: "account_balance",
			Help: "Current account balance in home currency",
		}, []string{"account", "currency"}),
		logger: logger,
	}

	return collector
}

func (c *Collector) RecordOperation(operation string, duration time.Duration, success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if success {
		c.operationsProcessed.WithLabelValues(operation).Inc()
	} else {
		c.operationsFailed.WithLabelValues(operation).Inc()
	}
	c.operationDuration.Observe(duration.Seconds())
}

func (c *Collector) RecordProjectionHorizon(days int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projectionHorizon.Observe(float64(days))
}

func (c *Collector) UpdateAccountBalance(account, currency string, balance float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accountBalance.WithLabelValues(account, currency).Set(balance)
}

func (c *Collector) GetHandler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) StartMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.GetHandler())

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		c.logger.Info("Starting metrics server", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			c.logger.Error("Metrics server failed", slog.String("error", err.Error()))
		}
	}()

	return server
}

func (c *Collector) Shutdown(ctx context.Context) error {
	c.logger.Info("Metrics collector shutdown complete")
	return nil
}
