package internal_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"currency_ledger/internal/cli"
	"currency_ledger/internal/ledger"
	"currency_ledger/internal/repository"
	"currency_ledger/internal/repository/memory"
	"currency_ledger/pkg/metrics"
)

type testEnv struct {
	registry *memory.AccountRegistry
	rates    *memory.RateTable
	service  *ledger.Service
	logger   *slog.Logger
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	registry := memory.NewAccountRegistry()
	rates := memory.NewRateTable()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	service := ledger.NewService(registry, rates, logger)

	return &testEnv{
		registry: registry,
		rates:    rates,
		service:  service,
		logger:   logger,
	}
}

// Follows the session from the worked example: quote USD at 56, convert 100
// USD to PHP and back, then run Alice's deposit and over-withdrawal.
func TestSession_RateQuoteAndConversionScenario(t *testing.T) {
	ctx := context.Background()
	env := setup(t)

	for code, rate := range env.rates.Snapshot() {
		if rate != 1.0 {
			t.Fatalf("rate for %s must start at 1.0, got %v", code, rate)
		}
	}

	if err := env.service.SetRate(ctx, "USD", 56.0); err != nil {
		t.Fatalf("unexpected error on SetRate: %v", err)
	}

	toPHP, err := env.service.ExchangePreview(100, 1, 0)
	if err != nil {
		t.Fatalf("unexpected error on preview: %v", err)
	}
	if toPHP != 5600.0 {
		t.Errorf("expected 5600 PHP, got %f", toPHP)
	}

	toUSD, err := env.service.ExchangePreview(5600.0, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error on preview: %v", err)
	}
	if math.Abs(toUSD-100.0) > 1e-9 {
		t.Errorf("expected 100 USD, got %f", toUSD)
	}
}

func TestSession_AliceDepositAndOverWithdrawal(t *testing.T) {
	ctx := context.Background()
	env := setup(t)

	if _, err := env.service.Register(ctx, "Alice"); err != nil {
		t.Fatalf("unexpected error on Register: %v", err)
	}

	balance, err := env.service.Deposit(ctx, "Alice", 50, "PHP")
	if err != nil {
		t.Fatalf("unexpected error on Deposit: %v", err)
	}
	if balance != 50 {
		t.Errorf("expected balance 50, got %f", balance)
	}

	_, err = env.service.Withdraw(ctx, "Alice", 60, "PHP")
	if !errors.Is(err, repository.ErrInsufficientFunds) {
		t.Errorf("expected ErrInsufficientFunds, got %v", err)
	}

	account, _ := env.service.Lookup(ctx, "Alice")
	if account.Balance != 50 {
		t.Errorf("balance must remain 50 after failed withdrawal, got %f", account.Balance)
	}

	counters := env.service.Counters()
	if counters["deposits_processed"] != 1 {
		t.Errorf("expected 1 processed deposit, got %d", counters["deposits_processed"])
	}
	if counters["withdrawals_processed"] != 0 {
		t.Errorf("failed withdrawal must not be counted, got %d", counters["withdrawals_processed"])
	}
}

// Drives a complete interactive session end to end through the console
// driver: register, deposit in a foreign currency, quote a rate, preview an
// exchange and project interest.
func TestSession_FullInteractiveSession(t *testing.T) {
	env := setup(t)
	collector := metrics.NewCollector(env.logger)

	script := strings.Join([]string{
		"1", "Bob", "Y", // register Bob
		"5", "1", "56", "Y", // quote USD at 56
		"2", "Bob", "USD", "10", "Y", // deposit 10 USD -> 560 PHP
		"4", "1", "560", "2", "N", "Y", // preview 560 PHP -> 10 USD
		"6", "Bob", "2", // two-day interest projection
		"N",
	}, "\n") + "\n"

	var out bytes.Buffer
	driver := cli.NewDriver(env.service, collector, env.logger, strings.NewReader(script), &out)

	if err := driver.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error from Run: %v", err)
	}

	rendered := out.String()
	if !strings.Contains(rendered, "Updated Balance: 560") {
		t.Errorf("expected converted deposit in output:\n%s", rendered)
	}
	if !strings.Contains(rendered, "Exchange Amount: 10") {
		t.Errorf("expected exchange preview in output:\n%s", rendered)
	}
	if !strings.Contains(rendered, "Day | Interest | Balance |") {
		t.Errorf("expected interest schedule in output:\n%s", rendered)
	}

	account, exists := env.service.Lookup(context.Background(), "Bob")
	if !exists {
		t.Fatalf("expected Bob to exist after the session")
	}
	if account.Balance != 560 {
		t.Errorf("projection must leave the balance at 560, got %f", account.Balance)
	}
}
