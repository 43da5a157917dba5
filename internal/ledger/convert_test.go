package ledger

import (
	"errors"
	"math"
	"testing"

	"currency_ledger/internal/domain"
	"currency_ledger/internal/repository/memory"
)

const tolerance = 1e-9

func TestConvert_HomeToHomeIdentity(t *testing.T) {
	rates := memory.NewRateTable()

	got, err := Convert(123.45, domain.PHP, domain.PHP, rates)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 123.45 {
		t.Errorf("expected 123.45, got %f", got)
	}
}

func TestConvert_RoundTrip(t *testing.T) {
	rates := memory.NewRateTable()
	_ = rates.Set(domain.USD, 56.0)
	_ = rates.Set(domain.JPY, 0.38)

	for _, code := range []domain.CurrencyCode{domain.USD, domain.JPY, domain.GBP, domain.EUR, domain.CNY} {
		foreign, err := Convert(250.0, domain.PHP, code, rates)
		if err != nil {
			t.Fatalf("unexpected error converting to %s: %v", code, err)
		}
		back, err := Convert(foreign, code, domain.PHP, rates)
		if err != nil {
			t.Fatalf("unexpected error converting back from %s: %v", code, err)
		}
		if math.Abs(back-250.0) > tolerance {
			t.Errorf("round trip via %s: expected 250, got %f", code, back)
		}
	}
}

func TestConvert_PivotScenario(t *testing.T) {
	rates := memory.NewRateTable()
	if err := rates.Set(domain.USD, 56.0); err != nil {
		t.Fatalf("unexpected error on Set: %v", err)
	}

	toPHP, err := Convert(100, domain.USD, domain.PHP, rates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toPHP != 5600.0 {
		t.Errorf("expected 5600, got %f", toPHP)
	}

	toUSD, err := Convert(5600.0, domain.PHP, domain.USD, rates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(toUSD-100.0) > tolerance {
		t.Errorf("expected 100, got %f", toUSD)
	}
}

func TestConvert_ForeignToForeignUsesPivot(t *testing.T) {
	rates := memory.NewRateTable()
	_ = rates.Set(domain.USD, 56.0)
	_ = rates.Set(domain.EUR, 64.0)

	// 10 USD -> 560 PHP -> 8.75 EUR
	got, err := Convert(10, domain.USD, domain.EUR, rates)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-8.75) > tolerance {
		t.Errorf("expected 8.75, got %f", got)
	}
}

func TestConvert_UnknownCurrency(t *testing.T) {
	rates := memory.NewRateTable()

	_, err := Convert(10, domain.CurrencyCode("XXX"), domain.PHP, rates)
	if !errors.Is(err, domain.ErrUnknownCurrency) {
		t.Errorf("expected ErrUnknownCurrency for source, got %v", err)
	}

	_, err = Convert(10, domain.PHP, domain.CurrencyCode("XXX"), rates)
	if !errors.Is(err, domain.ErrUnknownCurrency) {
		t.Errorf("expected ErrUnknownCurrency for destination, got %v", err)
	}
}
