package memory

import (
	"fmt"
	"math"
	"sync"

	"currency_ledger/internal/domain"
	"currency_ledger/internal/repository"
	"currency_ledger/pkg/validator"
)

// RateTable maps foreign currency codes to their exchange rate against the
// home currency, in units of home currency per one unit of foreign. The home
// code is never a key; its rate is fixed at 1.0.
type RateTable struct {
	mu    sync.RWMutex
	rates map[domain.CurrencyCode]float64
}

// NewRateTable initializes every foreign code to 1.0.
func NewRateTable() *RateTable {
	rates := make(map[domain.CurrencyCode]float64, len(domain.Codes)-1)
	for _, code := range domain.Codes {
		if !code.IsHome() {
			rates[code] = 1.0
		}
	}
	return &RateTable{rates: rates}
}

func (t *RateTable) Get(code domain.CurrencyCode) (float64, error) {
	if code.IsHome() {
		return 1.0, nil
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	rate, exists := t.rates[code]
	if !exists {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownCurrency, code)
	}
	return rate, nil
}

// Set overwrites a foreign rate. The home rate is fixed and any attempt to
// change it is rejected. Sign and magnitude are deliberately not checked;
// the operator's quotes are trusted as given.
func (t *RateTable) Set(code domain.CurrencyCode, rate float64) error {
	if code.IsHome() {
		return fmt.Errorf("%w: rate for home currency %s is fixed", repository.ErrInvalidOperation, code)
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return fmt.Errorf("%w: rate %v", validator.ErrInvalidAmount, rate)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.rates[code]; !exists {
		return fmt.Errorf("%w: %q", domain.ErrUnknownCurrency, code)
	}
	t.rates[code] = rate

	return nil
}

// Snapshot returns a copy of the current foreign rates.
func (t *RateTable) Snapshot() map[domain.CurrencyCode]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[domain.CurrencyCode]float64, len(t.rates))
	for code, rate := range t.rates {
		out[code] = rate
	}
	return out
}
