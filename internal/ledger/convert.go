package ledger

import (
	"currency_ledger/internal/domain"
	"currency_ledger/internal/repository"
)

// Convert exchanges amount from src to dest, always pivoting through the
// home currency: foreign amounts are multiplied into home units by the
// source rate, then divided out by the destination rate. Keeping the home
// currency as the pivot means the rate table stays linear in the number of
// currencies instead of holding a quadratic cross-rate matrix.
//
// Pure function over the current table state; no rounding is applied.
func Convert(amount float64, src, dest domain.CurrencyCode, rates repository.RateStore) (float64, error) {
	pivot := amount
	if !src.IsHome() {
		rate, err := rates.Get(src)
		if err != nil {
			return 0, err
		}
		pivot = amount * rate
	}

	if dest.IsHome() {
		return pivot, nil
	}

	rate, err := rates.Get(dest)
	if err != nil {
		return 0, err
	}
	return pivot / rate, nil
}
