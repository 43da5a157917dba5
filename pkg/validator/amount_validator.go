package validator

import (
	"errors"
	"fmt"
	"math"
	"regexp"
)

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrInvalidAccount = errors.New("invalid account name")
)

// AmountValidator checks the semantic constraints the core enforces on
// already-parsed values. Raw-text parse failures are the driver's concern
// and never reach this layer.
type AmountValidator struct {
	nameRegex *regexp.Regexp
}

func NewAmountValidator() *AmountValidator {
	return &AmountValidator{
		nameRegex: regexp.MustCompile(`\S`),
	}
}

// ValidateAmount rejects NaN and infinities. Sign is not checked here;
// withdrawals enforce the balance floor separately.
func (v *AmountValidator) ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	return nil
}

// ValidateDayCount rejects negative horizons. Zero is allowed and yields an
// empty schedule.
func (v *AmountValidator) ValidateDayCount(days int) error {
	if days < 0 {
		return fmt.Errorf("%w: day count %d", ErrInvalidAmount, days)
	}
	return nil
}

// ValidateAccountName requires at least one non-whitespace character.
func (v *AmountValidator) ValidateAccountName(name string) error {
	if !v.nameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAccount, name)
	}
	return nil
}
