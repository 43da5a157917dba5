package ledger

import (
	"fmt"

	"currency_ledger/internal/domain"
	"currency_ledger/pkg/validator"
)

// AnnualInterestRate is fixed for the session. The daily rate is the annual
// rate over 365, with no leap-year adjustment.
const (
	AnnualInterestRate = 0.05
	daysPerYear        = 365
)

// ProjectInterest simulates dayCount days of daily compounding starting
// from balance. Each day's interest is computed against the balance
// including all prior accrual, so the interest column grows day over day.
// The projection never touches a real account balance.
func ProjectInterest(balance float64, dayCount int, annualRate float64) (domain.InterestSchedule, error) {
	if dayCount < 0 {
		return nil, fmt.Errorf("%w: day count %d", validator.ErrInvalidAmount, dayCount)
	}

	dailyRate := annualRate / daysPerYear
	schedule := make(domain.InterestSchedule, 0, dayCount)

	running := balance
	for day := 1; day <= dayCount; day++ {
		interest := running * dailyRate
		running += interest
		schedule = append(schedule, domain.InterestEntry{
			Day:      day,
			Interest: interest,
			Balance:  running,
		})
	}

	return schedule, nil
}
