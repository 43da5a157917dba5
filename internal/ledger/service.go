package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"currency_ledger/internal/domain"
	"currency_ledger/internal/repository"
	"currency_ledger/pkg/validator"
)

// Service owns the session's ledger state: the account registry and the
// shared rate table. One instance is constructed per session and passed
// explicitly; there is no package-level mutable state.
type Service struct {
	registry  repository.AccountRegistry
	rates     repository.RateStore
	validator *validator.AmountValidator
	mu        sync.RWMutex
	counters  map[string]int
	logger    *slog.Logger
}

func NewService(registry repository.AccountRegistry, rates repository.RateStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		registry:  registry,
		rates:     rates,
		validator: validator.NewAmountValidator(),
		counters:  make(map[string]int),
		logger:    logger,
	}
}

// Register creates an account with a zero home-currency balance.
func (s *Service) Register(ctx context.Context, name string) (*domain.Account, error) {
	if err := s.validator.ValidateAccountName(name); err != nil {
		return nil, err
	}

	account, err := s.registry.Register(ctx, name)
	if err != nil {
		return nil, err
	}

	s.recordCounter("accounts_registered", 1)
	s.logger.InfoContext(ctx, "Account registered",
		slog.String("account", account.Name),
		slog.String("currency", string(account.Currency)))
	return account, nil
}

// Lookup is an exact-match read. Absence is reported, not treated as an
// error; callers decide what a missing account means.
func (s *Service) Lookup(ctx context.Context, name string) (*domain.Account, bool) {
	return s.registry.Lookup(ctx, name)
}

// Deposit converts amount from src into the home currency and credits the
// account. Validation happens before any mutation.
func (s *Service) Deposit(ctx context.Context, name string, amount float64, src domain.CurrencyCode) (float64, error) {
	opID := uuid.NewString()

	if err := s.validator.ValidateAmount(amount); err != nil {
		return 0, err
	}

	credited, err := Convert(amount, src, domain.Home, s.rates)
	if err != nil {
		return 0, err
	}

	balance, err := s.registry.UpdateBalance(ctx, name, credited)
	if err != nil {
		return 0, err
	}

	s.recordCounter("deposits_processed", 1)
	s.logger.InfoContext(ctx, "Deposit completed",
		slog.String("op_id", opID),
		slog.String("account", name),
		slog.String("currency", string(src)),
		slog.Float64("amount", amount),
		slog.Float64("credited", credited),
		slog.Float64("balance", balance))
	return balance, nil
}

// Withdraw converts amount from src the same way as Deposit and debits the
// account. A withdrawal that would drive the balance below zero fails
// before any mutation; draining the balance to exactly zero is allowed.
func (s *Service) Withdraw(ctx context.Context, name string, amount float64, src domain.CurrencyCode) (float64, error) {
	opID := uuid.NewString()

	if err := s.validator.ValidateAmount(amount); err != nil {
		return 0, err
	}

	debited, err := Convert(amount, src, domain.Home, s.rates)
	if err != nil {
		return 0, err
	}

	account, exists := s.registry.Lookup(ctx, name)
	if !exists {
		return 0, fmt.Errorf("%w: account %q", repository.ErrNotFound, name)
	}
	if account.Balance-debited < 0 {
		return 0, fmt.Errorf("%w: balance %.2f, withdrawal %.2f", repository.ErrInsufficientFunds, account.Balance, debited)
	}

	balance, err := s.registry.UpdateBalance(ctx, name, -debited)
	if err != nil {
		return 0, err
	}

	s.recordCounter("withdrawals_processed", 1)
	s.logger.InfoContext(ctx, "Withdrawal completed",
		slog.String("op_id", opID),
		slog.String("account", name),
		slog.String("currency", string(src)),
		slog.Float64("amount", amount),
		slog.Float64("debited", debited),
		slog.Float64("balance", balance))
	return balance, nil
}

// ExchangePreview converts amount between two currencies selected by their
// position in the fixed currency list. Pure; nothing is credited anywhere.
func (s *Service) ExchangePreview(amount float64, srcIdx, destIdx int) (float64, error) {
	if err := s.validator.ValidateAmount(amount); err != nil {
		return 0, err
	}

	src, err := domain.CurrencyByIndex(srcIdx)
	if err != nil {
		return 0, err
	}
	dest, err := domain.CurrencyByIndex(destIdx)
	if err != nil {
		return 0, err
	}

	result, err := Convert(amount, src, dest, s.rates)
	if err != nil {
		return 0, err
	}

	s.recordCounter("conversions_previewed", 1)
	return result, nil
}

// SetRate records an operator-supplied quote for a foreign currency. The
// home currency's rate is fixed at 1.0 and cannot be set.
func (s *Service) SetRate(ctx context.Context, code domain.CurrencyCode, rate float64) error {
	if err := s.rates.Set(code, rate); err != nil {
		return err
	}

	s.recordCounter("rates_recorded", 1)
	s.logger.InfoContext(ctx, "Exchange rate recorded",
		slog.String("currency", string(code)),
		slog.Float64("rate", rate))
	return nil
}

// Rates returns the current foreign-rate snapshot for display.
func (s *Service) Rates() map[domain.CurrencyCode]float64 {
	return s.rates.Snapshot()
}

// ProjectInterest produces the accrual schedule for an account's current
// balance over dayCount days at the session's fixed annual rate. The real
// balance is left untouched.
func (s *Service) ProjectInterest(ctx context.Context, name string, dayCount int) (domain.InterestSchedule, error) {
	if err := s.validator.ValidateDayCount(dayCount); err != nil {
		return nil, err
	}

	account, exists := s.registry.Lookup(ctx, name)
	if !exists {
		return nil, fmt.Errorf("%w: account %q", repository.ErrNotFound, name)
	}

	schedule, err := ProjectInterest(account.Balance, dayCount, AnnualInterestRate)
	if err != nil {
		return nil, err
	}

	s.recordCounter("interest_projections", 1)
	return schedule, nil
}

// Counters returns the per-operation tallies kept for the session.
func (s *Service) Counters() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]int, len(s.counters))
	for k, v := range s.counters {
		out[k] = v
	}
	return out
}

func (s *Service) recordCounter(key string, value int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[key] += value
}
