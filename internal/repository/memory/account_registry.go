package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"currency_ledger/internal/domain"
	"currency_ledger/internal/repository"
)

// AccountRegistry keeps session accounts keyed by name. Names are matched
// case-sensitively and accounts are never removed within a session.
type AccountRegistry struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	order    []string
}

func NewAccountRegistry() *AccountRegistry {
	return &AccountRegistry{
		accounts: make(map[string]*domain.Account),
	}
}

func (r *AccountRegistry) Register(ctx context.Context, name string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[name]; exists {
		return nil, fmt.Errorf("%w: account %q", repository.ErrDuplicate, name)
	}

	account := domain.NewAccount(name)
	account.CreatedAt = time.Now()
	account.LastActivityAt = account.CreatedAt
	r.accounts[name] = account
	r.order = append(r.order, name)

	return account, nil
}

func (r *AccountRegistry) Lookup(ctx context.Context, name string) (*domain.Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, exists := r.accounts[name]
	return account, exists
}

// UpdateBalance applies a signed delta and returns the new balance. The
// caller validates funds and converts amounts before calling.
func (r *AccountRegistry) UpdateBalance(ctx context.Context, name string, delta float64) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, exists := r.accounts[name]
	if !exists {
		return 0, fmt.Errorf("%w: account %q", repository.ErrNotFound, name)
	}

	account.Balance += delta
	account.LastActivityAt = time.Now()

	return account.Balance, nil
}

// All returns accounts in registration order.
func (r *AccountRegistry) All(ctx context.Context) []*domain.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Account, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.accounts[name])
	}
	return result
}
