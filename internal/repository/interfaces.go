package repository

import (
	"context"
	"errors"

	"currency_ledger/internal/domain"
)

type AccountRegistry interface {
	Register(ctx context.Context, name string) (*domain.Account, error)
	Lookup(ctx context.Context, name string) (*domain.Account, bool)
	UpdateBalance(ctx context.Context, name string, delta float64) (float64, error)
	All(ctx context.Context) []*domain.Account
}

type RateStore interface {
	Get(code domain.CurrencyCode) (float64, error)
	Set(code domain.CurrencyCode, rate float64) error
	Snapshot() map[domain.CurrencyCode]float64
}

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicate         = errors.New("duplicate entry")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidOperation  = errors.New("invalid operation")
)
