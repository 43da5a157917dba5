package domain

import (
	"time"
)

// Account holds a single balance settled in the home currency. The name is
// the identity key and never changes; neither does the currency.
type Account struct {
	Name           string       `json:"name"`
	Balance        float64      `json:"balance"`
	Currency       CurrencyCode `json:"currency"`
	CreatedAt      time.Time    `json:"created_at"`
	LastActivityAt time.Time    `json:"last_activity_at"`
}

func NewAccount(name string) *Account {
	return &Account{
		Name:     name,
		Balance:  0,
		Currency: Home,
	}
}
