package domain

import (
	"errors"
	"fmt"
	"strings"
)

type CurrencyCode string

// Supported currency codes. Home is the settlement and pivot currency; the
// foreign codes are the only ones the rate table accepts.
const (
	PHP CurrencyCode = "PHP"
	USD CurrencyCode = "USD"
	JPY CurrencyCode = "JPY"
	GBP CurrencyCode = "GBP"
	EUR CurrencyCode = "EUR"
	CNY CurrencyCode = "CNY"
)

const Home = PHP

// Codes is the fixed ordered currency list, home first. Menu indices and
// title positions follow this order.
var Codes = []CurrencyCode{PHP, USD, JPY, GBP, EUR, CNY}

var Titles = []string{
	"Philippine Peso (PHP)",
	"United States Dollar (USD)",
	"Japanese Yen (JPY)",
	"British Pound Sterling (GBP)",
	"Euro (EUR)",
	"Chinese Yuan Renminbi (CNY)",
}

var ErrUnknownCurrency = errors.New("unknown currency")

// ParseCurrency converts a raw string to a canonical CurrencyCode,
// case-insensitively.
func ParseCurrency(raw string) (CurrencyCode, error) {
	code := CurrencyCode(strings.ToUpper(strings.TrimSpace(raw)))
	for _, c := range Codes {
		if c == code {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, raw)
}

// CurrencyByIndex resolves a zero-based position in Codes.
func CurrencyByIndex(idx int) (CurrencyCode, error) {
	if idx < 0 || idx >= len(Codes) {
		return "", fmt.Errorf("%w: index %d", ErrUnknownCurrency, idx)
	}
	return Codes[idx], nil
}

func (c CurrencyCode) IsHome() bool {
	return c == Home
}

func (c CurrencyCode) Title() string {
	for i, code := range Codes {
		if code == c {
			return Titles[i]
		}
	}
	return string(c)
}
