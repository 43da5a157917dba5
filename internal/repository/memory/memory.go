package memory

import (
	"currency_ledger/internal/repository"
)

var (
	_ repository.AccountRegistry = (*AccountRegistry)(nil)
	_ repository.RateStore       = (*RateTable)(nil)
)
