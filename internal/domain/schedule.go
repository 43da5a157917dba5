package domain

// InterestEntry is one simulated day of accrual. Interest is the amount
// earned on that day; Balance already includes it.
type InterestEntry struct {
	Day      int     `json:"day"`
	Interest float64 `json:"interest"`
	Balance  float64 `json:"balance"`
}

// InterestSchedule is a projection result, never persisted. Day indices are
// contiguous starting at 1.
type InterestSchedule []InterestEntry
