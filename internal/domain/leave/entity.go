package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// Grant is an approved leave entry. Submission and approval happen in the
// leave module upstream; only approved grants ever reach this engine.
type Grant struct {
	ID         string
	EmployeeID string
	CompanyID  string
	StartDate  time.Time
	EndDate    time.Time
	// DayFraction is the portion of a day each calendar day of the range
	// counts for (1 for full days, 0.5 for half days).
	DayFraction decimal.Decimal
}
