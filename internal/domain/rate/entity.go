package rate

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type enum
type Type string

const (
	TypeHourly   Type = "hourly"
	TypeDaily    Type = "daily"
	TypeMonthly  Type = "monthly"
	TypeContract Type = "contract"
)

func (t Type) Valid() bool {
	switch t {
	case TypeHourly, TypeDaily, TypeMonthly, TypeContract:
		return true
	}
	return false
}

// Policy holds the pay rules for one employee as of a given date.
type Policy struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Type       Type
	// Rate is per hour for hourly, per day for daily, flat for
	// monthly/contract employees.
	Rate             decimal.Decimal
	OTMultiplier     decimal.Decimal
	OTThresholdHours decimal.Decimal
	// ExpectedWorkingDays drives the absent-day computation. Policy data,
	// never a hard-coded calendar rule.
	ExpectedWorkingDays int
	TaxPercentage       decimal.Decimal
	EffectiveDate       time.Time
}
