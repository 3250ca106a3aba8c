package summary

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	StatusDraft         Status = "DRAFT"
	StatusSignedByStaff Status = "SIGNED_BY_STAFF"
	StatusApproved      Status = "APPROVED"
	StatusRejected      Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSignedByStaff, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ProjectBreakdownEntry attributes worked time to one project. The sum of
// per-project days need not equal total working days; unattributed hours
// carry no project and appear only in the totals.
type ProjectBreakdownEntry struct {
	ProjectID   string          `json:"project_id"`
	ProjectName string          `json:"project_name"`
	Days        int             `json:"days"`
	Hours       decimal.Decimal `json:"hours"`
	OTHours     decimal.Decimal `json:"ot_hours"`
}

// MonthlySummary - one record per (employee, month, year)
type MonthlySummary struct {
	ID          string
	EmployeeID  string
	CompanyID   string
	PeriodMonth int
	PeriodYear  int

	TotalWorkingDays  int
	TotalWorkedHours  decimal.Decimal
	TotalOTHours      decimal.Decimal
	ApprovedLeaveDays decimal.Decimal
	AbsentDays        int
	Breakdown         []ProjectBreakdownEntry

	Subtotal      decimal.Decimal
	TaxPercentage decimal.Decimal
	TaxAmount     decimal.Decimal
	TotalAmount   decimal.Decimal

	Status          Status
	StaffSignature  *string
	StaffSignedAt   *time.Time
	AdminSignature  *string
	AdminApprovedAt *time.Time
	AdminApprovedBy *string
	Remarks         *string
	// InvoiceNumber is assigned once, on the transition into APPROVED.
	InvoiceNumber *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
}

// PeriodStart returns the first instant of the summary's month in UTC.
func (m MonthlySummary) PeriodStart() time.Time {
	return time.Date(m.PeriodYear, time.Month(m.PeriodMonth), 1, 0, 0, 0, 0, time.UTC)
}

// AggregationResult holds the transient metrics computed from the raw
// attendance and leave streams. Consumed during creation/regeneration,
// never persisted on its own.
type AggregationResult struct {
	TotalWorkingDays  int
	TotalWorkedHours  decimal.Decimal
	TotalOTHours      decimal.Decimal
	ApprovedLeaveDays decimal.Decimal
	AbsentDays        int
	Breakdown         []ProjectBreakdownEntry
}

// FinancialResult holds the priced amounts for one aggregation.
type FinancialResult struct {
	Subtotal      decimal.Decimal
	TaxPercentage decimal.Decimal
	TaxAmount     decimal.Decimal
	TotalAmount   decimal.Decimal
}
