package summary

import (
	"context"
	"time"
)

// SummaryRepository defines data access for monthly summaries. One record
// exists per (employee_id, period_month, period_year); all methods include
// companyID to prevent cross-company data access.
//
// The status-guarded mutations (SignByStaff, Approve, Reject, ResetToDraft)
// apply the change only while the row still holds the expected pre-state and
// report whether a row was affected. A false return after a successful
// legality check means a concurrent writer got there first.
type SummaryRepository interface {
	// UpsertDraft inserts a new DRAFT summary or re-writes the computed
	// fields of an existing one in place, provided it is still DRAFT.
	// Returns ErrConcurrentModification when the existing row left DRAFT
	// between the caller's legality check and the write.
	UpsertDraft(ctx context.Context, s MonthlySummary) (MonthlySummary, error)

	// ResetToDraft re-writes the computed fields and moves the row back to
	// DRAFT, clearing signatures and remarks, provided the row still holds
	// the expected status.
	ResetToDraft(ctx context.Context, s MonthlySummary, expected Status) (bool, error)

	GetByID(ctx context.Context, id string, companyID string) (MonthlySummary, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int, companyID string) (MonthlySummary, error)
	List(ctx context.Context, companyID string, filter ListFilter) ([]MonthlySummary, int64, error)

	// SignByStaff moves DRAFT -> SIGNED_BY_STAFF.
	SignByStaff(ctx context.Context, id, companyID, signature string, at time.Time) (bool, error)

	// Approve moves SIGNED_BY_STAFF -> APPROVED. invoiceNumber is applied
	// only if the row has none yet.
	Approve(ctx context.Context, id, companyID, adminID string, signature *string, invoiceNumber string, at time.Time) (bool, error)

	// Reject moves SIGNED_BY_STAFF -> REJECTED.
	Reject(ctx context.Context, id, companyID, adminID string, remarks *string, at time.Time) (bool, error)

	// NextInvoiceNumber draws the next globally-unique invoice number for
	// the period.
	NextInvoiceNumber(ctx context.Context, month, year int) (string, error)
}
