package leave

import (
	"context"
	"time"
)

// GrantRepository is the read-only stream of approved leave.
type GrantRepository interface {
	// ListApprovedByEmployeePeriod retrieves approved grants whose date range
	// overlaps [from, to).
	ListApprovedByEmployeePeriod(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]Grant, error)
}
