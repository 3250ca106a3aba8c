package attendance

import (
	"context"
	"time"
)

// EventRepository is the read-only attendance stream consumed by the
// aggregation engine. All methods include companyID to prevent
// cross-company data access.
type EventRepository interface {
	// ListByEmployeePeriod retrieves events with clock_in inside [from, to),
	// ordered by clock_in ascending.
	ListByEmployeePeriod(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]Event, error)
}
