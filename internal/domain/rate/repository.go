package rate

import (
	"context"
	"time"
)

// Resolver supplies the rate policy in effect for an employee at a date.
type Resolver interface {
	// ResolveRate returns the latest policy with effective_date <= asOf.
	ResolveRate(ctx context.Context, employeeID string, asOf time.Time, companyID string) (Policy, error)
}
