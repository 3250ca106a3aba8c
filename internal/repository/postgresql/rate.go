package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sitecrew/workforce-backend-go/internal/domain/rate"
	"github.com/sitecrew/workforce-backend-go/internal/pkg/database"
)

type rateResolver struct {
	db *database.DB
}

func NewRateResolver(db *database.DB) rate.Resolver {
	return &rateResolver{db: db}
}

// ResolveRate implements rate.Resolver. Policies are versioned by
// effective_date; the newest one at or before asOf wins.
func (r *rateResolver) ResolveRate(ctx context.Context, employeeID string, asOf time.Time, companyID string) (rate.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			id, employee_id, company_id, rate_type, rate,
			ot_multiplier, ot_threshold_hours, expected_working_days,
			tax_percentage, effective_date
		FROM rate_policies
		WHERE employee_id = $1
		  AND company_id = $2
		  AND effective_date <= $3
		ORDER BY effective_date DESC
		LIMIT 1
	`

	var p rate.Policy
	err := q.QueryRow(ctx, query, employeeID, companyID, asOf).Scan(
		&p.ID, &p.EmployeeID, &p.CompanyID, &p.Type, &p.Rate,
		&p.OTMultiplier, &p.OTThresholdHours, &p.ExpectedWorkingDays,
		&p.TaxPercentage, &p.EffectiveDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rate.Policy{}, rate.ErrPolicyNotFound
		}
		return rate.Policy{}, fmt.Errorf("failed to resolve rate policy: %w", err)
	}

	return p, nil
}
