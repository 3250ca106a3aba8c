package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/sitecrew/workforce-backend-go/internal/domain/leave"
	"github.com/sitecrew/workforce-backend-go/internal/pkg/database"
)

type leaveGrantRepository struct {
	db *database.DB
}

func NewLeaveGrantRepository(db *database.DB) leave.GrantRepository {
	return &leaveGrantRepository{db: db}
}

// ListApprovedByEmployeePeriod implements leave.GrantRepository.
func (r *leaveGrantRepository) ListApprovedByEmployeePeriod(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]leave.Grant, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, start_date, end_date, day_fraction
		FROM leave_grants
		WHERE employee_id = $1
		  AND company_id = $2
		  AND status = 'approved'
		  AND start_date < $4
		  AND end_date >= $3
		ORDER BY start_date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave grants: %w", err)
	}
	defer rows.Close()

	var grants []leave.Grant
	for rows.Next() {
		var g leave.Grant
		if err := rows.Scan(&g.ID, &g.EmployeeID, &g.CompanyID, &g.StartDate, &g.EndDate, &g.DayFraction); err != nil {
			return nil, fmt.Errorf("failed to scan leave grant: %w", err)
		}
		grants = append(grants, g)
	}

	return grants, rows.Err()
}
