package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/sitecrew/workforce-backend-go/internal/domain/attendance"
	"github.com/sitecrew/workforce-backend-go/internal/pkg/database"
)

type attendanceEventRepository struct {
	db *database.DB
}

func NewAttendanceEventRepository(db *database.DB) attendance.EventRepository {
	return &attendanceEventRepository{db: db}
}

// ListByEmployeePeriod implements attendance.EventRepository.
func (r *attendanceEventRepository) ListByEmployeePeriod(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			a.id, a.employee_id, a.company_id, a.date,
			a.clock_in, a.clock_out, a.project_id, p.name AS project_name
		FROM attendance_events a
		LEFT JOIN projects p ON a.project_id = p.id
		WHERE a.employee_id = $1
		  AND a.company_id = $2
		  AND a.clock_in >= $3
		  AND a.clock_in < $4
		ORDER BY a.clock_in ASC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		var e attendance.Event
		if err := rows.Scan(
			&e.ID, &e.EmployeeID, &e.CompanyID, &e.Date,
			&e.ClockIn, &e.ClockOut, &e.ProjectID, &e.ProjectName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}
