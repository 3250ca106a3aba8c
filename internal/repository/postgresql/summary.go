package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sitecrew/workforce-backend-go/internal/domain/summary"
	"github.com/sitecrew/workforce-backend-go/internal/pkg/database"
)

type summaryRepository struct {
	db *database.DB
}

func NewSummaryRepository(db *database.DB) summary.SummaryRepository {
	return &summaryRepository{db: db}
}

const summaryColumns = `
	s.id, s.employee_id, s.company_id, s.period_month, s.period_year,
	s.total_working_days, s.total_worked_hours, s.total_ot_hours,
	s.approved_leave_days, s.absent_days, s.project_breakdown,
	s.subtotal, s.tax_percentage, s.tax_amount, s.total_amount,
	s.status, s.staff_signature, s.staff_signed_at,
	s.admin_signature, s.admin_approved_at, s.admin_approved_by,
	s.remarks, s.invoice_number, s.created_at, s.updated_at,
	e.name AS employee_name`

func scanSummary(row pgx.Row) (summary.MonthlySummary, error) {
	var m summary.MonthlySummary
	var breakdown []byte

	err := row.Scan(
		&m.ID, &m.EmployeeID, &m.CompanyID, &m.PeriodMonth, &m.PeriodYear,
		&m.TotalWorkingDays, &m.TotalWorkedHours, &m.TotalOTHours,
		&m.ApprovedLeaveDays, &m.AbsentDays, &breakdown,
		&m.Subtotal, &m.TaxPercentage, &m.TaxAmount, &m.TotalAmount,
		&m.Status, &m.StaffSignature, &m.StaffSignedAt,
		&m.AdminSignature, &m.AdminApprovedAt, &m.AdminApprovedBy,
		&m.Remarks, &m.InvoiceNumber, &m.CreatedAt, &m.UpdatedAt,
		&m.EmployeeName,
	)
	if err != nil {
		return summary.MonthlySummary{}, err
	}

	if len(breakdown) > 0 {
		if err := json.Unmarshal(breakdown, &m.Breakdown); err != nil {
			return summary.MonthlySummary{}, fmt.Errorf("failed to decode project breakdown: %w", err)
		}
	}

	return m, nil
}

// UpsertDraft implements summary.SummaryRepository. One row exists per
// (company_id, employee_id, period_month, period_year); the conditional
// DO UPDATE keeps a signed or approved row untouched, which surfaces as
// ErrConcurrentModification when a racing writer finalized it first.
func (r *summaryRepository) UpsertDraft(ctx context.Context, s summary.MonthlySummary) (summary.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	breakdown, err := json.Marshal(s.Breakdown)
	if err != nil {
		return summary.MonthlySummary{}, fmt.Errorf("failed to encode project breakdown: %w", err)
	}

	query := `
		INSERT INTO monthly_summaries (
			id, employee_id, company_id, period_month, period_year,
			total_working_days, total_worked_hours, total_ot_hours,
			approved_leave_days, absent_days, project_breakdown,
			subtotal, tax_percentage, tax_amount, total_amount, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		)
		ON CONFLICT (company_id, employee_id, period_month, period_year) DO UPDATE SET
			total_working_days = EXCLUDED.total_working_days,
			total_worked_hours = EXCLUDED.total_worked_hours,
			total_ot_hours = EXCLUDED.total_ot_hours,
			approved_leave_days = EXCLUDED.approved_leave_days,
			absent_days = EXCLUDED.absent_days,
			project_breakdown = EXCLUDED.project_breakdown,
			subtotal = EXCLUDED.subtotal,
			tax_percentage = EXCLUDED.tax_percentage,
			tax_amount = EXCLUDED.tax_amount,
			total_amount = EXCLUDED.total_amount,
			updated_at = NOW()
		WHERE monthly_summaries.status = 'DRAFT'
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		s.ID, s.EmployeeID, s.CompanyID, s.PeriodMonth, s.PeriodYear,
		s.TotalWorkingDays, s.TotalWorkedHours, s.TotalOTHours,
		s.ApprovedLeaveDays, s.AbsentDays, breakdown,
		s.Subtotal, s.TaxPercentage, s.TaxAmount, s.TotalAmount, s.Status,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return summary.MonthlySummary{}, summary.ErrConcurrentModification
		}
		return summary.MonthlySummary{}, fmt.Errorf("failed to upsert summary: %w", err)
	}

	return s, nil
}

// ResetToDraft implements summary.SummaryRepository.
func (r *summaryRepository) ResetToDraft(ctx context.Context, s summary.MonthlySummary, expected summary.Status) (bool, error) {
	q := GetQuerier(ctx, r.db)

	breakdown, err := json.Marshal(s.Breakdown)
	if err != nil {
		return false, fmt.Errorf("failed to encode project breakdown: %w", err)
	}

	query := `
		UPDATE monthly_summaries SET
			total_working_days = $3,
			total_worked_hours = $4,
			total_ot_hours = $5,
			approved_leave_days = $6,
			absent_days = $7,
			project_breakdown = $8,
			subtotal = $9,
			tax_percentage = $10,
			tax_amount = $11,
			total_amount = $12,
			status = 'DRAFT',
			staff_signature = NULL,
			staff_signed_at = NULL,
			admin_signature = NULL,
			admin_approved_at = NULL,
			admin_approved_by = NULL,
			remarks = NULL,
			updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND status = $13
	`

	tag, err := q.Exec(ctx, query,
		s.ID, s.CompanyID,
		s.TotalWorkingDays, s.TotalWorkedHours, s.TotalOTHours,
		s.ApprovedLeaveDays, s.AbsentDays, breakdown,
		s.Subtotal, s.TaxPercentage, s.TaxAmount, s.TotalAmount,
		expected,
	)
	if err != nil {
		return false, fmt.Errorf("failed to reset summary to draft: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// GetByID implements summary.SummaryRepository.
func (r *summaryRepository) GetByID(ctx context.Context, id string, companyID string) (summary.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + summaryColumns + `
		FROM monthly_summaries s
		JOIN employees e ON s.employee_id = e.id
		WHERE s.id = $1 AND s.company_id = $2
	`

	m, err := scanSummary(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return summary.MonthlySummary{}, summary.ErrSummaryNotFound
		}
		return summary.MonthlySummary{}, fmt.Errorf("failed to get summary: %w", err)
	}

	return m, nil
}

// GetByEmployeePeriod implements summary.SummaryRepository.
func (r *summaryRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int, companyID string) (summary.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + summaryColumns + `
		FROM monthly_summaries s
		JOIN employees e ON s.employee_id = e.id
		WHERE s.employee_id = $1 AND s.period_month = $2 AND s.period_year = $3 AND s.company_id = $4
	`

	m, err := scanSummary(q.QueryRow(ctx, query, employeeID, month, year, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return summary.MonthlySummary{}, summary.ErrSummaryNotFound
		}
		return summary.MonthlySummary{}, fmt.Errorf("failed to get summary by period: %w", err)
	}

	return m, nil
}

// List implements summary.SummaryRepository.
func (r *summaryRepository) List(ctx context.Context, companyID string, filter summary.ListFilter) ([]summary.MonthlySummary, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"s.company_id = $1"}
	args := []interface{}{companyID}

	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("s.employee_id = $%d", len(args)))
	}
	if filter.Month != 0 {
		args = append(args, filter.Month)
		conditions = append(conditions, fmt.Sprintf("s.period_month = $%d", len(args)))
	}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		conditions = append(conditions, fmt.Sprintf("s.period_year = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("s.status = $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM monthly_summaries s WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count summaries: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT %s
		FROM monthly_summaries s
		JOIN employees e ON s.employee_id = e.id
		WHERE %s
		ORDER BY s.period_year DESC, s.period_month DESC, e.name ASC
		LIMIT $%d OFFSET $%d
	`, summaryColumns, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list summaries: %w", err)
	}
	defer rows.Close()

	var result []summary.MonthlySummary
	for rows.Next() {
		m, err := scanSummary(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan summary row: %w", err)
		}
		result = append(result, m)
	}

	return result, total, rows.Err()
}

// SignByStaff implements summary.SummaryRepository.
func (r *summaryRepository) SignByStaff(ctx context.Context, id, companyID, signature string, at time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE monthly_summaries SET
			status = 'SIGNED_BY_STAFF',
			staff_signature = $3,
			staff_signed_at = $4,
			updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND status = 'DRAFT'
	`

	tag, err := q.Exec(ctx, query, id, companyID, signature, at)
	if err != nil {
		return false, fmt.Errorf("failed to sign summary: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Approve implements summary.SummaryRepository. The guard on the current
// status makes this the single atomic step of the approval; COALESCE keeps
// an invoice number that was assigned earlier.
func (r *summaryRepository) Approve(ctx context.Context, id, companyID, adminID string, signature *string, invoiceNumber string, at time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE monthly_summaries SET
			status = 'APPROVED',
			admin_signature = $4,
			admin_approved_at = $5,
			admin_approved_by = $3,
			invoice_number = COALESCE(invoice_number, NULLIF($6, '')),
			updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND status = 'SIGNED_BY_STAFF'
	`

	tag, err := q.Exec(ctx, query, id, companyID, adminID, signature, at, invoiceNumber)
	if err != nil {
		return false, fmt.Errorf("failed to approve summary: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Reject implements summary.SummaryRepository.
func (r *summaryRepository) Reject(ctx context.Context, id, companyID, adminID string, remarks *string, at time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE monthly_summaries SET
			status = 'REJECTED',
			admin_approved_at = $4,
			admin_approved_by = $3,
			remarks = $5,
			updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND status = 'SIGNED_BY_STAFF'
	`

	tag, err := q.Exec(ctx, query, id, companyID, adminID, at, remarks)
	if err != nil {
		return false, fmt.Errorf("failed to reject summary: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// NextInvoiceNumber implements summary.SummaryRepository. A global sequence
// keeps numbers unique and monotonic across all companies and periods.
func (r *summaryRepository) NextInvoiceNumber(ctx context.Context, month, year int) (string, error) {
	q := GetQuerier(ctx, r.db)

	var n int64
	if err := q.QueryRow(ctx, `SELECT nextval('invoice_number_seq')`).Scan(&n); err != nil {
		return "", fmt.Errorf("failed to draw invoice sequence: %w", err)
	}

	return fmt.Sprintf("INV-%04d%02d-%06d", year, month, n), nil
}
