package summary

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitecrew/workforce-backend-go/internal/pkg/validator"
)

// ========== REQUEST DTOs ==========

type GenerateRequest struct {
	EmployeeID string `json:"employee_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	errs = append(errs, validatePeriod(r.Month, r.Year)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkGenerateRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *BulkGenerateRequest) Validate() error {
	if errs := validatePeriod(r.Month, r.Year); len(errs) > 0 {
		return errs
	}
	return nil
}

type SignRequest struct {
	SummaryID string `json:"-"`
	// Signature is an opaque blob reference produced by the signing pad.
	Signature string `json:"signature"`
}

func (r *SignRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SummaryID) {
		errs = append(errs, validator.ValidationError{Field: "summary_id", Message: "is required"})
	}
	if validator.IsEmpty(r.Signature) {
		errs = append(errs, validator.ValidationError{Field: "signature", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

type DecisionRequest struct {
	SummaryID string  `json:"-"`
	Decision  string  `json:"decision"` // "approve" or "reject"
	Signature *string `json:"signature,omitempty"`
	Remarks   *string `json:"remarks,omitempty"`
}

func (r *DecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SummaryID) {
		errs = append(errs, validator.ValidationError{Field: "summary_id", Message: "is required"})
	}
	if !validator.IsInSlice(r.Decision, []string{DecisionApprove, DecisionReject}) {
		errs = append(errs, validator.ValidationError{Field: "decision", Message: "must be 'approve' or 'reject'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkApproveRequest struct {
	SummaryIDs []string `json:"summary_ids"`
	Signature  *string  `json:"signature,omitempty"`
}

func (r *BulkApproveRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.SummaryIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "summary_ids", Message: "must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListFilter struct {
	EmployeeID string
	Month      int
	Year       int
	Status     string
	Page       int
	Limit      int
}

func validatePeriod(month, year int) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if month < 1 || month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if year < 1 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a positive year"})
	}
	return errs
}

// ========== RESPONSE DTOs ==========

type SummaryResponse struct {
	ID                string                  `json:"id"`
	EmployeeID        string                  `json:"employee_id"`
	EmployeeName      *string                 `json:"employee_name,omitempty"`
	PeriodMonth       int                     `json:"period_month"`
	PeriodYear        int                     `json:"period_year"`
	TotalWorkingDays  int                     `json:"total_working_days"`
	TotalWorkedHours  decimal.Decimal         `json:"total_worked_hours"`
	TotalOTHours      decimal.Decimal         `json:"total_ot_hours"`
	ApprovedLeaveDays decimal.Decimal         `json:"approved_leaves"`
	AbsentDays        int                     `json:"absent_days"`
	Breakdown         []ProjectBreakdownEntry `json:"project_breakdown"`
	Subtotal          decimal.Decimal         `json:"subtotal"`
	TaxPercentage     decimal.Decimal         `json:"tax_percentage"`
	TaxAmount         decimal.Decimal         `json:"tax_amount"`
	TotalAmount       decimal.Decimal         `json:"total_amount"`
	Status            string                  `json:"status"`
	StaffSignedAt     *string                 `json:"staff_signed_at,omitempty"`
	AdminApprovedAt   *string                 `json:"admin_approved_at,omitempty"`
	AdminApprovedBy   *string                 `json:"admin_approved_by,omitempty"`
	Remarks           *string                 `json:"remarks,omitempty"`
	InvoiceNumber     *string                 `json:"invoice_number,omitempty"`
	CreatedAt         string                  `json:"created_at"`
	UpdatedAt         string                  `json:"updated_at"`
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

func NewSummaryResponse(m MonthlySummary) SummaryResponse {
	return SummaryResponse{
		ID:                m.ID,
		EmployeeID:        m.EmployeeID,
		EmployeeName:      m.EmployeeName,
		PeriodMonth:       m.PeriodMonth,
		PeriodYear:        m.PeriodYear,
		TotalWorkingDays:  m.TotalWorkingDays,
		TotalWorkedHours:  m.TotalWorkedHours,
		TotalOTHours:      m.TotalOTHours,
		ApprovedLeaveDays: m.ApprovedLeaveDays,
		AbsentDays:        m.AbsentDays,
		Breakdown:         m.Breakdown,
		Subtotal:          m.Subtotal,
		TaxPercentage:     m.TaxPercentage,
		TaxAmount:         m.TaxAmount,
		TotalAmount:       m.TotalAmount,
		Status:            string(m.Status),
		StaffSignedAt:     timePtrToString(m.StaffSignedAt),
		AdminApprovedAt:   timePtrToString(m.AdminApprovedAt),
		AdminApprovedBy:   m.AdminApprovedBy,
		Remarks:           m.Remarks,
		InvoiceNumber:     m.InvoiceNumber,
		CreatedAt:         m.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:         m.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

type ListSummariesResponse struct {
	Summaries  []SummaryResponse `json:"summaries"`
	TotalItems int64             `json:"total_items"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

// ========== BATCH RESULT DTOs ==========

type BatchItemFailure struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

type GenerateBatchResult struct {
	Succeeded []string           `json:"succeeded"`
	Failed    []BatchItemFailure `json:"failed"`
	Skipped   []BatchItemFailure `json:"skipped"`
}

type SkippedSummary struct {
	SummaryID string `json:"summary_id"`
	Reason    string `json:"reason"`
}

type ApproveBatchResult struct {
	Approved []string         `json:"approved"`
	Skipped  []SkippedSummary `json:"skipped"`
}
