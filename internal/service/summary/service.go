package summary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/sitecrew/workforce-backend-go/internal/domain/employee"
	"github.com/sitecrew/workforce-backend-go/internal/domain/rate"
	"github.com/sitecrew/workforce-backend-go/internal/domain/summary"
)

type SummaryServiceImpl struct {
	summaryRepo  summary.SummaryRepository
	employeeRepo employee.EmployeeRepository
	rateResolver rate.Resolver
	engine       *AggregationEngine
	calculator   *FinancialCalculator
	workerCount  int
	now          func() time.Time
}

func NewSummaryService(
	summaryRepo summary.SummaryRepository,
	employeeRepo employee.EmployeeRepository,
	rateResolver rate.Resolver,
	engine *AggregationEngine,
	calculator *FinancialCalculator,
	bulkWorkerCount int,
) summary.SummaryService {
	return &SummaryServiceImpl{
		summaryRepo:  summaryRepo,
		employeeRepo: employeeRepo,
		rateResolver: rateResolver,
		engine:       engine,
		calculator:   calculator,
		workerCount:  bulkWorkerCount,
		now:          time.Now,
	}
}

// Helper to get claim values from the JWT context.
func claimsFromContext(ctx context.Context) (companyID, userID, employeeID, role string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)
	employeeID, _ = claims["employee_id"].(string)
	role, _ = claims["role"].(string)

	return companyID, userID, employeeID, role, nil
}

// Generate implements summary.SummaryService.
func (s *SummaryServiceImpl) Generate(ctx context.Context, req summary.GenerateRequest) (summary.SummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return summary.SummaryResponse{}, err
	}

	companyID, _, _, _, err := claimsFromContext(ctx)
	if err != nil {
		return summary.SummaryResponse{}, err
	}

	m, err := s.generateOne(ctx, companyID, req.EmployeeID, req.Month, req.Year)
	if err != nil {
		return summary.SummaryResponse{}, err
	}

	return summary.NewSummaryResponse(m), nil
}

// generateOne aggregates, prices and upserts one employee's month. The
// upsert is the sole atomic boundary: a failed aggregation leaves no
// partial summary behind.
func (s *SummaryServiceImpl) generateOne(ctx context.Context, companyID, employeeID string, month, year int) (summary.MonthlySummary, error) {
	existing, err := s.summaryRepo.GetByEmployeePeriod(ctx, employeeID, month, year, companyID)
	if err != nil && !errors.Is(err, summary.ErrSummaryNotFound) {
		return summary.MonthlySummary{}, fmt.Errorf("failed to check existing summary: %w", err)
	}
	if err == nil && existing.Status != summary.StatusDraft {
		return summary.MonthlySummary{}, summary.ErrAlreadyFinal
	}

	m, err := s.computeSummary(ctx, companyID, employeeID, month, year)
	if err != nil {
		return summary.MonthlySummary{}, err
	}

	if existing.ID != "" {
		m.ID = existing.ID
	} else {
		m.ID = uuid.NewString()
	}

	upserted, err := s.summaryRepo.UpsertDraft(ctx, m)
	if err != nil {
		return summary.MonthlySummary{}, err
	}

	return upserted, nil
}

// computeSummary runs the aggregation and pricing pipeline without touching
// the store.
func (s *SummaryServiceImpl) computeSummary(ctx context.Context, companyID, employeeID string, month, year int) (summary.MonthlySummary, error) {
	periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)

	policy, err := s.rateResolver.ResolveRate(ctx, employeeID, periodStart, companyID)
	if err != nil {
		return summary.MonthlySummary{}, fmt.Errorf("failed to resolve rate policy: %w", err)
	}

	agg, err := s.engine.Aggregate(ctx, employeeID, month, year, policy, companyID)
	if err != nil {
		return summary.MonthlySummary{}, err
	}

	fin := s.calculator.Price(agg, policy)

	return summary.MonthlySummary{
		EmployeeID:        employeeID,
		CompanyID:         companyID,
		PeriodMonth:       month,
		PeriodYear:        year,
		TotalWorkingDays:  agg.TotalWorkingDays,
		TotalWorkedHours:  agg.TotalWorkedHours,
		TotalOTHours:      agg.TotalOTHours,
		ApprovedLeaveDays: agg.ApprovedLeaveDays,
		AbsentDays:        agg.AbsentDays,
		Breakdown:         agg.Breakdown,
		Subtotal:          fin.Subtotal,
		TaxPercentage:     fin.TaxPercentage,
		TaxAmount:         fin.TaxAmount,
		TotalAmount:       fin.TotalAmount,
		Status:            summary.StatusDraft,
	}, nil
}

// Regenerate implements summary.SummaryService.
func (s *SummaryServiceImpl) Regenerate(ctx context.Context, summaryID string) (summary.SummaryResponse, error) {
	companyID, _, _, _, err := claimsFromContext(ctx)
	if err != nil {
		return summary.SummaryResponse{}, err
	}

	existing, err := s.summaryRepo.GetByID(ctx, summaryID, companyID)
	if err != nil {
		return summary.SummaryResponse{}, err
	}

	if !summary.CanTransition(existing.Status, summary.EventRegenerate) {
		return summary.SummaryResponse{}, summary.ErrInvalidTransition
	}

	m, err := s.computeSummary(ctx, companyID, existing.EmployeeID, existing.PeriodMonth, existing.PeriodYear)
	if err != nil {
		return summary.SummaryResponse{}, err
	}
	m.ID = existing.ID

	ok, err := s.summaryRepo.ResetToDraft(ctx, m, existing.Status)
	if err != nil {
		return summary.SummaryResponse{}, err
	}
	if !ok {
		return summary.SummaryResponse{}, summary.ErrConcurrentModification
	}

	refreshed, err := s.summaryRepo.GetByID(ctx, summaryID, companyID)
	if err != nil {
		return summary.SummaryResponse{}, err
	}

	return summary.NewSummaryResponse(refreshed), nil
}

// StaffSign implements summary.SummaryService.
func (s *SummaryServiceImpl) StaffSign(ctx context.Context, req summary.SignRequest) (summary.SummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return summary.SummaryResponse{}, err
	}

	companyID, _, claimEmployeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return summary.SummaryResponse{}, err
	}

	m, err := s.summaryRepo.GetByID(ctx, req.SummaryID, companyID)
	if err != nil {
		return summary.SummaryResponse{}, err
	}

	if claimEmployeeID == "" || m.EmployeeID != claimEmployeeID {
		return summary.SummaryResponse{}, summary.ErrNotOwner
	}

	if !summary.CanTransition(m.Status, summary.EventStaffSign) {
		return summary.SummaryResponse{}, summary.ErrInvalidTransition
	}

	ok, err := s.summaryRepo.SignByStaff(ctx, m.ID, companyID, req.Signature, s.now().UTC())
	if err != nil {
		return summary.SummaryResponse{}, err
	}
	if !ok {
		return summary.SummaryResponse{}, summary.ErrConcurrentModification
	}

	signed, err := s.summaryRepo.GetByID(ctx, m.ID, companyID)
	if err != nil {
		return summary.SummaryResponse{}, err
	}

	return summary.NewSummaryResponse(signed), nil
}

// AdminDecide implements summary.SummaryService.
func (s *SummaryServiceImpl) AdminDecide(ctx context.Context, req summary.DecisionRequest) (summary.SummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return summary.SummaryResponse{}, err
	}

	companyID, userID, _, _, err := claimsFromContext(ctx)
	if err != nil {
		return summary.SummaryResponse{}, err
	}

	m, err := s.summaryRepo.GetByID(ctx, req.SummaryID, companyID)
	if err != nil {
		return summary.SummaryResponse{}, err
	}

	if err := s.decide(ctx, m, companyID, userID, req.Decision, req.Signature, req.Remarks); err != nil {
		return summary.SummaryResponse{}, err
	}

	decided, err := s.summaryRepo.GetByID(ctx, m.ID, companyID)
	if err != nil {
		return summary.SummaryResponse{}, err
	}

	return summary.NewSummaryResponse(decided), nil
}

// decide applies one admin decision against the optimistic-concurrency
// guard. The repository re-checks the pre-state inside the UPDATE, so two
// simultaneous approvals resolve to one winner and one
// ErrConcurrentModification.
func (s *SummaryServiceImpl) decide(ctx context.Context, m summary.MonthlySummary, companyID, adminID, decision string, signature, remarks *string) error {
	event := summary.EventAdminApprove
	if decision == summary.DecisionReject {
		event = summary.EventAdminReject
	}

	if !summary.CanTransition(m.Status, event) {
		return summary.ErrInvalidTransition
	}

	var ok bool
	var err error
	if event == summary.EventAdminApprove {
		// The invoice number is assigned lazily on approval and never
		// reassigned; the repository keeps an already-set number.
		invoiceNumber := ""
		if m.InvoiceNumber == nil {
			invoiceNumber, err = s.summaryRepo.NextInvoiceNumber(ctx, m.PeriodMonth, m.PeriodYear)
			if err != nil {
				return fmt.Errorf("failed to draw invoice number: %w", err)
			}
		}
		ok, err = s.summaryRepo.Approve(ctx, m.ID, companyID, adminID, signature, invoiceNumber, s.now().UTC())
	} else {
		ok, err = s.summaryRepo.Reject(ctx, m.ID, companyID, adminID, remarks, s.now().UTC())
	}

	if err != nil {
		return err
	}
	if !ok {
		return summary.ErrConcurrentModification
	}
	return nil
}

// GetSummary implements summary.SummaryService.
func (s *SummaryServiceImpl) GetSummary(ctx context.Context, id string) (summary.SummaryResponse, error) {
	companyID, _, _, _, err := claimsFromContext(ctx)
	if err != nil {
		return summary.SummaryResponse{}, err
	}

	m, err := s.summaryRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return summary.SummaryResponse{}, err
	}

	return summary.NewSummaryResponse(m), nil
}

// GetSummaryRecord implements summary.SummaryService.
func (s *SummaryServiceImpl) GetSummaryRecord(ctx context.Context, id string) (summary.MonthlySummary, error) {
	companyID, _, _, _, err := claimsFromContext(ctx)
	if err != nil {
		return summary.MonthlySummary{}, err
	}

	return s.summaryRepo.GetByID(ctx, id, companyID)
}

// ListSummaries implements summary.SummaryService.
func (s *SummaryServiceImpl) ListSummaries(ctx context.Context, filter summary.ListFilter) (summary.ListSummariesResponse, error) {
	companyID, _, _, _, err := claimsFromContext(ctx)
	if err != nil {
		return summary.ListSummariesResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	summaries, total, err := s.summaryRepo.List(ctx, companyID, filter)
	if err != nil {
		return summary.ListSummariesResponse{}, err
	}

	result := make([]summary.SummaryResponse, 0, len(summaries))
	for _, m := range summaries {
		result = append(result, summary.NewSummaryResponse(m))
	}

	return summary.ListSummariesResponse{
		Summaries:  result,
		TotalItems: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}
