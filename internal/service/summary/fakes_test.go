package summary

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sitecrew/workforce-backend-go/internal/domain/attendance"
	"github.com/sitecrew/workforce-backend-go/internal/domain/employee"
	"github.com/sitecrew/workforce-backend-go/internal/domain/leave"
	"github.com/sitecrew/workforce-backend-go/internal/domain/rate"
	"github.com/sitecrew/workforce-backend-go/internal/domain/summary"
)

const testCompanyID = "company-1"

// authContext builds a request context carrying a verified token, the way
// the jwtauth verifier middleware does in production.
func authContext(role, userID, employeeID string) context.Context {
	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{
		"company_id":  testCompanyID,
		"user_id":     userID,
		"employee_id": employeeID,
		"role":        role,
	})
	if err != nil {
		panic(err)
	}
	return jwtauth.NewContext(context.Background(), token, nil)
}

// ========== SUMMARY REPOSITORY FAKE ==========

type fakeSummaryRepo struct {
	mu         sync.Mutex
	byID       map[string]summary.MonthlySummary
	invoiceSeq int64
}

func newFakeSummaryRepo() *fakeSummaryRepo {
	return &fakeSummaryRepo{byID: make(map[string]summary.MonthlySummary)}
}

func periodKey(employeeID string, month, year int, companyID string) string {
	return fmt.Sprintf("%s|%d|%d|%s", employeeID, month, year, companyID)
}

func (r *fakeSummaryRepo) findByPeriod(employeeID string, month, year int, companyID string) (summary.MonthlySummary, bool) {
	want := periodKey(employeeID, month, year, companyID)
	for _, m := range r.byID {
		if periodKey(m.EmployeeID, m.PeriodMonth, m.PeriodYear, m.CompanyID) == want {
			return m, true
		}
	}
	return summary.MonthlySummary{}, false
}

func (r *fakeSummaryRepo) UpsertDraft(ctx context.Context, s summary.MonthlySummary) (summary.MonthlySummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := r.findByPeriod(s.EmployeeID, s.PeriodMonth, s.PeriodYear, s.CompanyID); ok {
		if existing.Status != summary.StatusDraft {
			return summary.MonthlySummary{}, summary.ErrConcurrentModification
		}
		s.ID = existing.ID
		s.CreatedAt = existing.CreatedAt
	} else {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	r.byID[s.ID] = s
	return s, nil
}

func (r *fakeSummaryRepo) ResetToDraft(ctx context.Context, s summary.MonthlySummary, expected summary.Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[s.ID]
	if !ok || existing.CompanyID != s.CompanyID || existing.Status != expected {
		return false, nil
	}

	s.Status = summary.StatusDraft
	s.StaffSignature = nil
	s.StaffSignedAt = nil
	s.AdminSignature = nil
	s.AdminApprovedAt = nil
	s.AdminApprovedBy = nil
	s.Remarks = nil
	s.InvoiceNumber = existing.InvoiceNumber
	s.CreatedAt = existing.CreatedAt
	s.UpdatedAt = time.Now().UTC()
	r.byID[s.ID] = s
	return true, nil
}

func (r *fakeSummaryRepo) GetByID(ctx context.Context, id string, companyID string) (summary.MonthlySummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byID[id]
	if !ok || m.CompanyID != companyID {
		return summary.MonthlySummary{}, summary.ErrSummaryNotFound
	}
	return m, nil
}

func (r *fakeSummaryRepo) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int, companyID string) (summary.MonthlySummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.findByPeriod(employeeID, month, year, companyID); ok {
		return m, nil
	}
	return summary.MonthlySummary{}, summary.ErrSummaryNotFound
}

func (r *fakeSummaryRepo) List(ctx context.Context, companyID string, filter summary.ListFilter) ([]summary.MonthlySummary, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []summary.MonthlySummary
	for _, m := range r.byID {
		if m.CompanyID != companyID {
			continue
		}
		if filter.EmployeeID != "" && m.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Month != 0 && m.PeriodMonth != filter.Month {
			continue
		}
		if filter.Year != 0 && m.PeriodYear != filter.Year {
			continue
		}
		if filter.Status != "" && string(m.Status) != filter.Status {
			continue
		}
		result = append(result, m)
	}
	return result, int64(len(result)), nil
}

func (r *fakeSummaryRepo) SignByStaff(ctx context.Context, id, companyID, signature string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byID[id]
	if !ok || m.CompanyID != companyID || m.Status != summary.StatusDraft {
		return false, nil
	}
	m.Status = summary.StatusSignedByStaff
	m.StaffSignature = &signature
	m.StaffSignedAt = &at
	m.UpdatedAt = at
	r.byID[id] = m
	return true, nil
}

func (r *fakeSummaryRepo) Approve(ctx context.Context, id, companyID, adminID string, signature *string, invoiceNumber string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byID[id]
	if !ok || m.CompanyID != companyID || m.Status != summary.StatusSignedByStaff {
		return false, nil
	}
	m.Status = summary.StatusApproved
	m.AdminSignature = signature
	m.AdminApprovedAt = &at
	m.AdminApprovedBy = &adminID
	if m.InvoiceNumber == nil && invoiceNumber != "" {
		m.InvoiceNumber = &invoiceNumber
	}
	m.UpdatedAt = at
	r.byID[id] = m
	return true, nil
}

func (r *fakeSummaryRepo) Reject(ctx context.Context, id, companyID, adminID string, remarks *string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byID[id]
	if !ok || m.CompanyID != companyID || m.Status != summary.StatusSignedByStaff {
		return false, nil
	}
	m.Status = summary.StatusRejected
	m.AdminApprovedAt = &at
	m.AdminApprovedBy = &adminID
	m.Remarks = remarks
	m.UpdatedAt = at
	r.byID[id] = m
	return true, nil
}

func (r *fakeSummaryRepo) NextInvoiceNumber(ctx context.Context, month, year int) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.invoiceSeq++
	return fmt.Sprintf("INV-%04d%02d-%06d", year, month, r.invoiceSeq), nil
}

// ========== COLLABORATOR FAKES ==========

type fakeEventRepo struct {
	events map[string][]attendance.Event
	err    error
}

func (r *fakeEventRepo) ListByEmployeePeriod(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]attendance.Event, error) {
	if r.err != nil {
		return nil, r.err
	}
	var result []attendance.Event
	for _, e := range r.events[employeeID] {
		if e.CompanyID == companyID && !e.ClockIn.Before(from) && e.ClockIn.Before(to) {
			result = append(result, e)
		}
	}
	return result, nil
}

type fakeGrantRepo struct {
	grants map[string][]leave.Grant
}

func (r *fakeGrantRepo) ListApprovedByEmployeePeriod(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]leave.Grant, error) {
	var result []leave.Grant
	for _, g := range r.grants[employeeID] {
		if g.CompanyID == companyID && g.StartDate.Before(to) && !g.EndDate.Before(from) {
			result = append(result, g)
		}
	}
	return result, nil
}

type fakeRateResolver struct {
	policies map[string]rate.Policy
}

func (r *fakeRateResolver) ResolveRate(ctx context.Context, employeeID string, asOf time.Time, companyID string) (rate.Policy, error) {
	p, ok := r.policies[employeeID]
	if !ok {
		return rate.Policy{}, rate.ErrPolicyNotFound
	}
	return p, nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.ID == id && e.CompanyID == companyID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	var result []employee.Employee
	for _, e := range r.employees {
		if e.CompanyID == companyID && e.IsActive {
			result = append(result, e)
		}
	}
	return result, nil
}
