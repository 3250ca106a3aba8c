package summary

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitecrew/workforce-backend-go/internal/domain/attendance"
	"github.com/sitecrew/workforce-backend-go/internal/domain/employee"
	"github.com/sitecrew/workforce-backend-go/internal/domain/leave"
	"github.com/sitecrew/workforce-backend-go/internal/domain/rate"
	"github.com/sitecrew/workforce-backend-go/internal/domain/summary"
	"github.com/sitecrew/workforce-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(
	events map[string][]attendance.Event,
	grants map[string][]leave.Grant,
	policies map[string]rate.Policy,
	employees []employee.Employee,
) (*SummaryServiceImpl, *fakeSummaryRepo) {
	repo := newFakeSummaryRepo()
	engine := testEngine(events, grants, "2025-04-15")
	calculator := NewFinancialCalculator(0)

	svc := NewSummaryService(
		repo,
		&fakeEmployeeRepo{employees: employees},
		&fakeRateResolver{policies: policies},
		engine,
		calculator,
		4,
	).(*SummaryServiceImpl)
	svc.now = func() time.Time { return mustDate("2025-04-15") }

	return svc, repo
}

func marchEvents(t *testing.T, employeeID string) []attendance.Event {
	t.Helper()
	return []attendance.Event{
		completeEvent(t, employeeID, "2025-03-03", "08:00", "16:00", "p1", "Bridge"),
		completeEvent(t, employeeID, "2025-03-04", "08:00", "18:00", "p1", "Bridge"),
	}
}

func singleEmployeeService(t *testing.T) (*SummaryServiceImpl, *fakeSummaryRepo) {
	t.Helper()
	return newTestService(
		map[string][]attendance.Event{"emp-1": marchEvents(t, "emp-1")},
		nil,
		map[string]rate.Policy{"emp-1": hourlyPolicy()},
		[]employee.Employee{{ID: "emp-1", CompanyID: testCompanyID, Name: "Dewi", IsActive: true}},
	)
}

func TestGenerateCreatesDraft(t *testing.T) {
	svc, _ := singleEmployeeService(t)
	ctx := authContext("admin", "admin-1", "")

	resp, err := svc.Generate(ctx, summary.GenerateRequest{EmployeeID: "emp-1", Month: 3, Year: 2025})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, string(summary.StatusDraft), resp.Status)
	assert.Equal(t, 2, resp.TotalWorkingDays)
	// 8h + 8h regular, 2h OT on the second day.
	assert.True(t, resp.TotalWorkedHours.Equal(decimal.NewFromInt(16)))
	assert.True(t, resp.TotalOTHours.Equal(decimal.NewFromInt(2)))
	// 16*10 + 2*10*1.5
	assert.Equal(t, "190.00", resp.Subtotal.StringFixed(2))
}

func TestGenerateValidatesRequest(t *testing.T) {
	svc, _ := singleEmployeeService(t)
	ctx := authContext("admin", "admin-1", "")

	_, err := svc.Generate(ctx, summary.GenerateRequest{EmployeeID: "", Month: 13, Year: 2025})
	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	details := validationErrs.ToMap()
	assert.Contains(t, details, "employee_id")
	assert.Contains(t, details, "month")
}

func TestGenerateRefusesFinalizedSummary(t *testing.T) {
	svc, repo := singleEmployeeService(t)
	ctx := authContext("admin", "admin-1", "")

	resp, err := svc.Generate(ctx, summary.GenerateRequest{EmployeeID: "emp-1", Month: 3, Year: 2025})
	require.NoError(t, err)

	ok, err := repo.SignByStaff(ctx, resp.ID, testCompanyID, "sig", time.Now().UTC())
	require.NoError(t, err)
	require.True(t, ok)

	_, err = svc.Generate(ctx, summary.GenerateRequest{EmployeeID: "emp-1", Month: 3, Year: 2025})
	assert.ErrorIs(t, err, summary.ErrAlreadyFinal)
}

func TestRegenerateIsIdempotent(t *testing.T) {
	svc, _ := singleEmployeeService(t)
	ctx := authContext("admin", "admin-1", "")

	first, err := svc.Generate(ctx, summary.GenerateRequest{EmployeeID: "emp-1", Month: 3, Year: 2025})
	require.NoError(t, err)

	second, err := svc.Regenerate(ctx, first.ID)
	require.NoError(t, err)
	third, err := svc.Regenerate(ctx, first.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.ID, third.ID)
	for _, resp := range []summary.SummaryResponse{second, third} {
		assert.Equal(t, string(summary.StatusDraft), resp.Status)
		assert.Equal(t, first.TotalWorkingDays, resp.TotalWorkingDays)
		assert.True(t, first.TotalWorkedHours.Equal(resp.TotalWorkedHours))
		assert.True(t, first.TotalOTHours.Equal(resp.TotalOTHours))
		assert.True(t, first.Subtotal.Equal(resp.Subtotal))
		assert.True(t, first.TotalAmount.Equal(resp.TotalAmount))
	}
}

func TestStaffSign(t *testing.T) {
	svc, _ := singleEmployeeService(t)
	adminCtx := authContext("admin", "admin-1", "")
	ownerCtx := authContext("staff", "user-1", "emp-1")
	strangerCtx := authContext("staff", "user-2", "emp-2")

	resp, err := svc.Generate(adminCtx, summary.GenerateRequest{EmployeeID: "emp-1", Month: 3, Year: 2025})
	require.NoError(t, err)

	_, err = svc.StaffSign(strangerCtx, summary.SignRequest{SummaryID: resp.ID, Signature: "sig-blob"})
	assert.ErrorIs(t, err, summary.ErrNotOwner)

	signed, err := svc.StaffSign(ownerCtx, summary.SignRequest{SummaryID: resp.ID, Signature: "sig-blob"})
	require.NoError(t, err)
	assert.Equal(t, string(summary.StatusSignedByStaff), signed.Status)
	assert.NotNil(t, signed.StaffSignedAt)

	_, err = svc.StaffSign(ownerCtx, summary.SignRequest{SummaryID: resp.ID, Signature: "sig-blob"})
	assert.ErrorIs(t, err, summary.ErrInvalidTransition)
}

func TestAdminDecideApproveAssignsInvoice(t *testing.T) {
	svc, _ := singleEmployeeService(t)
	adminCtx := authContext("admin", "admin-1", "")
	ownerCtx := authContext("staff", "user-1", "emp-1")

	resp, err := svc.Generate(adminCtx, summary.GenerateRequest{EmployeeID: "emp-1", Month: 3, Year: 2025})
	require.NoError(t, err)

	// A draft cannot be decided.
	_, err = svc.AdminDecide(adminCtx, summary.DecisionRequest{SummaryID: resp.ID, Decision: summary.DecisionApprove})
	assert.ErrorIs(t, err, summary.ErrInvalidTransition)

	_, err = svc.StaffSign(ownerCtx, summary.SignRequest{SummaryID: resp.ID, Signature: "sig-blob"})
	require.NoError(t, err)

	approved, err := svc.AdminDecide(adminCtx, summary.DecisionRequest{SummaryID: resp.ID, Decision: summary.DecisionApprove})
	require.NoError(t, err)
	assert.Equal(t, string(summary.StatusApproved), approved.Status)
	require.NotNil(t, approved.InvoiceNumber)
	assert.True(t, strings.HasPrefix(*approved.InvoiceNumber, "INV-202503-"))
	require.NotNil(t, approved.AdminApprovedBy)
	assert.Equal(t, "admin-1", *approved.AdminApprovedBy)

	// Approval is terminal.
	_, err = svc.AdminDecide(adminCtx, summary.DecisionRequest{SummaryID: resp.ID, Decision: summary.DecisionApprove})
	assert.ErrorIs(t, err, summary.ErrInvalidTransition)
	_, err = svc.Regenerate(adminCtx, resp.ID)
	assert.ErrorIs(t, err, summary.ErrInvalidTransition)
}

func TestAdminDecideRejectAndReopen(t *testing.T) {
	svc, _ := singleEmployeeService(t)
	adminCtx := authContext("admin", "admin-1", "")
	ownerCtx := authContext("staff", "user-1", "emp-1")

	resp, err := svc.Generate(adminCtx, summary.GenerateRequest{EmployeeID: "emp-1", Month: 3, Year: 2025})
	require.NoError(t, err)
	_, err = svc.StaffSign(ownerCtx, summary.SignRequest{SummaryID: resp.ID, Signature: "sig-blob"})
	require.NoError(t, err)

	remarks := "missing tuesday checkout"
	rejected, err := svc.AdminDecide(adminCtx, summary.DecisionRequest{
		SummaryID: resp.ID,
		Decision:  summary.DecisionReject,
		Remarks:   &remarks,
	})
	require.NoError(t, err)
	assert.Equal(t, string(summary.StatusRejected), rejected.Status)
	require.NotNil(t, rejected.Remarks)
	assert.Equal(t, remarks, *rejected.Remarks)
	assert.Nil(t, rejected.InvoiceNumber)

	reopened, err := svc.Regenerate(adminCtx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, string(summary.StatusDraft), reopened.Status)
	assert.Nil(t, reopened.Remarks)
	assert.Nil(t, reopened.StaffSignedAt)
}

func TestInvoiceNumbersAreUnique(t *testing.T) {
	svc, _ := newTestService(
		map[string][]attendance.Event{
			"emp-1": marchEvents(t, "emp-1"),
			"emp-2": marchEvents(t, "emp-2"),
		},
		nil,
		map[string]rate.Policy{"emp-1": hourlyPolicy(), "emp-2": hourlyPolicy()},
		[]employee.Employee{
			{ID: "emp-1", CompanyID: testCompanyID, Name: "Dewi", IsActive: true},
			{ID: "emp-2", CompanyID: testCompanyID, Name: "Budi", IsActive: true},
		},
	)
	adminCtx := authContext("admin", "admin-1", "")

	invoices := make(map[string]struct{})
	for _, empID := range []string{"emp-1", "emp-2"} {
		ownerCtx := authContext("staff", "user-"+empID, empID)

		resp, err := svc.Generate(adminCtx, summary.GenerateRequest{EmployeeID: empID, Month: 3, Year: 2025})
		require.NoError(t, err)
		_, err = svc.StaffSign(ownerCtx, summary.SignRequest{SummaryID: resp.ID, Signature: "sig"})
		require.NoError(t, err)
		approved, err := svc.AdminDecide(adminCtx, summary.DecisionRequest{SummaryID: resp.ID, Decision: summary.DecisionApprove})
		require.NoError(t, err)

		require.NotNil(t, approved.InvoiceNumber)
		invoices[*approved.InvoiceNumber] = struct{}{}
	}

	assert.Len(t, invoices, 2)
}

func TestConcurrentApprovalHasSingleWinner(t *testing.T) {
	svc, repo := singleEmployeeService(t)
	adminCtx := authContext("admin", "admin-1", "")
	ownerCtx := authContext("staff", "user-1", "emp-1")

	resp, err := svc.Generate(adminCtx, summary.GenerateRequest{EmployeeID: "emp-1", Month: 3, Year: 2025})
	require.NoError(t, err)
	_, err = svc.StaffSign(ownerCtx, summary.SignRequest{SummaryID: resp.ID, Signature: "sig"})
	require.NoError(t, err)

	// Both admins hold the same SIGNED_BY_STAFF snapshot before either writes.
	m, err := repo.GetByID(adminCtx, resp.ID, testCompanyID)
	require.NoError(t, err)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = svc.decide(adminCtx, m, testCompanyID, "admin-1", summary.DecisionApprove, nil, nil)
		}()
	}
	wg.Wait()

	winners, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			winners++
		case assert.ErrorIs(t, err, summary.ErrConcurrentModification):
			conflicts++
		}
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, 1, conflicts)

	final, err := repo.GetByID(adminCtx, resp.ID, testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, summary.StatusApproved, final.Status)
	assert.NotNil(t, final.InvoiceNumber)
}

func TestListSummariesDefaultsPagination(t *testing.T) {
	svc, _ := singleEmployeeService(t)
	adminCtx := authContext("admin", "admin-1", "")

	_, err := svc.Generate(adminCtx, summary.GenerateRequest{EmployeeID: "emp-1", Month: 3, Year: 2025})
	require.NoError(t, err)

	list, err := svc.ListSummaries(adminCtx, summary.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 20, list.Limit)
	assert.Equal(t, int64(1), list.TotalItems)
	require.Len(t, list.Summaries, 1)

	filtered, err := svc.ListSummaries(adminCtx, summary.ListFilter{Status: string(summary.StatusApproved)})
	require.NoError(t, err)
	assert.Empty(t, filtered.Summaries)
}
