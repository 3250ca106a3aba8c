package summary

import (
	"fmt"
	"testing"

	"github.com/sitecrew/workforce-backend-go/internal/domain/attendance"
	"github.com/sitecrew/workforce-backend-go/internal/domain/employee"
	"github.com/sitecrew/workforce-backend-go/internal/domain/rate"
	"github.com/sitecrew/workforce-backend-go/internal/domain/summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fiveEmployeeService(t *testing.T) (*SummaryServiceImpl, *fakeSummaryRepo) {
	t.Helper()

	events := make(map[string][]attendance.Event)
	policies := make(map[string]rate.Policy)
	var employees []employee.Employee

	for i := 1; i <= 5; i++ {
		id := fmt.Sprintf("emp-%d", i)
		employees = append(employees, employee.Employee{
			ID: id, CompanyID: testCompanyID, Name: fmt.Sprintf("Worker %d", i), IsActive: true,
		})
		policies[id] = hourlyPolicy()
		// Employee 3 has no attendance at all for the period.
		if i != 3 {
			events[id] = marchEvents(t, id)
		}
	}

	return newTestService(events, nil, policies, employees)
}

func TestBulkGenerateIsolatesFailures(t *testing.T) {
	svc, _ := fiveEmployeeService(t)
	adminCtx := authContext("admin", "admin-1", "")

	result, err := svc.BulkGenerate(adminCtx, summary.BulkGenerateRequest{Month: 3, Year: 2025})
	require.NoError(t, err)

	assert.Len(t, result.Succeeded, 4)
	assert.Empty(t, result.Skipped)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "emp-3", result.Failed[0].EmployeeID)
	assert.Equal(t, summary.ErrNoAttendanceData.Error(), result.Failed[0].Reason)
}

func TestBulkGenerateSkipsFinalizedSummaries(t *testing.T) {
	svc, repo := fiveEmployeeService(t)
	adminCtx := authContext("admin", "admin-1", "")
	ownerCtx := authContext("staff", "user-1", "emp-1")

	resp, err := svc.Generate(adminCtx, summary.GenerateRequest{EmployeeID: "emp-1", Month: 3, Year: 2025})
	require.NoError(t, err)
	_, err = svc.StaffSign(ownerCtx, summary.SignRequest{SummaryID: resp.ID, Signature: "sig"})
	require.NoError(t, err)

	result, err := svc.BulkGenerate(adminCtx, summary.BulkGenerateRequest{Month: 3, Year: 2025})
	require.NoError(t, err)

	assert.Len(t, result.Succeeded, 3)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "emp-1", result.Skipped[0].EmployeeID)
	require.Len(t, result.Failed, 1)

	// The signed summary was left untouched.
	m, err := repo.GetByID(adminCtx, resp.ID, testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, summary.StatusSignedByStaff, m.Status)
}

func TestBulkGenerateValidatesPeriod(t *testing.T) {
	svc, _ := fiveEmployeeService(t)
	adminCtx := authContext("admin", "admin-1", "")

	_, err := svc.BulkGenerate(adminCtx, summary.BulkGenerateRequest{Month: 0, Year: 2025})
	require.Error(t, err)
}

func TestBulkApprove(t *testing.T) {
	svc, _ := fiveEmployeeService(t)
	adminCtx := authContext("admin", "admin-1", "")

	var signedIDs []string
	var draftID string
	for _, empID := range []string{"emp-1", "emp-2", "emp-4"} {
		resp, err := svc.Generate(adminCtx, summary.GenerateRequest{EmployeeID: empID, Month: 3, Year: 2025})
		require.NoError(t, err)

		if empID == "emp-4" {
			draftID = resp.ID
			continue
		}

		ownerCtx := authContext("staff", "user-"+empID, empID)
		_, err = svc.StaffSign(ownerCtx, summary.SignRequest{SummaryID: resp.ID, Signature: "sig"})
		require.NoError(t, err)
		signedIDs = append(signedIDs, resp.ID)
	}

	ids := append(append([]string{}, signedIDs...), draftID, "no-such-summary")
	result, err := svc.BulkApprove(adminCtx, summary.BulkApproveRequest{SummaryIDs: ids})
	require.NoError(t, err)

	assert.ElementsMatch(t, signedIDs, result.Approved)
	require.Len(t, result.Skipped, 2)

	skippedIDs := []string{result.Skipped[0].SummaryID, result.Skipped[1].SummaryID}
	assert.ElementsMatch(t, []string{draftID, "no-such-summary"}, skippedIDs)

	for _, id := range signedIDs {
		m, err := svc.summaryRepo.GetByID(adminCtx, id, testCompanyID)
		require.NoError(t, err)
		assert.Equal(t, summary.StatusApproved, m.Status)
		assert.NotNil(t, m.InvoiceNumber)
	}
}

func TestBulkApproveRequiresIDs(t *testing.T) {
	svc, _ := fiveEmployeeService(t)
	adminCtx := authContext("admin", "admin-1", "")

	_, err := svc.BulkApprove(adminCtx, summary.BulkApproveRequest{})
	require.Error(t, err)
}
