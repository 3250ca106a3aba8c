package summary

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sitecrew/workforce-backend-go/internal/domain/summary"
	"golang.org/x/sync/errgroup"
)

// BulkGenerate implements summary.SummaryService. Employees are processed
// by a bounded worker pool; one employee's failure never aborts the batch,
// and every outcome is attributable in the result. Each employee gets
// exactly one generation attempt per call; retries belong to the caller.
func (s *SummaryServiceImpl) BulkGenerate(ctx context.Context, req summary.BulkGenerateRequest) (summary.GenerateBatchResult, error) {
	if err := req.Validate(); err != nil {
		return summary.GenerateBatchResult{}, err
	}

	companyID, _, _, _, err := claimsFromContext(ctx)
	if err != nil {
		return summary.GenerateBatchResult{}, err
	}

	employees, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return summary.GenerateBatchResult{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	result := summary.GenerateBatchResult{
		Succeeded: []string{},
		Failed:    []summary.BatchItemFailure{},
		Skipped:   []summary.BatchItemFailure{},
	}

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(s.workerCount)

	for _, emp := range employees {
		g.Go(func() error {
			_, genErr := s.generateOne(ctx, companyID, emp.ID, req.Month, req.Year)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case genErr == nil:
				result.Succeeded = append(result.Succeeded, emp.ID)
			case errors.Is(genErr, summary.ErrAlreadyFinal):
				result.Skipped = append(result.Skipped, summary.BatchItemFailure{
					EmployeeID: emp.ID,
					Reason:     genErr.Error(),
				})
			default:
				result.Failed = append(result.Failed, summary.BatchItemFailure{
					EmployeeID: emp.ID,
					Reason:     genErr.Error(),
				})
			}
			// Failures are reported per item, never propagated to the group.
			return nil
		})
	}

	_ = g.Wait()

	return result, nil
}

// BulkApprove implements summary.SummaryService. Only summaries currently
// in SIGNED_BY_STAFF are approved; everything else is reported as skipped,
// not failed.
func (s *SummaryServiceImpl) BulkApprove(ctx context.Context, req summary.BulkApproveRequest) (summary.ApproveBatchResult, error) {
	if err := req.Validate(); err != nil {
		return summary.ApproveBatchResult{}, err
	}

	companyID, userID, _, _, err := claimsFromContext(ctx)
	if err != nil {
		return summary.ApproveBatchResult{}, err
	}

	result := summary.ApproveBatchResult{
		Approved: []string{},
		Skipped:  []summary.SkippedSummary{},
	}

	for _, id := range req.SummaryIDs {
		m, err := s.summaryRepo.GetByID(ctx, id, companyID)
		if err != nil {
			result.Skipped = append(result.Skipped, summary.SkippedSummary{SummaryID: id, Reason: err.Error()})
			continue
		}

		if err := s.decide(ctx, m, companyID, userID, summary.DecisionApprove, req.Signature, nil); err != nil {
			result.Skipped = append(result.Skipped, summary.SkippedSummary{SummaryID: id, Reason: err.Error()})
			continue
		}

		result.Approved = append(result.Approved, id)
	}

	return result, nil
}
