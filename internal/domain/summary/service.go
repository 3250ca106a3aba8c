package summary

import (
	"context"
)

// SummaryService defines the monthly summary engine operations.
type SummaryService interface {
	// Generate aggregates one employee's month and upserts a DRAFT summary
	Generate(ctx context.Context, req GenerateRequest) (SummaryResponse, error)

	// Regenerate re-aggregates an existing DRAFT or REJECTED summary in place
	Regenerate(ctx context.Context, summaryID string) (SummaryResponse, error)

	// StaffSign records the owning employee's signature (DRAFT -> SIGNED_BY_STAFF)
	StaffSign(ctx context.Context, req SignRequest) (SummaryResponse, error)

	// AdminDecide approves or rejects a signed summary
	AdminDecide(ctx context.Context, req DecisionRequest) (SummaryResponse, error)

	// BulkGenerate drives generation across all active employees
	BulkGenerate(ctx context.Context, req BulkGenerateRequest) (GenerateBatchResult, error)

	// BulkApprove approves every listed summary currently in SIGNED_BY_STAFF
	BulkApprove(ctx context.Context, req BulkApproveRequest) (ApproveBatchResult, error)

	// GetSummary retrieves a single summary by ID
	GetSummary(ctx context.Context, id string) (SummaryResponse, error)

	// GetSummaryRecord retrieves the raw summary record, used by export
	GetSummaryRecord(ctx context.Context, id string) (MonthlySummary, error)

	// ListSummaries retrieves summaries with filters and pagination
	ListSummaries(ctx context.Context, filter ListFilter) (ListSummariesResponse, error)
}
