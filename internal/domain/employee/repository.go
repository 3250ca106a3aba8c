package employee

import "context"

// EmployeeRepository is the staff roster used by bulk generation.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)

	// GetActiveByCompanyID returns all active employees of a company.
	GetActiveByCompanyID(ctx context.Context, companyID string) ([]Employee, error)
}
