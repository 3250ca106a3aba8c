package response

import (
	"errors"
	"net/http"

	"github.com/sitecrew/workforce-backend-go/internal/domain/auth"
	"github.com/sitecrew/workforce-backend-go/internal/domain/employee"
	"github.com/sitecrew/workforce-backend-go/internal/domain/rate"
	"github.com/sitecrew/workforce-backend-go/internal/domain/summary"
	"github.com/sitecrew/workforce-backend-go/internal/domain/user"
	"github.com/sitecrew/workforce-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrSupervisorAccessRequired):
		Forbidden(w, "Supervisor access required")

	// Summary workflow errors
	case errors.Is(err, summary.ErrSummaryNotFound):
		NotFound(w, "Summary not found")
	case errors.Is(err, summary.ErrNoAttendanceData):
		BadRequest(w, "No attendance data for the requested period", nil)
	case errors.Is(err, summary.ErrAlreadyFinal):
		Conflict(w, "Summary has already left draft state")
	case errors.Is(err, summary.ErrInvalidTransition):
		Conflict(w, "Operation not allowed in the current status")
	case errors.Is(err, summary.ErrConcurrentModification):
		Conflict(w, "Summary was modified concurrently, please retry")
	case errors.Is(err, summary.ErrNotOwner):
		Forbidden(w, "Only the summary's employee may sign it")

	// Collaborator errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, rate.ErrPolicyNotFound):
		BadRequest(w, "No rate policy in effect for the employee", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
