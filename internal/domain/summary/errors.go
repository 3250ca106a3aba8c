package summary

import "errors"

// Summary domain errors
var (
	// Generation errors
	ErrNoAttendanceData = errors.New("no attendance or leave data for the period")
	ErrAlreadyFinal     = errors.New("summary has already been signed or approved")

	// Workflow errors
	ErrInvalidTransition      = errors.New("requested state change is not allowed from the current status")
	ErrConcurrentModification = errors.New("summary was modified concurrently, re-fetch and retry")
	ErrNotOwner               = errors.New("only the owning employee may sign this summary")

	// General errors
	ErrSummaryNotFound = errors.New("monthly summary not found")
)
