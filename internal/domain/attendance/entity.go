package attendance

import (
	"time"
)

// Event is a single check-in/check-out record captured by the mobile app.
// Capture (photo proof, geolocation validation) happens upstream; this
// engine only reads the resulting stream.
type Event struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Date       time.Time
	ClockIn    time.Time
	ClockOut   *time.Time
	// ProjectID is nil for unattributed hours; such events still count
	// toward totals but are excluded from the per-project breakdown.
	ProjectID   *string
	ProjectName *string
}

// Complete reports whether the event has a matched check-out.
func (e Event) Complete() bool {
	return e.ClockOut != nil
}

// DurationMinutes returns the event duration truncated to whole minutes.
// Returns 0 for open events.
func (e Event) DurationMinutes() int64 {
	if e.ClockOut == nil {
		return 0
	}
	return int64(e.ClockOut.Sub(e.ClockIn).Minutes())
}
