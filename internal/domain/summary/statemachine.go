package summary

// Event enum for lifecycle transitions.
type Event string

const (
	EventStaffSign    Event = "staff_sign"
	EventAdminApprove Event = "admin_approve"
	EventAdminReject  Event = "admin_reject"
	EventRegenerate   Event = "regenerate"
)

// transitions is the full lifecycle table. APPROVED has no outgoing
// transitions; reopening an approved summary is a separately-authorized
// admin action outside the ordinary endpoints.
var transitions = map[Status]map[Event]Status{
	StatusDraft: {
		EventStaffSign:  StatusSignedByStaff,
		EventRegenerate: StatusDraft,
	},
	StatusSignedByStaff: {
		EventAdminApprove: StatusApproved,
		EventAdminReject:  StatusRejected,
	},
	StatusRejected: {
		EventRegenerate: StatusDraft,
	},
}

// NextStatus returns the status reached by applying event from the given
// status, and whether the transition is legal.
func NextStatus(from Status, event Event) (Status, bool) {
	next, ok := transitions[from][event]
	return next, ok
}

// CanTransition reports whether event is legal from the given status.
func CanTransition(from Status, event Event) bool {
	_, ok := transitions[from][event]
	return ok
}
