package scheduling

import "time"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

// transitions is the full directed graph of allowed status changes.
// Terminal states have no outgoing edges.
var transitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  {},
	StatusCancelled:  {},
	StatusNoShow:     {},
}

// ActiveStatuses are the statuses that still occupy a resource's calendar.
func ActiveStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusInProgress}
}

func IsKnown(s Status) bool {
	_, ok := transitions[s]
	return ok
}

func IsActive(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress:
		return true
	}
	return false
}

func IsTerminal(s Status) bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// CanTransition validates a status change on an existing appointment.
func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return &InvalidTransitionError{From: from, To: to}
}

// InitialStatus validates the status requested at creation time. Sunday
// appointments may not start out pending; the caller must confirm up front.
func InitialStatus(requested Status, start time.Time) (Status, error) {
	if requested == "" {
		requested = StatusPending
	}
	if requested != StatusPending && requested != StatusConfirmed {
		return "", &ValidationError{
			Field:   "status",
			Message: "new appointments must be created as pending or confirmed",
		}
	}
	if start.Weekday() == time.Sunday && requested != StatusConfirmed {
		return "", &ValidationError{
			Field:   "status",
			Message: "Sunday appointments must be confirmed at creation",
		}
	}
	return requested, nil
}
