package scheduling

import (
	"fmt"
	"time"
)

// ValidationError is a single failed booking rule, scoped to the input field
// that caused it. Always recoverable by the caller correcting its input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ResourceInactiveError marks a referenced dentist/room/specialty/branch that
// has been soft-deleted.
type ResourceInactiveError struct {
	Field    string
	Resource string
}

func (e *ResourceInactiveError) Error() string {
	return fmt.Sprintf("%s: %s is not active", e.Field, e.Resource)
}

// CrossTenantViolation means a booking referenced an entity owned by another
// clinic. It aborts the request before any scheduling detail is computed and
// is surfaced to callers as a generic not-found.
type CrossTenantViolation struct {
	Reference string
}

func (e *CrossTenantViolation) Error() string {
	return fmt.Sprintf("%s does not belong to the active clinic", e.Reference)
}

// InvalidTransitionError names the rejected status edge.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("status: cannot transition from %s to %s", e.From, e.To)
}

// ConflictError carries the occupying appointment so the caller can show the
// blocked window.
type ConflictError struct {
	Resource      ResourceKind
	AppointmentID uint
	Start         time.Time
	End           time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf(
		"%s already booked from %s to %s (appointment %d)",
		e.Resource,
		e.Start.Format("2006-01-02 15:04"),
		e.End.Format("15:04"),
		e.AppointmentID,
	)
}
