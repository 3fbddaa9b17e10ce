package scheduling

import "time"

// ResourceKind identifies which independently-booked resource a conflict
// check targets.
type ResourceKind string

const (
	ResourceDentist ResourceKind = "dentist"
	ResourceRoom    ResourceKind = "room"
)

// Overlaps implements the half-open interval test: an appointment ending
// exactly when another starts is not a conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
