package scheduling

import (
	"time"

	"github.com/dentalcloud/clinic-scheduler/internal/models"
)

type AvailabilityInput struct {
	Kind        ResourceKind
	ResourceID  uint
	Start       time.Time
	DurationMin int
	ExcludeID   uint
}

// AvailabilityResult answers the read-only availability query used by
// interactive calendars.
type AvailabilityResult struct {
	Available bool               `json:"available"`
	Conflict  *ConflictingWindow `json:"conflicting_appointment,omitempty"`
}

type ConflictingWindow struct {
	ID        uint      `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FreeSlots walks the attended windows in fixed steps and drops every slot an
// active appointment overlaps. Appointments must be sorted by start time.
func FreeSlots(windows []Window, appointments []models.Appointment, slotMinutes int) []TimeSlot {
	if slotMinutes <= 0 {
		slotMinutes = 30
	}
	step := time.Duration(slotMinutes) * time.Minute

	slots := []TimeSlot{}
	for _, w := range windows {
		apIdx := 0

		for cur := w.Open; !cur.Add(step).After(w.Close); cur = cur.Add(step) {
			slotStart := cur
			slotEnd := cur.Add(step)

			for apIdx < len(appointments) && !appointments[apIdx].EndTime.After(slotStart) {
				apIdx++
			}

			conflict := false
			for i := apIdx; i < len(appointments); i++ {
				ap := appointments[i]
				if !ap.StartTime.Before(slotEnd) {
					break
				}
				if Overlaps(slotStart, slotEnd, ap.StartTime, ap.EndTime) {
					conflict = true
					break
				}
			}

			if !conflict {
				slots = append(slots, TimeSlot{
					Start: slotStart.Format("15:04"),
					End:   slotEnd.Format("15:04"),
				})
			}
		}
	}

	return slots
}
