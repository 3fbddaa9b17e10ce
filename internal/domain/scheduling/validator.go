package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/dentalcloud/clinic-scheduler/internal/models"
	"github.com/dentalcloud/clinic-scheduler/internal/timezone"
)

const (
	MinDurationMinutes = 15
	MaxDurationMinutes = 240
	MaxAdvanceDays     = 180

	// MaxDailyPerPatient is a fixed global cap, not clinic-configurable.
	MaxDailyPerPatient = 3
)

// BookingRequest is the input of a create or move/edit decision.
// ExistingID is zero for new appointments.
type BookingRequest struct {
	PatientID   uint
	DentistID   uint
	SpecialtyID uint
	RoomID      uint

	StartTime       time.Time
	DurationMin     int
	RequestedStatus Status

	Observations string
	ExistingID   uint
}

// Validator runs the full rule chain of a booking decision, short-circuiting
// on the first failure. Every failure is one of the structured error kinds in
// errors.go; success returns the validated, ready-to-persist appointment.
type Validator struct {
	repo Repository
	now  func() time.Time
}

func NewValidator(repo Repository) *Validator {
	return &Validator{repo: repo, now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (v *Validator) WithClock(now func() time.Time) *Validator {
	v.now = now
	return v
}

func (v *Validator) Validate(ctx context.Context, clinicID uint, req BookingRequest) (*models.Appointment, error) {

	// 1. Resolve references, then tenant guard before anything else.
	patient, err := v.repo.GetPatient(ctx, req.PatientID)
	if err != nil {
		return nil, &ValidationError{Field: "patient", Message: "patient not found"}
	}
	dentist, err := v.repo.GetDentist(ctx, req.DentistID)
	if err != nil {
		return nil, &ValidationError{Field: "dentist", Message: "dentist not found"}
	}
	room, err := v.repo.GetRoom(ctx, req.RoomID)
	if err != nil {
		return nil, &ValidationError{Field: "room", Message: "room not found"}
	}

	if err := AssertSameClinic(clinicID, patient, dentist, room); err != nil {
		return nil, err
	}

	specialty, err := v.repo.GetSpecialty(ctx, req.SpecialtyID)
	if err != nil {
		return nil, &ValidationError{Field: "specialty", Message: "specialty not found"}
	}

	var existing *models.Appointment
	if req.ExistingID != 0 {
		existing, err = v.repo.GetAppointment(ctx, clinicID, req.ExistingID)
		if err != nil {
			return nil, &ValidationError{Field: "appointment", Message: "appointment not found"}
		}
	}

	loc := timezone.Location(room.Branch.Clinic.Timezone)
	now := v.now().In(loc)
	start := req.StartTime.In(loc)
	end := start.Add(time.Duration(req.DurationMin) * time.Minute)

	// 2. Temporal horizon. An edit that keeps its start untouched is exempt
	// from the past check.
	startUnchanged := existing != nil && existing.StartTime.Equal(req.StartTime)
	if !startUnchanged && start.Before(now) {
		return nil, &ValidationError{Field: "start_time", Message: "appointment cannot be scheduled in the past"}
	}
	if start.After(now.AddDate(0, 0, MaxAdvanceDays)) {
		return nil, &ValidationError{
			Field:   "start_time",
			Message: fmt.Sprintf("appointment cannot be scheduled more than %d days ahead", MaxAdvanceDays),
		}
	}

	// 3. Same-day / advance-notice policy of the room's branch.
	sched, err := v.repo.GetBranchSchedule(ctx, room.BranchID)
	if err != nil {
		return nil, &ValidationError{Field: "room", Message: "branch has no operating schedule"}
	}
	if !startUnchanged {
		if !sched.AllowSameDay {
			if !start.After(endOfDay(now)) {
				return nil, &ValidationError{Field: "start_time", Message: "branch does not allow same-day booking"}
			}
		} else if sched.MinLeadHours > 0 {
			if start.Before(now.Add(time.Duration(sched.MinLeadHours) * time.Hour)) {
				return nil, &ValidationError{
					Field:   "start_time",
					Message: fmt.Sprintf("appointments require %d hours of advance notice", sched.MinLeadHours),
				}
			}
		}
	}

	// 4. Duration bounds.
	if req.DurationMin < MinDurationMinutes || req.DurationMin > MaxDurationMinutes {
		return nil, &ValidationError{
			Field:   "duration",
			Message: fmt.Sprintf("duration must be between %d and %d minutes", MinDurationMinutes, MaxDurationMinutes),
		}
	}

	// 5. Soft-deleted references.
	if !dentist.Active {
		return nil, &ResourceInactiveError{Field: "dentist", Resource: "dentist"}
	}
	if !specialty.Active {
		return nil, &ResourceInactiveError{Field: "specialty", Resource: "specialty"}
	}
	if !room.Active {
		return nil, &ResourceInactiveError{Field: "room", Resource: "room"}
	}
	if !room.Branch.Active {
		return nil, &ResourceInactiveError{Field: "room", Resource: "branch"}
	}
	if !dentist.PrimaryBranch.Active {
		return nil, &ResourceInactiveError{Field: "dentist", Resource: "branch"}
	}

	// 6. Specialty certification.
	if !dentist.HasSpecialty(specialty.ID) {
		return nil, &ValidationError{
			Field:   "specialty",
			Message: fmt.Sprintf("%s is not certified in %s", dentist.Name, specialty.Name),
		}
	}

	// 7. Room must sit in the dentist's branch.
	if room.BranchID != *dentist.PrimaryBranchID {
		return nil, &ValidationError{Field: "room", Message: "room does not belong to the dentist's branch"}
	}

	// 8. Operating hours: exception > personalized availability > branch
	// Saturday/Sunday override > branch general hours > closed.
	branchWin, branchOpen := ResolveBranchHours(sched, start)
	availability, err := v.repo.ListDentistAvailability(ctx, dentist.ID)
	if err != nil {
		return nil, err
	}
	exceptions, err := v.repo.ListDentistExceptions(ctx, dentist.ID, start)
	if err != nil {
		return nil, err
	}
	windows := ResolveDentistHours(branchWin, branchOpen, availability, exceptions, start)
	if !FitsAny(windows, start, end) {
		return nil, &ValidationError{Field: "start_time", Message: "outside operating hours"}
	}

	// 9-10. One conflict pass per resource.
	for _, check := range []struct {
		kind ResourceKind
		id   uint
	}{
		{ResourceDentist, dentist.ID},
		{ResourceRoom, room.ID},
	} {
		blocking, err := v.repo.FindConflict(ctx, check.kind, check.id, start, end, req.ExistingID)
		if err != nil {
			return nil, err
		}
		if blocking != nil {
			return nil, &ConflictError{
				Resource:      check.kind,
				AppointmentID: blocking.ID,
				Start:         blocking.StartTime,
				End:           blocking.EndTime,
			}
		}
	}

	// 11. Per-patient daily cap.
	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	count, err := v.repo.CountPatientAppointments(ctx, patient.ID, dayStart, dayStart.Add(24*time.Hour), req.ExistingID)
	if err != nil {
		return nil, err
	}
	if count >= MaxDailyPerPatient {
		return nil, &ValidationError{
			Field:   "patient",
			Message: fmt.Sprintf("patient already has %d appointments on that day", MaxDailyPerPatient),
		}
	}

	status := req.RequestedStatus

	if existing != nil {
		// 12. Status transitions on edits; unchanged status is a no-op.
		if status == "" {
			status = Status(existing.Status)
		}
		if status != Status(existing.Status) {
			// Cancellation carries a mandatory reason and timestamp, which
			// only the status-change path collects.
			if status == StatusCancelled {
				return nil, &ValidationError{
					Field:   "status",
					Message: "cancel through the status change, a cancellation reason is required",
				}
			}
			if err := CanTransition(Status(existing.Status), status); err != nil {
				return nil, err
			}
		}

		// 14. Terminal appointments only allow observation edits; while
		// in progress, patient/dentist/specialty are frozen.
		if IsTerminal(Status(existing.Status)) {
			if req.PatientID != existing.PatientID ||
				req.DentistID != existing.DentistID ||
				req.SpecialtyID != existing.SpecialtyID ||
				req.RoomID != existing.RoomID ||
				!req.StartTime.Equal(existing.StartTime) ||
				req.DurationMin != existing.DurationMin {
				return nil, &ValidationError{
					Field:   "appointment",
					Message: "only observations may change once the appointment is closed",
				}
			}
		} else if Status(existing.Status) == StatusInProgress {
			if req.PatientID != existing.PatientID ||
				req.DentistID != existing.DentistID ||
				req.SpecialtyID != existing.SpecialtyID {
				return nil, &ValidationError{
					Field:   "appointment",
					Message: "patient, dentist and specialty cannot change while in progress",
				}
			}
		}
	} else {
		// 13. Initial status, including the Sunday-confirmation rule.
		status, err = InitialStatus(status, start)
		if err != nil {
			return nil, err
		}
	}

	ap := &models.Appointment{
		ClinicID:     clinicID,
		PatientID:    patient.ID,
		DentistID:    dentist.ID,
		SpecialtyID:  specialty.ID,
		RoomID:       room.ID,
		StartTime:    start,
		EndTime:      end,
		DurationMin:  req.DurationMin,
		Status:       string(status),
		Observations: req.Observations,
	}
	if existing != nil {
		ap.ID = existing.ID
		ap.CreatedAt = existing.CreatedAt
		ap.CancellationReason = existing.CancellationReason
		ap.CancelledAt = existing.CancelledAt
		ap.CompletedAt = existing.CompletedAt
	}
	return ap, nil
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
