package appointment

import (
	"context"
	"time"

	"github.com/dentalcloud/clinic-scheduler/internal/domain/scheduling"
)

// CheckAvailability answers the interactive "is this window free?" question.
// Read-only: the booking path re-checks under locks before writing.
type CheckAvailability struct {
	repo  scheduling.Repository
	audit auditSink
}

func NewCheckAvailability(repo scheduling.Repository, audit auditSink) *CheckAvailability {
	return &CheckAvailability{repo: repo, audit: audit}
}

func (uc *CheckAvailability) Execute(
	ctx context.Context,
	clinicID uint,
	in scheduling.AvailabilityInput,
) (*scheduling.AvailabilityResult, error) {

	if err := uc.assertResourceOwned(ctx, clinicID, in.Kind, in.ResourceID); err != nil {
		reportCrossTenant(uc.audit, clinicID, nil, err)
		return nil, err
	}

	end := in.Start.Add(time.Duration(in.DurationMin) * time.Minute)

	blocking, err := uc.repo.FindConflict(
		ctx,
		in.Kind,
		in.ResourceID,
		in.Start,
		end,
		in.ExcludeID,
	)
	if err != nil {
		return nil, err
	}

	result := &scheduling.AvailabilityResult{Available: blocking == nil}
	if blocking != nil {
		result.Conflict = &scheduling.ConflictingWindow{
			ID:        blocking.ID,
			StartTime: blocking.StartTime,
			EndTime:   blocking.EndTime,
		}
	}
	return result, nil
}

func (uc *CheckAvailability) assertResourceOwned(
	ctx context.Context,
	clinicID uint,
	kind scheduling.ResourceKind,
	resourceID uint,
) error {

	switch kind {
	case scheduling.ResourceDentist:
		dentist, err := uc.repo.GetDentist(ctx, resourceID)
		if err != nil || dentist.PrimaryBranch == nil || dentist.PrimaryBranch.ClinicID != clinicID {
			return &scheduling.CrossTenantViolation{Reference: "dentist"}
		}
	case scheduling.ResourceRoom:
		room, err := uc.repo.GetRoom(ctx, resourceID)
		if err != nil || room.Branch.ClinicID != clinicID {
			return &scheduling.CrossTenantViolation{Reference: "room"}
		}
	}
	return nil
}

// GetDaySlots lists a dentist's bookable slots for one day, stepping the
// resolved attended windows at the branch slot size.
type GetDaySlots struct {
	repo  scheduling.Repository
	audit auditSink
}

func NewGetDaySlots(repo scheduling.Repository, audit auditSink) *GetDaySlots {
	return &GetDaySlots{repo: repo, audit: audit}
}

func (uc *GetDaySlots) Execute(
	ctx context.Context,
	clinicID uint,
	dentistID uint,
	date time.Time,
) ([]scheduling.TimeSlot, error) {

	dentist, err := uc.repo.GetDentist(ctx, dentistID)
	if err != nil || dentist.PrimaryBranch == nil || dentist.PrimaryBranch.ClinicID != clinicID {
		violation := &scheduling.CrossTenantViolation{Reference: "dentist"}
		reportCrossTenant(uc.audit, clinicID, nil, violation)
		return nil, violation
	}

	sched, err := uc.repo.GetBranchSchedule(ctx, *dentist.PrimaryBranchID)
	if err != nil {
		return []scheduling.TimeSlot{}, nil
	}

	branchWin, branchOpen := scheduling.ResolveBranchHours(sched, date)
	availability, err := uc.repo.ListDentistAvailability(ctx, dentistID)
	if err != nil {
		return nil, err
	}
	exceptions, err := uc.repo.ListDentistExceptions(ctx, dentistID, date)
	if err != nil {
		return nil, err
	}

	windows := scheduling.ResolveDentistHours(branchWin, branchOpen, availability, exceptions, date)
	if len(windows) == 0 {
		return []scheduling.TimeSlot{}, nil
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	booked, err := uc.repo.ListAppointmentsForResource(
		ctx,
		clinicID,
		scheduling.ResourceDentist,
		dentistID,
		dayStart,
		dayStart.Add(24*time.Hour),
	)
	if err != nil {
		return nil, err
	}

	return scheduling.FreeSlots(windows, booked, sched.SlotMinutes), nil
}
