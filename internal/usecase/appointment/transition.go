package appointment

import (
	"context"

	"github.com/dentalcloud/clinic-scheduler/internal/audit"
	"github.com/dentalcloud/clinic-scheduler/internal/domain/scheduling"
	"github.com/dentalcloud/clinic-scheduler/internal/models"
	"github.com/dentalcloud/clinic-scheduler/internal/timezone"
)

const minCancellationReasonLen = 10

// ChangeStatus drives an appointment through its lifecycle: confirm, start,
// complete, cancel, no-show. Only edges of the transition graph are accepted.
type ChangeStatus struct {
	repo  scheduling.Repository
	audit auditSink
}

func NewChangeStatus(
	repo scheduling.Repository,
	audit auditSink,
) *ChangeStatus {
	return &ChangeStatus{
		repo:  repo,
		audit: audit,
	}
}

type ChangeStatusInput struct {
	AppointmentID uint
	Target        scheduling.Status
	Reason        string
}

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	clinicID uint,
	userID *uint,
	in ChangeStatusInput,
) (*models.Appointment, error) {

	if !scheduling.IsKnown(in.Target) {
		return nil, &scheduling.ValidationError{
			Field:   "status",
			Message: "unknown status",
		}
	}

	if in.Target == scheduling.StatusCancelled && len(in.Reason) < minCancellationReasonLen {
		return nil, &scheduling.ValidationError{
			Field:   "cancellation_reason",
			Message: "cancellation requires a reason of at least 10 characters",
		}
	}

	clinic, err := uc.repo.GetClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	now := timezone.NowIn(clinic.Timezone)

	var ap *models.Appointment
	err = uc.repo.InTransaction(ctx, func(tx scheduling.Repository) error {
		current, err := tx.GetAppointment(ctx, clinicID, in.AppointmentID)
		if err != nil {
			return err
		}

		if err := scheduling.CanTransition(scheduling.Status(current.Status), in.Target); err != nil {
			return err
		}

		current.Status = string(in.Target)
		switch in.Target {
		case scheduling.StatusCancelled:
			current.CancellationReason = in.Reason
			current.CancelledAt = &now
		case scheduling.StatusCompleted:
			current.CompletedAt = &now
		}

		if err := tx.UpdateAppointment(ctx, current); err != nil {
			return err
		}
		ap = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   userID,
		Action:   "appointment_" + string(in.Target),
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{"reason": in.Reason},
	})

	return ap, nil
}
