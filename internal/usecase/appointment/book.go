package appointment

import (
	"context"
	"errors"

	"github.com/dentalcloud/clinic-scheduler/internal/audit"
	"github.com/dentalcloud/clinic-scheduler/internal/domain/scheduling"
	"github.com/dentalcloud/clinic-scheduler/internal/httperr"
	"github.com/dentalcloud/clinic-scheduler/internal/lock"
	"github.com/dentalcloud/clinic-scheduler/internal/models"
)

// ======================================================
// USE CASE
// ======================================================

// BookAppointment is the write path for new appointments. Per-resource locks
// are taken ahead of the transaction and the full rule chain runs inside it,
// so the validated window is still free when the insert commits.
type BookAppointment struct {
	repo  scheduling.Repository
	locks resourceLocker
	audit auditSink
}

func NewBookAppointment(
	repo scheduling.Repository,
	locks resourceLocker,
	audit auditSink,
) *BookAppointment {
	return &BookAppointment{
		repo:  repo,
		locks: locks,
		audit: audit,
	}
}

func (uc *BookAppointment) Execute(
	ctx context.Context,
	clinicID uint,
	userID *uint,
	req scheduling.BookingRequest,
) (*models.Appointment, error) {

	release, err := uc.locks.AcquireAll(
		ctx,
		lock.DentistKey(req.DentistID),
		lock.RoomKey(req.RoomID),
	)
	if err != nil {
		if errors.Is(err, lock.ErrBusy) {
			return nil, httperr.ErrBusiness("resource_busy")
		}
		return nil, err
	}
	defer release()

	var ap *models.Appointment
	err = uc.repo.InTransaction(ctx, func(tx scheduling.Repository) error {
		validated, err := scheduling.NewValidator(tx).Validate(ctx, clinicID, req)
		if err != nil {
			return err
		}
		if err := tx.CreateAppointment(ctx, validated); err != nil {
			return err
		}
		ap = validated
		return nil
	})
	if err != nil {
		reportCrossTenant(uc.audit, clinicID, userID, err)
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   userID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
