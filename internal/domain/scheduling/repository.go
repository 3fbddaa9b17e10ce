package scheduling

import (
	"context"
	"time"

	"github.com/dentalcloud/clinic-scheduler/internal/models"
)

// Repository is the persistence surface the engine needs. Directory lookups
// (patient, dentist, room, specialty) are deliberately not clinic-filtered:
// the tenant guard has to see the real owner to reject a cross-tenant
// reference. Appointment reads are always clinic-filtered.
type Repository interface {
	// -------- Directories --------
	GetClinic(ctx context.Context, id uint) (*models.Clinic, error)
	GetPatient(ctx context.Context, id uint) (*models.Patient, error)
	GetDentist(ctx context.Context, id uint) (*models.Dentist, error)
	GetRoom(ctx context.Context, id uint) (*models.Room, error)
	GetSpecialty(ctx context.Context, id uint) (*models.Specialty, error)

	// -------- Schedule config --------
	GetBranchSchedule(ctx context.Context, branchID uint) (*models.BranchSchedule, error)
	ListDentistAvailability(ctx context.Context, dentistID uint) ([]models.DentistAvailability, error)
	ListDentistExceptions(ctx context.Context, dentistID uint, date time.Time) ([]models.DentistException, error)

	// -------- Appointments (clinic-filtered) --------
	GetAppointment(ctx context.Context, clinicID uint, id uint) (*models.Appointment, error)

	// FindConflict returns the first active appointment occupying the
	// resource inside [start, end), or nil when the window is free.
	FindConflict(
		ctx context.Context,
		kind ResourceKind,
		resourceID uint,
		start time.Time,
		end time.Time,
		excludeID uint,
	) (*models.Appointment, error)

	// CountPatientAppointments counts active-status appointments of a
	// patient inside [dayStart, dayEnd), excluding the appointment being
	// edited.
	CountPatientAppointments(
		ctx context.Context,
		patientID uint,
		dayStart time.Time,
		dayEnd time.Time,
		excludeID uint,
	) (int64, error)

	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	ListAppointmentsForResource(
		ctx context.Context,
		clinicID uint,
		kind ResourceKind,
		resourceID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		clinicID uint,
		filter ListFilter,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// InTransaction runs fn against a transactional repository; conflict
	// reads inside it take row locks so check-then-write stays atomic.
	InTransaction(ctx context.Context, fn func(Repository) error) error
}

// ListFilter narrows period listings. Zero values mean "any".
type ListFilter struct {
	DentistID   uint
	SpecialtyID uint
	Status      Status
}
