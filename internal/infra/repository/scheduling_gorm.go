package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dentalcloud/clinic-scheduler/internal/domain/scheduling"
	"github.com/dentalcloud/clinic-scheduler/internal/models"
)

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

// --------------------------------------------------
// Directories
// --------------------------------------------------

func (r *SchedulingGormRepository) GetClinic(
	ctx context.Context,
	id uint,
) (*models.Clinic, error) {

	var clinic models.Clinic
	if err := r.db.WithContext(ctx).First(&clinic, id).Error; err != nil {
		return nil, err
	}
	return &clinic, nil
}

func (r *SchedulingGormRepository) GetPatient(
	ctx context.Context,
	id uint,
) (*models.Patient, error) {

	var patient models.Patient
	if err := r.db.WithContext(ctx).First(&patient, id).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *SchedulingGormRepository) GetDentist(
	ctx context.Context,
	id uint,
) (*models.Dentist, error) {

	var dentist models.Dentist
	if err := r.db.WithContext(ctx).
		Preload("PrimaryBranch").
		Preload("Specialties").
		First(&dentist, id).Error; err != nil {
		return nil, err
	}
	return &dentist, nil
}

func (r *SchedulingGormRepository) GetRoom(
	ctx context.Context,
	id uint,
) (*models.Room, error) {

	var room models.Room
	if err := r.db.WithContext(ctx).
		Preload("Branch").
		Preload("Branch.Clinic").
		First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *SchedulingGormRepository) GetSpecialty(
	ctx context.Context,
	id uint,
) (*models.Specialty, error) {

	var specialty models.Specialty
	if err := r.db.WithContext(ctx).First(&specialty, id).Error; err != nil {
		return nil, err
	}
	return &specialty, nil
}

// --------------------------------------------------
// Schedule config
// --------------------------------------------------

func (r *SchedulingGormRepository) GetBranchSchedule(
	ctx context.Context,
	branchID uint,
) (*models.BranchSchedule, error) {

	var sched models.BranchSchedule
	if err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		First(&sched).Error; err != nil {
		return nil, err
	}
	return &sched, nil
}

func (r *SchedulingGormRepository) ListDentistAvailability(
	ctx context.Context,
	dentistID uint,
) ([]models.DentistAvailability, error) {

	var ranges []models.DentistAvailability
	if err := r.db.WithContext(ctx).
		Where("dentist_id = ? AND active = ?", dentistID, true).
		Order("weekday ASC, start_time ASC").
		Find(&ranges).Error; err != nil {
		return nil, err
	}
	return ranges, nil
}

func (r *SchedulingGormRepository) ListDentistExceptions(
	ctx context.Context,
	dentistID uint,
	date time.Time,
) ([]models.DentistException, error) {

	day := exceptionDayAnchor(date)

	var exceptions []models.DentistException
	if err := r.db.WithContext(ctx).
		Where(
			"dentist_id = ? AND active = ? AND start_date <= ? AND end_date >= ?",
			dentistID, true, day, day,
		).
		Find(&exceptions).Error; err != nil {
		return nil, err
	}
	return exceptions, nil
}

// exceptionDayAnchor rebuilds the date as midnight in the date's own
// location. Exception bounds are stored as clinic-local midnights, so the
// comparison instant must be anchored the same way, never in UTC.
func exceptionDayAnchor(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *SchedulingGormRepository) GetAppointment(
	ctx context.Context,
	clinicID uint,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

// FindConflict takes a row lock on the matched rows so that two transactions
// probing the same window serialize instead of both seeing it free.
func (r *SchedulingGormRepository) FindConflict(
	ctx context.Context,
	kind scheduling.ResourceKind,
	resourceID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) (*models.Appointment, error) {

	column := "dentist_id"
	if kind == scheduling.ResourceRoom {
		column = "room_id"
	}

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			column+" = ? AND status IN ? AND start_time < ? AND end_time > ? AND id <> ?",
			resourceID,
			activeStatusStrings(),
			end,
			start,
			excludeID,
		).
		Order("start_time ASC").
		First(&ap).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &ap, nil
}

func (r *SchedulingGormRepository) CountPatientAppointments(
	ctx context.Context,
	patientID uint,
	dayStart time.Time,
	dayEnd time.Time,
	excludeID uint,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"patient_id = ? AND status IN ? AND start_time >= ? AND start_time < ? AND id <> ?",
			patientID,
			activeStatusStrings(),
			dayStart,
			dayEnd,
			excludeID,
		).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SchedulingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *SchedulingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *SchedulingGormRepository) ListAppointmentsForResource(
	ctx context.Context,
	clinicID uint,
	kind scheduling.ResourceKind,
	resourceID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	column := "dentist_id"
	if kind == scheduling.ResourceRoom {
		column = "room_id"
	}

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time", "status").
		Where(
			"clinic_id = ? AND "+column+" = ? AND status IN ? AND start_time >= ? AND start_time < ?",
			clinicID, resourceID, activeStatusStrings(), start, end,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *SchedulingGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	clinicID uint,
	filter scheduling.ListFilter,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Dentist").
		Preload("Specialty").
		Preload("Room").
		Where(
			"clinic_id = ? AND start_time >= ? AND start_time < ?",
			clinicID, start, end,
		)

	if filter.DentistID != 0 {
		q = q.Where("dentist_id = ?", filter.DentistID)
	}
	if filter.SpecialtyID != 0 {
		q = q.Where("specialty_id = ?", filter.SpecialtyID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// InTransaction runs fn against a repository bound to a single transaction,
// so FindConflict's row locks hold until the write commits.
func (r *SchedulingGormRepository) InTransaction(
	ctx context.Context,
	fn func(scheduling.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SchedulingGormRepository{db: tx})
	})
}

func activeStatusStrings() []string {
	active := scheduling.ActiveStatuses()
	out := make([]string, len(active))
	for i, s := range active {
		out[i] = string(s)
	}
	return out
}

// Compile-time check
var _ scheduling.Repository = (*SchedulingGormRepository)(nil)
