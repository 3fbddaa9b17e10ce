package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dentalcloud/clinic-scheduler/internal/models"
)

// ----------------------------------------------------------------------
// In-memory repository
// ----------------------------------------------------------------------

type fakeRepo struct {
	clinics      map[uint]*models.Clinic
	patients     map[uint]*models.Patient
	dentists     map[uint]*models.Dentist
	rooms        map[uint]*models.Room
	specialties  map[uint]*models.Specialty
	schedules    map[uint]*models.BranchSchedule
	availability map[uint][]models.DentistAvailability
	exceptions   map[uint][]models.DentistException

	appointments []*models.Appointment
	nextID       uint

	conflictCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		clinics:      map[uint]*models.Clinic{},
		patients:     map[uint]*models.Patient{},
		dentists:     map[uint]*models.Dentist{},
		rooms:        map[uint]*models.Room{},
		specialties:  map[uint]*models.Specialty{},
		schedules:    map[uint]*models.BranchSchedule{},
		availability: map[uint][]models.DentistAvailability{},
		exceptions:   map[uint][]models.DentistException{},
		nextID:       1,
	}
}

func (f *fakeRepo) GetClinic(_ context.Context, id uint) (*models.Clinic, error) {
	if c, ok := f.clinics[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetPatient(_ context.Context, id uint) (*models.Patient, error) {
	if p, ok := f.patients[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetDentist(_ context.Context, id uint) (*models.Dentist, error) {
	if d, ok := f.dentists[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetRoom(_ context.Context, id uint) (*models.Room, error) {
	if r, ok := f.rooms[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetSpecialty(_ context.Context, id uint) (*models.Specialty, error) {
	if s, ok := f.specialties[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetBranchSchedule(_ context.Context, branchID uint) (*models.BranchSchedule, error) {
	if s, ok := f.schedules[branchID]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListDentistAvailability(_ context.Context, dentistID uint) ([]models.DentistAvailability, error) {
	return f.availability[dentistID], nil
}

func (f *fakeRepo) ListDentistExceptions(_ context.Context, dentistID uint, _ time.Time) ([]models.DentistException, error) {
	return f.exceptions[dentistID], nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, clinicID uint, id uint) (*models.Appointment, error) {
	for _, ap := range f.appointments {
		if ap.ID == id && ap.ClinicID == clinicID {
			cp := *ap
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindConflict(_ context.Context, kind ResourceKind, resourceID uint, start, end time.Time, excludeID uint) (*models.Appointment, error) {
	f.conflictCalls++
	for _, ap := range f.appointments {
		if ap.ID == excludeID || !IsActive(Status(ap.Status)) {
			continue
		}
		switch kind {
		case ResourceDentist:
			if ap.DentistID != resourceID {
				continue
			}
		case ResourceRoom:
			if ap.RoomID != resourceID {
				continue
			}
		}
		if Overlaps(ap.StartTime, ap.EndTime, start, end) {
			cp := *ap
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) CountPatientAppointments(_ context.Context, patientID uint, dayStart, dayEnd time.Time, excludeID uint) (int64, error) {
	var n int64
	for _, ap := range f.appointments {
		if ap.ID == excludeID || ap.PatientID != patientID || !IsActive(Status(ap.Status)) {
			continue
		}
		if !ap.StartTime.Before(dayStart) && ap.StartTime.Before(dayEnd) {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	ap.ID = f.nextID
	f.nextID++
	cp := *ap
	f.appointments = append(f.appointments, &cp)
	return nil
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i, old := range f.appointments {
		if old.ID == ap.ID {
			cp := *ap
			f.appointments[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListAppointmentsForResource(_ context.Context, clinicID uint, kind ResourceKind, resourceID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.ClinicID != clinicID || !IsActive(Status(ap.Status)) {
			continue
		}
		if kind == ResourceDentist && ap.DentistID != resourceID {
			continue
		}
		if kind == ResourceRoom && ap.RoomID != resourceID {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, clinicID uint, filter ListFilter, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.ClinicID != clinicID {
			continue
		}
		if filter.DentistID != 0 && ap.DentistID != filter.DentistID {
			continue
		}
		if filter.SpecialtyID != 0 && ap.SpecialtyID != filter.SpecialtyID {
			continue
		}
		if filter.Status != "" && ap.Status != string(filter.Status) {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) InTransaction(_ context.Context, fn func(Repository) error) error {
	return fn(f)
}

var _ Repository = (*fakeRepo)(nil)

// ----------------------------------------------------------------------
// Fixture: two clinics, each with branch, room, dentist, patient
// ----------------------------------------------------------------------

const (
	clinic1 = uint(1)
	clinic2 = uint(2)
)

// testNow is a Tuesday morning.
var testNow = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

func fixture() *fakeRepo {
	f := newFakeRepo()

	for i, clinicID := range []uint{clinic1, clinic2} {
		n := uint(i + 1)
		clinic := models.Clinic{ID: clinicID, Name: "Clinic", Timezone: "UTC", Active: true}
		f.clinics[clinicID] = &clinic
		branch := models.Branch{ID: n, ClinicID: clinicID, Clinic: clinic, Active: true}
		branchID := branch.ID

		f.rooms[n] = &models.Room{ID: n, BranchID: branchID, Branch: branch, Active: true}
		f.specialties[1] = &models.Specialty{ID: 1, Name: "General Dentistry", Active: true}
		f.patients[n] = &models.Patient{ID: n, ClinicID: clinicID, Active: true}
		f.dentists[n] = &models.Dentist{
			ID:              n,
			PrimaryBranchID: &branchID,
			PrimaryBranch:   &branch,
			Name:            "Dr. Test",
			Specialties:     []models.Specialty{{ID: 1, Name: "General Dentistry", Active: true}},
			Active:          true,
		}
		f.schedules[branchID] = &models.BranchSchedule{
			BranchID:         branchID,
			OpenTime:         "08:00",
			CloseTime:        "18:00",
			AttendsMonday:    true,
			AttendsTuesday:   true,
			AttendsWednesday: true,
			AttendsThursday:  true,
			AttendsFriday:    true,
			SlotMinutes:      30,
			AllowSameDay:     true,
		}
	}

	return f
}

func newTestValidator(f *fakeRepo) *Validator {
	return NewValidator(f).WithClock(func() time.Time { return testNow })
}

func validRequest() BookingRequest {
	return BookingRequest{
		PatientID:   1,
		DentistID:   1,
		SpecialtyID: 1,
		RoomID:      1,
		// Tuesday one week out, 09:00.
		StartTime:   time.Date(2026, 9, 8, 9, 0, 0, 0, time.UTC),
		DurationMin: 60,
	}
}

// ----------------------------------------------------------------------
// Tests
// ----------------------------------------------------------------------

func TestValidate_HappyPath(t *testing.T) {
	f := fixture()
	v := newTestValidator(f)

	ap, err := v.Validate(context.Background(), clinic1, validRequest())
	require.NoError(t, err)

	assert.Equal(t, clinic1, ap.ClinicID)
	assert.Equal(t, string(StatusPending), ap.Status)
	assert.Equal(t, ap.StartTime.Add(60*time.Minute), ap.EndTime)
	assert.Equal(t, 60, ap.DurationMin)
}

func TestValidate_CrossTenantRejectedBeforeConflictChecks(t *testing.T) {
	f := fixture()
	v := newTestValidator(f)

	req := validRequest()
	req.RoomID = 2 // clinic2's room

	_, err := v.Validate(context.Background(), clinic1, req)
	var ctv *CrossTenantViolation
	require.ErrorAs(t, err, &ctv)
	assert.Equal(t, "room", ctv.Reference)
	assert.Zero(t, f.conflictCalls, "conflict detector must not run for cross-tenant requests")
}

func TestValidate_PatientFromOtherClinic(t *testing.T) {
	f := fixture()
	v := newTestValidator(f)

	req := validRequest()
	req.PatientID = 2

	_, err := v.Validate(context.Background(), clinic1, req)
	var ctv *CrossTenantViolation
	require.ErrorAs(t, err, &ctv)
	assert.Equal(t, "patient", ctv.Reference)
}

func TestValidate_DentistWithoutBranchRejected(t *testing.T) {
	f := fixture()
	f.dentists[1].PrimaryBranchID = nil
	f.dentists[1].PrimaryBranch = nil
	v := newTestValidator(f)

	_, err := v.Validate(context.Background(), clinic1, validRequest())
	var ctv *CrossTenantViolation
	require.ErrorAs(t, err, &ctv)
	assert.Equal(t, "dentist", ctv.Reference)
}

func TestValidate_PastAndFarFutureRejected(t *testing.T) {
	f := fixture()
	v := newTestValidator(f)

	req := validRequest()
	req.StartTime = testNow.Add(-time.Hour)
	_, err := v.Validate(context.Background(), clinic1, req)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "start_time", ve.Field)

	req = validRequest()
	req.StartTime = testNow.AddDate(0, 0, 181).Truncate(24 * time.Hour).Add(10 * time.Hour)
	_, err = v.Validate(context.Background(), clinic1, req)
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "start_time", ve.Field)
}

func TestValidate_EditWithUnchangedStartExemptFromPastCheck(t *testing.T) {
	f := fixture()
	v := newTestValidator(f)

	past := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC) // a Tuesday before testNow
	f.appointments = append(f.appointments, &models.Appointment{
		ID: 10, ClinicID: clinic1, PatientID: 1, DentistID: 1, SpecialtyID: 1, RoomID: 1,
		StartTime: past, EndTime: past.Add(time.Hour), DurationMin: 60,
		Status: string(StatusConfirmed),
	})

	req := validRequest()
	req.ExistingID = 10
	req.StartTime = past
	req.Observations = "patient called to add notes"

	_, err := v.Validate(context.Background(), clinic1, req)
	assert.NoError(t, err)
}

func TestValidate_SameDayPolicy(t *testing.T) {
	f := fixture()
	f.schedules[1].AllowSameDay = false
	v := newTestValidator(f)

	req := validRequest()
	req.StartTime = time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC) // today
	_, err := v.Validate(context.Background(), clinic1, req)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "start_time", ve.Field)

	req.StartTime = time.Date(2026, 9, 2, 15, 0, 0, 0, time.UTC) // tomorrow
	_, err = v.Validate(context.Background(), clinic1, req)
	assert.NoError(t, err)
}

func TestValidate_MinimumLeadHours(t *testing.T) {
	f := fixture()
	f.schedules[1].MinLeadHours = 4
	v := newTestValidator(f)

	req := validRequest()
	req.StartTime = testNow.Add(2 * time.Hour) // 10:00 today, inside hours
	_, err := v.Validate(context.Background(), clinic1, req)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "start_time", ve.Field)

	req.StartTime = testNow.Add(6 * time.Hour) // 14:00 today
	_, err = v.Validate(context.Background(), clinic1, req)
	assert.NoError(t, err)
}

func TestValidate_DurationBounds(t *testing.T) {
	f := fixture()
	v := newTestValidator(f)

	for _, d := range []int{14, 0, 241} {
		req := validRequest()
		req.DurationMin = d
		_, err := v.Validate(context.Background(), clinic1, req)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve, "duration %d", d)
		assert.Equal(t, "duration", ve.Field)
	}

	for _, d := range []int{15, 240} {
		req := validRequest()
		req.DurationMin = d
		_, err := v.Validate(context.Background(), clinic1, req)
		assert.NoError(t, err, "duration %d", d)
	}
}

func TestValidate_InactiveReferences(t *testing.T) {
	cases := []struct {
		name  string
		field string
		prep  func(*fakeRepo)
	}{
		{"dentist", "dentist", func(f *fakeRepo) { f.dentists[1].Active = false }},
		{"specialty", "specialty", func(f *fakeRepo) { f.specialties[1].Active = false }},
		{"room", "room", func(f *fakeRepo) { f.rooms[1].Active = false }},
		{"room branch", "room", func(f *fakeRepo) { f.rooms[1].Branch.Active = false }},
		{"dentist branch", "dentist", func(f *fakeRepo) { f.dentists[1].PrimaryBranch.Active = false }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := fixture()
			tc.prep(f)
			v := newTestValidator(f)

			_, err := v.Validate(context.Background(), clinic1, validRequest())
			var ri *ResourceInactiveError
			require.ErrorAs(t, err, &ri)
			assert.Equal(t, tc.field, ri.Field)
		})
	}
}

func TestValidate_DentistMustHoldSpecialty(t *testing.T) {
	f := fixture()
	f.specialties[2] = &models.Specialty{ID: 2, Name: "Orthodontics", Active: true}
	v := newTestValidator(f)

	req := validRequest()
	req.SpecialtyID = 2
	_, err := v.Validate(context.Background(), clinic1, req)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "specialty", ve.Field)
}

func TestValidate_RoomMustBelongToDentistBranch(t *testing.T) {
	f := fixture()
	// Second branch in the same clinic, with its own room and schedule.
	branch3 := models.Branch{ID: 3, ClinicID: clinic1, Clinic: f.rooms[1].Branch.Clinic, Active: true}
	f.rooms[3] = &models.Room{ID: 3, BranchID: 3, Branch: branch3, Active: true}
	f.schedules[3] = f.schedules[1]
	v := newTestValidator(f)

	req := validRequest()
	req.RoomID = 3
	_, err := v.Validate(context.Background(), clinic1, req)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "room", ve.Field)
}

func TestValidate_OperatingHoursWindow(t *testing.T) {
	f := fixture()
	v := newTestValidator(f)

	// Tuesday 09:00 for 60 minutes: inside 08:00-18:00.
	_, err := v.Validate(context.Background(), clinic1, validRequest())
	assert.NoError(t, err)

	// Tuesday 17:30 for 60 minutes ends 18:30, past close.
	req := validRequest()
	req.StartTime = time.Date(2026, 9, 8, 17, 30, 0, 0, time.UTC)
	_, err = v.Validate(context.Background(), clinic1, req)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "start_time", ve.Field)

	// Saturday is not attended.
	req = validRequest()
	req.StartTime = time.Date(2026, 9, 12, 9, 0, 0, 0, time.UTC)
	_, err = v.Validate(context.Background(), clinic1, req)
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "start_time", ve.Field)
}

func TestValidate_DentistConflictOnMove(t *testing.T) {
	f := fixture()
	v := newTestValidator(f)

	monday10 := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
	f.appointments = append(f.appointments,
		&models.Appointment{
			ID: 1, ClinicID: clinic1, PatientID: 1, DentistID: 1, SpecialtyID: 1, RoomID: 1,
			StartTime: monday10, EndTime: monday10.Add(time.Hour), DurationMin: 60,
			Status: string(StatusConfirmed),
		},
		&models.Appointment{
			ID: 2, ClinicID: clinic1, PatientID: 1, DentistID: 1, SpecialtyID: 1, RoomID: 1,
			StartTime: monday10.Add(3 * time.Hour), EndTime: monday10.Add(4 * time.Hour), DurationMin: 60,
			Status: string(StatusPending),
		},
	)

	// Move appointment 2 onto 10:30-11:30: collides with appointment 1.
	req := validRequest()
	req.ExistingID = 2
	req.StartTime = monday10.Add(30 * time.Minute)

	_, err := v.Validate(context.Background(), clinic1, req)
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ResourceDentist, ce.Resource)
	assert.Equal(t, uint(1), ce.AppointmentID)
	assert.Equal(t, monday10, ce.Start)
}

func TestValidate_HalfOpenBoundaryIsNotAConflict(t *testing.T) {
	f := fixture()
	v := newTestValidator(f)

	nine := time.Date(2026, 9, 8, 9, 0, 0, 0, time.UTC)
	f.appointments = append(f.appointments, &models.Appointment{
		ID: 1, ClinicID: clinic1, PatientID: 1, DentistID: 1, SpecialtyID: 1, RoomID: 1,
		StartTime: nine, EndTime: nine.Add(time.Hour), DurationMin: 60,
		Status: string(StatusConfirmed),
	})

	// Starts exactly when the existing one ends.
	req := validRequest()
	req.PatientID = 1
	req.StartTime = nine.Add(time.Hour)

	_, err := v.Validate(context.Background(), clinic1, req)
	assert.NoError(t, err)
}

func TestValidate_CancelledAppointmentsDoNotBlock(t *testing.T) {
	f := fixture()
	v := newTestValidator(f)

	nine := time.Date(2026, 9, 8, 9, 0, 0, 0, time.UTC)
	f.appointments = append(f.appointments, &models.Appointment{
		ID: 1, ClinicID: clinic1, PatientID: 1, DentistID: 1, SpecialtyID: 1, RoomID: 1,
		StartTime: nine, EndTime: nine.Add(time.Hour), DurationMin: 60,
		Status: string(StatusCancelled),
	})

	_, err := v.Validate(context.Background(), clinic1, validRequest())
	assert.NoError(t, err)
}

func TestValidate_RoomConflictAcrossDentists(t *testing.T) {
	f := fixture()
	// Second dentist in the same branch.
	branch := *f.dentists[1].PrimaryBranch
	branchID := branch.ID
	f.dentists[5] = &models.Dentist{
		ID: 5, PrimaryBranchID: &branchID, PrimaryBranch: &branch,
		Specialties: []models.Specialty{{ID: 1}}, Active: true,
	}
	v := newTestValidator(f)

	nine := time.Date(2026, 9, 8, 9, 0, 0, 0, time.UTC)
	f.appointments = append(f.appointments, &models.Appointment{
		ID: 1, ClinicID: clinic1, PatientID: 1, DentistID: 1, SpecialtyID: 1, RoomID: 1,
		StartTime: nine, EndTime: nine.Add(time.Hour), DurationMin: 60,
		Status: string(StatusConfirmed),
	})

	req := validRequest()
	req.DentistID = 5
	req.StartTime = nine.Add(30 * time.Minute)

	_, err := v.Validate(context.Background(), clinic1, req)
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ResourceRoom, ce.Resource)
}

func TestValidate_OverlapRejectedRegardlessOfInsertionOrder(t *testing.T) {
	windowA := time.Date(2026, 9, 8, 9, 0, 0, 0, time.UTC)  // 09:00-10:00
	windowB := time.Date(2026, 9, 8, 9, 30, 0, 0, time.UTC) // 09:30-10:30

	for _, order := range [][2]time.Time{{windowA, windowB}, {windowB, windowA}} {
		f := fixture()
		v := newTestValidator(f)

		first := validRequest()
		first.StartTime = order[0]
		ap, err := v.Validate(context.Background(), clinic1, first)
		require.NoError(t, err)
		require.NoError(t, f.CreateAppointment(context.Background(), ap))

		second := validRequest()
		second.StartTime = order[1]
		_, err = v.Validate(context.Background(), clinic1, second)
		var ce *ConflictError
		require.ErrorAs(t, err, &ce)
	}
}

func TestValidate_PatientDailyCap(t *testing.T) {
	f := fixture()
	v := newTestValidator(f)

	day := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
	for i, hour := range []int{8, 10} {
		f.appointments = append(f.appointments, &models.Appointment{
			ID: uint(20 + i), ClinicID: clinic1, PatientID: 1, DentistID: 1, SpecialtyID: 1, RoomID: 1,
			StartTime: day.Add(time.Duration(hour) * time.Hour), EndTime: day.Add(time.Duration(hour+1) * time.Hour),
			DurationMin: 60, Status: string(StatusConfirmed),
		})
	}

	// Third of the day at 14:00: allowed.
	req := validRequest()
	req.StartTime = day.Add(14 * time.Hour)
	ap, err := v.Validate(context.Background(), clinic1, req)
	require.NoError(t, err)
	require.NoError(t, f.CreateAppointment(context.Background(), ap))

	// Fourth at 16:00: rejected.
	req = validRequest()
	req.StartTime = day.Add(16 * time.Hour)
	_, err = v.Validate(context.Background(), clinic1, req)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "patient", ve.Field)
}

func TestValidate_SundayCreationRule(t *testing.T) {
	f := fixture()
	f.schedules[1].SundayOpen = "09:00"
	f.schedules[1].SundayClose = "13:00"
	v := newTestValidator(f)

	req := validRequest()
	req.StartTime = time.Date(2026, 9, 13, 10, 0, 0, 0, time.UTC) // Sunday
	req.RequestedStatus = StatusPending

	_, err := v.Validate(context.Background(), clinic1, req)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "status", ve.Field)

	req.RequestedStatus = StatusConfirmed
	ap, err := v.Validate(context.Background(), clinic1, req)
	require.NoError(t, err)
	assert.Equal(t, string(StatusConfirmed), ap.Status)
}

func TestValidate_EditStatusTransition(t *testing.T) {
	f := fixture()
	v := newTestValidator(f)

	start := time.Date(2026, 9, 8, 9, 0, 0, 0, time.UTC)
	f.appointments = append(f.appointments, &models.Appointment{
		ID: 30, ClinicID: clinic1, PatientID: 1, DentistID: 1, SpecialtyID: 1, RoomID: 1,
		StartTime: start, EndTime: start.Add(time.Hour), DurationMin: 60,
		Status: string(StatusPending),
	})

	req := validRequest()
	req.ExistingID = 30
	req.RequestedStatus = StatusCompleted // pending -> completed is not an edge

	_, err := v.Validate(context.Background(), clinic1, req)
	var inv *InvalidTransitionError
	require.ErrorAs(t, err, &inv)

	req.RequestedStatus = StatusConfirmed
	ap, err := v.Validate(context.Background(), clinic1, req)
	require.NoError(t, err)
	assert.Equal(t, string(StatusConfirmed), ap.Status)
}

func TestValidate_EditCannotCancelWithoutReason(t *testing.T) {
	f := fixture()
	v := newTestValidator(f)

	start := time.Date(2026, 9, 8, 9, 0, 0, 0, time.UTC)
	f.appointments = append(f.appointments, &models.Appointment{
		ID: 35, ClinicID: clinic1, PatientID: 1, DentistID: 1, SpecialtyID: 1, RoomID: 1,
		StartTime: start, EndTime: start.Add(time.Hour), DurationMin: 60,
		Status: string(StatusPending),
	})

	// pending -> cancelled is a valid edge, but an edit carries no
	// cancellation reason, so the edit path must refuse it.
	req := validRequest()
	req.ExistingID = 35
	req.RequestedStatus = StatusCancelled

	_, err := v.Validate(context.Background(), clinic1, req)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "status", ve.Field)
}

func TestValidate_TerminalAppointmentOnlyObservationsChange(t *testing.T) {
	f := fixture()
	v := newTestValidator(f)

	start := time.Date(2026, 9, 8, 9, 0, 0, 0, time.UTC)
	f.appointments = append(f.appointments, &models.Appointment{
		ID: 40, ClinicID: clinic1, PatientID: 1, DentistID: 1, SpecialtyID: 1, RoomID: 1,
		StartTime: start, EndTime: start.Add(time.Hour), DurationMin: 60,
		Status: string(StatusCompleted),
	})

	// Time change on a completed appointment: rejected wholesale.
	req := validRequest()
	req.ExistingID = 40
	req.StartTime = start.Add(2 * time.Hour)
	_, err := v.Validate(context.Background(), clinic1, req)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "appointment", ve.Field)

	// Observations-only edit: allowed.
	req = validRequest()
	req.ExistingID = 40
	req.StartTime = start
	req.Observations = "root canal went fine"
	ap, err := v.Validate(context.Background(), clinic1, req)
	require.NoError(t, err)
	assert.Equal(t, "root canal went fine", ap.Observations)
	assert.Equal(t, string(StatusCompleted), ap.Status)
}

func TestValidate_InProgressFreezesPatientDentistSpecialty(t *testing.T) {
	f := fixture()
	f.patients[9] = &models.Patient{ID: 9, ClinicID: clinic1, Active: true}
	v := newTestValidator(f)

	start := time.Date(2026, 9, 8, 9, 0, 0, 0, time.UTC)
	f.appointments = append(f.appointments, &models.Appointment{
		ID: 50, ClinicID: clinic1, PatientID: 1, DentistID: 1, SpecialtyID: 1, RoomID: 1,
		StartTime: start, EndTime: start.Add(time.Hour), DurationMin: 60,
		Status: string(StatusInProgress),
	})

	req := validRequest()
	req.ExistingID = 50
	req.PatientID = 9
	_, err := v.Validate(context.Background(), clinic1, req)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "appointment", ve.Field)

	// Time may still move while in progress.
	req = validRequest()
	req.ExistingID = 50
	req.StartTime = start.Add(2 * time.Hour)
	_, err = v.Validate(context.Background(), clinic1, req)
	assert.NoError(t, err)
}

func TestValidate_EditOfOtherClinicsAppointmentNotFound(t *testing.T) {
	f := fixture()
	v := newTestValidator(f)

	start := time.Date(2026, 9, 8, 9, 0, 0, 0, time.UTC)
	f.appointments = append(f.appointments, &models.Appointment{
		ID: 60, ClinicID: clinic2, PatientID: 2, DentistID: 2, SpecialtyID: 1, RoomID: 2,
		StartTime: start, EndTime: start.Add(time.Hour), DurationMin: 60,
		Status: string(StatusPending),
	})

	req := validRequest()
	req.ExistingID = 60
	_, err := v.Validate(context.Background(), clinic1, req)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "appointment", ve.Field)
}
