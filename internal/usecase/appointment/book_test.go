package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentalcloud/clinic-scheduler/internal/audit"
	"github.com/dentalcloud/clinic-scheduler/internal/domain/scheduling"
	"github.com/dentalcloud/clinic-scheduler/internal/httperr"
	"github.com/dentalcloud/clinic-scheduler/internal/lock"
	"github.com/dentalcloud/clinic-scheduler/internal/models"
)

// stubRepo covers only the lookups these tests reach; everything else panics
// via the embedded nil interface.
type stubRepo struct {
	scheduling.Repository

	patients map[uint]*models.Patient
	dentists map[uint]*models.Dentist
	rooms    map[uint]*models.Room

	created []*models.Appointment
}

func (s *stubRepo) GetPatient(_ context.Context, id uint) (*models.Patient, error) {
	return s.patients[id], nil
}

func (s *stubRepo) GetDentist(_ context.Context, id uint) (*models.Dentist, error) {
	return s.dentists[id], nil
}

func (s *stubRepo) GetRoom(_ context.Context, id uint) (*models.Room, error) {
	return s.rooms[id], nil
}

func (s *stubRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	s.created = append(s.created, ap)
	return nil
}

func (s *stubRepo) InTransaction(_ context.Context, fn func(scheduling.Repository) error) error {
	return fn(s)
}

type sinkRecorder struct {
	events []audit.Event
}

func (r *sinkRecorder) Dispatch(ev audit.Event) {
	r.events = append(r.events, ev)
}

type stubLocker struct {
	busy     bool
	acquired []string
}

func (l *stubLocker) AcquireAll(_ context.Context, keys ...string) (func(), error) {
	if l.busy {
		return nil, lock.ErrBusy
	}
	l.acquired = append(l.acquired, keys...)
	return func() {}, nil
}

func newStubRepo() *stubRepo {
	branch1 := &models.Branch{ID: 1, ClinicID: 1, Active: true}
	branchID := branch1.ID

	return &stubRepo{
		patients: map[uint]*models.Patient{
			1: {ID: 1, ClinicID: 1, Active: true},
			9: {ID: 9, ClinicID: 2, Active: true}, // another clinic's patient
		},
		dentists: map[uint]*models.Dentist{
			1: {ID: 1, PrimaryBranchID: &branchID, PrimaryBranch: branch1, Active: true},
		},
		rooms: map[uint]*models.Room{
			1: {ID: 1, BranchID: 1, Branch: *branch1, Active: true},
		},
	}
}

func TestBookAppointment_CrossTenantReferenceIsAudited(t *testing.T) {
	repo := newStubRepo()
	sink := &sinkRecorder{}
	userID := uint(7)

	uc := NewBookAppointment(repo, &stubLocker{}, sink)

	_, err := uc.Execute(context.Background(), 1, &userID, scheduling.BookingRequest{
		PatientID:   9, // clinic 2
		DentistID:   1,
		RoomID:      1,
		SpecialtyID: 1,
		StartTime:   time.Date(2026, 9, 8, 9, 0, 0, 0, time.UTC),
		DurationMin: 60,
	})

	var violation *scheduling.CrossTenantViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "patient", violation.Reference)
	assert.Empty(t, repo.created)

	require.Len(t, sink.events, 1)
	assert.Equal(t, "cross_tenant_violation", sink.events[0].Action)
	assert.Equal(t, "patient", sink.events[0].Entity)
	assert.Equal(t, uint(1), sink.events[0].ClinicID)
	require.NotNil(t, sink.events[0].UserID)
	assert.Equal(t, userID, *sink.events[0].UserID)
}

func TestBookAppointment_BusyResourceMapsToBusinessError(t *testing.T) {
	repo := newStubRepo()
	sink := &sinkRecorder{}
	userID := uint(7)

	uc := NewBookAppointment(repo, &stubLocker{busy: true}, sink)

	_, err := uc.Execute(context.Background(), 1, &userID, scheduling.BookingRequest{
		PatientID:   1,
		DentistID:   1,
		RoomID:      1,
		SpecialtyID: 1,
		StartTime:   time.Date(2026, 9, 8, 9, 0, 0, 0, time.UTC),
		DurationMin: 60,
	})

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "resource_busy"))
	assert.Empty(t, repo.created)
	assert.Empty(t, sink.events)
}

func TestCheckAvailability_ForeignDentistIsAudited(t *testing.T) {
	repo := newStubRepo()
	otherBranch := &models.Branch{ID: 2, ClinicID: 2, Active: true}
	otherBranchID := otherBranch.ID
	repo.dentists[3] = &models.Dentist{
		ID: 3, PrimaryBranchID: &otherBranchID, PrimaryBranch: otherBranch, Active: true,
	}
	sink := &sinkRecorder{}

	uc := NewCheckAvailability(repo, sink)

	_, err := uc.Execute(context.Background(), 1, scheduling.AvailabilityInput{
		Kind:        scheduling.ResourceDentist,
		ResourceID:  3,
		Start:       time.Date(2026, 9, 8, 9, 0, 0, 0, time.UTC),
		DurationMin: 30,
	})

	var violation *scheduling.CrossTenantViolation
	require.ErrorAs(t, err, &violation)

	require.Len(t, sink.events, 1)
	assert.Equal(t, "cross_tenant_violation", sink.events[0].Action)
	assert.Equal(t, "dentist", sink.events[0].Entity)
	assert.Nil(t, sink.events[0].UserID)
}
