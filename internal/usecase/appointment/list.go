package appointment

import (
	"context"
	"time"

	"github.com/dentalcloud/clinic-scheduler/internal/domain/scheduling"
	"github.com/dentalcloud/clinic-scheduler/internal/dto"
	"github.com/dentalcloud/clinic-scheduler/internal/models"
	"github.com/dentalcloud/clinic-scheduler/internal/timezone"
)

type ListAppointments struct {
	repo scheduling.Repository
}

func NewListAppointments(repo scheduling.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// ByDate lists one clinic day in the clinic's timezone.
func (uc *ListAppointments) ByDate(
	ctx context.Context,
	clinicID uint,
	filter scheduling.ListFilter,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	clinic, err := uc.repo.GetClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(clinic.Timezone)

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	end := start.Add(24 * time.Hour)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, clinicID, filter, start, end)
	if err != nil {
		return nil, err
	}
	return toListDTOs(appointments), nil
}

// ByMonth lists a whole calendar month, the granularity the monthly agenda
// view requests.
func (uc *ListAppointments) ByMonth(
	ctx context.Context,
	clinicID uint,
	filter scheduling.ListFilter,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	clinic, err := uc.repo.GetClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(clinic.Timezone)

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, clinicID, filter, start, end)
	if err != nil {
		return nil, err
	}
	return toListDTOs(appointments), nil
}

// CalendarEvents feeds the calendar widget for an arbitrary [start, end)
// range, one colored event per appointment.
func (uc *ListAppointments) CalendarEvents(
	ctx context.Context,
	clinicID uint,
	filter scheduling.ListFilter,
	start time.Time,
	end time.Time,
) ([]dto.CalendarEventDTO, error) {

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, clinicID, filter, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CalendarEventDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.CalendarEventDTO{
			ID:    ap.ID,
			Title: ap.Patient.Name + " - " + ap.Specialty.Name,
			Start: ap.StartTime,
			End:   ap.EndTime,
			Color: dto.StatusColor(ap.Status),
		})
	}
	return out, nil
}

func toListDTOs(appointments []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:            ap.ID,
			StartTime:     ap.StartTime,
			EndTime:       ap.EndTime,
			DurationMin:   ap.DurationMin,
			Status:        ap.Status,
			PatientName:   ap.Patient.Name,
			DentistName:   ap.Dentist.Name,
			SpecialtyName: ap.Specialty.Name,
			RoomName:      ap.Room.Name,
			Observations:  ap.Observations,
		})
	}
	return out
}
