package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dentalcloud/clinic-scheduler/internal/domain/scheduling"
	"github.com/dentalcloud/clinic-scheduler/internal/httperr"
	"github.com/dentalcloud/clinic-scheduler/internal/httpresp"
	"github.com/dentalcloud/clinic-scheduler/internal/middleware"
	"github.com/dentalcloud/clinic-scheduler/internal/models"
	ucAppointment "github.com/dentalcloud/clinic-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db *gorm.DB

	bookUC       *ucAppointment.BookAppointment
	rescheduleUC *ucAppointment.RescheduleAppointment
	statusUC     *ucAppointment.ChangeStatus
	listUC       *ucAppointment.ListAppointments
}

func NewAppointmentHandler(
	db *gorm.DB,
	bookUC *ucAppointment.BookAppointment,
	rescheduleUC *ucAppointment.RescheduleAppointment,
	statusUC *ucAppointment.ChangeStatus,
	listUC *ucAppointment.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:           db,
		bookUC:       bookUC,
		rescheduleUC: rescheduleUC,
		statusUC:     statusUC,
		listUC:       listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	PatientID   uint   `json:"patient_id" binding:"required"`
	DentistID   uint   `json:"dentist_id" binding:"required"`
	SpecialtyID uint   `json:"specialty_id" binding:"required"`
	RoomID      uint   `json:"room_id" binding:"required"`

	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	DurationMin int    `json:"duration_min" binding:"required"`

	Status       string `json:"status"`
	Observations string `json:"observations"`
}

type UpdateAppointmentRequest struct {
	PatientID   uint   `json:"patient_id" binding:"required"`
	DentistID   uint   `json:"dentist_id" binding:"required"`
	SpecialtyID uint   `json:"specialty_id" binding:"required"`
	RoomID      uint   `json:"room_id" binding:"required"`

	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	DurationMin int    `json:"duration_min" binding:"required"`

	Status       string `json:"status"`
	Observations string `json:"observations"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	clinic, ok := h.loadClinic(c, clinicID)
	if !ok {
		return
	}

	start, err := parseDateTimeInClinic(clinic, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "date must be YYYY-MM-DD and time HH:MM")
		return
	}

	ap, err := h.bookUC.Execute(c.Request.Context(), clinicID, &userID, scheduling.BookingRequest{
		PatientID:       req.PatientID,
		DentistID:       req.DentistID,
		SpecialtyID:     req.SpecialtyID,
		RoomID:          req.RoomID,
		StartTime:       start,
		DurationMin:     req.DurationMin,
		RequestedStatus: scheduling.Status(req.Status),
		Observations:    req.Observations,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(201, ap)
}

// ======================================================
// UPDATE (move / reschedule / edit)
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	appointmentID, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	clinic, ok := h.loadClinic(c, clinicID)
	if !ok {
		return
	}

	start, err := parseDateTimeInClinic(clinic, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "date must be YYYY-MM-DD and time HH:MM")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), clinicID, &userID, scheduling.BookingRequest{
		PatientID:       req.PatientID,
		DentistID:       req.DentistID,
		SpecialtyID:     req.SpecialtyID,
		RoomID:          req.RoomID,
		StartTime:       start,
		DurationMin:     req.DurationMin,
		RequestedStatus: scheduling.Status(req.Status),
		Observations:    req.Observations,
		ExistingID:      appointmentID,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(200, ap)
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

func (h *AppointmentHandler) ChangeStatus(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	appointmentID, ok := paramID(c)
	if !ok {
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.statusUC.Execute(c.Request.Context(), clinicID, &userID, ucAppointment.ChangeStatusInput{
		AppointmentID: appointmentID,
		Target:        scheduling.Status(req.Status),
		Reason:        req.Reason,
	})
	if err != nil {
		httperr.WriteScheduling(c, err)
		return
	}

	c.JSON(200, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "date query parameter is required")
		return
	}

	clinic, ok := h.loadClinic(c, clinicID)
	if !ok {
		return
	}

	date, err := parseDateInClinic(clinic, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD")
		return
	}

	out, err := h.listUC.ByDate(c.Request.Context(), clinicID, listFilter(c), date)
	if err != nil {
		httperr.WriteScheduling(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "year must be a 4-digit year")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "month must be 1-12")
		return
	}

	out, err := h.listUC.ByMonth(c.Request.Context(), clinicID, listFilter(c), year, month)
	if err != nil {
		httperr.WriteScheduling(c, err)
		return
	}

	c.JSON(200, gin.H{
		"year":         year,
		"month":        month,
		"appointments": out,
	})
}

// Calendar returns colored events for the calendar widget over [from, to).
func (h *AppointmentHandler) Calendar(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	clinic, ok := h.loadClinic(c, clinicID)
	if !ok {
		return
	}

	from, err1 := parseDateInClinic(clinic, c.Query("from"))
	to, err2 := parseDateInClinic(clinic, c.Query("to"))
	if err1 != nil || err2 != nil || !from.Before(to) {
		httperr.BadRequest(c, "invalid_range", "from and to must be YYYY-MM-DD with from < to")
		return
	}

	events, err := h.listUC.CalendarEvents(c.Request.Context(), clinicID, listFilter(c), from, to.AddDate(0, 0, 1))
	if err != nil {
		httperr.WriteScheduling(c, err)
		return
	}

	httpresp.List(c, events)
}

// ======================================================
// HELPERS
// ======================================================

func (h *AppointmentHandler) loadClinic(c *gin.Context, clinicID uint) (*models.Clinic, bool) {
	return loadClinicByID(c, h.db, clinicID)
}

func listFilter(c *gin.Context) scheduling.ListFilter {
	var f scheduling.ListFilter
	if v, err := strconv.Atoi(c.Query("dentist_id")); err == nil && v > 0 {
		f.DentistID = uint(v)
	}
	if v, err := strconv.Atoi(c.Query("specialty_id")); err == nil && v > 0 {
		f.SpecialtyID = uint(v)
	}
	if s := c.Query("status"); s != "" {
		f.Status = scheduling.Status(s)
	}
	return f
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		httperr.BadRequest(c, "invalid_id", "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

func writeBookingError(c *gin.Context, err error) {
	if httperr.IsBusiness(err, "resource_busy") {
		httperr.Conflict(c, "resource_busy", "another booking for this dentist or room is in flight, retry")
		return
	}
	httperr.WriteScheduling(c, err)
}
