package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dentalcloud/clinic-scheduler/internal/domain/scheduling"
	"github.com/dentalcloud/clinic-scheduler/internal/httperr"
	"github.com/dentalcloud/clinic-scheduler/internal/httpresp"
	"github.com/dentalcloud/clinic-scheduler/internal/middleware"
	ucAppointment "github.com/dentalcloud/clinic-scheduler/internal/usecase/appointment"
)

type AvailabilityHandler struct {
	db      *gorm.DB
	checkUC *ucAppointment.CheckAvailability
	slotsUC *ucAppointment.GetDaySlots
}

func NewAvailabilityHandler(
	db *gorm.DB,
	checkUC *ucAppointment.CheckAvailability,
	slotsUC *ucAppointment.GetDaySlots,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		db:      db,
		checkUC: checkUC,
		slotsUC: slotsUC,
	}
}

// Check probes one resource window: ?resource=dentist&id=3&date=...&time=...
// &duration=60[&exclude=12]. It is advisory only; booking re-validates.
func (h *AvailabilityHandler) Check(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	kind := scheduling.ResourceKind(c.Query("resource"))
	if kind != scheduling.ResourceDentist && kind != scheduling.ResourceRoom {
		httperr.BadRequest(c, "invalid_resource", "resource must be dentist or room")
		return
	}

	resourceID, err := strconv.Atoi(c.Query("id"))
	if err != nil || resourceID <= 0 {
		httperr.BadRequest(c, "invalid_id", "id must be a positive integer")
		return
	}

	duration, err := strconv.Atoi(c.Query("duration"))
	if err != nil || duration <= 0 {
		httperr.BadRequest(c, "invalid_duration", "duration must be positive minutes")
		return
	}

	clinic, ok := loadClinicByID(c, h.db, clinicID)
	if !ok {
		return
	}

	start, err := parseDateTimeInClinic(clinic, c.Query("date"), c.Query("time"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "date must be YYYY-MM-DD and time HH:MM")
		return
	}

	var excludeID uint
	if v, err := strconv.Atoi(c.Query("exclude")); err == nil && v > 0 {
		excludeID = uint(v)
	}

	result, err := h.checkUC.Execute(c.Request.Context(), clinicID, scheduling.AvailabilityInput{
		Kind:        kind,
		ResourceID:  uint(resourceID),
		Start:       start,
		DurationMin: duration,
		ExcludeID:   excludeID,
	})
	if err != nil {
		httperr.WriteScheduling(c, err)
		return
	}

	c.JSON(200, result)
}

// Slots lists a dentist's free slots for one day.
func (h *AvailabilityHandler) Slots(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	dentistID, err := strconv.Atoi(c.Query("dentist_id"))
	if err != nil || dentistID <= 0 {
		httperr.BadRequest(c, "invalid_dentist_id", "dentist_id must be a positive integer")
		return
	}

	clinic, ok := loadClinicByID(c, h.db, clinicID)
	if !ok {
		return
	}

	date, err := parseDateInClinic(clinic, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD")
		return
	}

	slots, err := h.slotsUC.Execute(c.Request.Context(), clinicID, uint(dentistID), date)
	if err != nil {
		httperr.WriteScheduling(c, err)
		return
	}

	httpresp.List(c, slots)
}
