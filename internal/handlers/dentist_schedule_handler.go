package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dentalcloud/clinic-scheduler/internal/domain/scheduling"
	"github.com/dentalcloud/clinic-scheduler/internal/httperr"
	"github.com/dentalcloud/clinic-scheduler/internal/middleware"
	"github.com/dentalcloud/clinic-scheduler/internal/models"
)

// DentistScheduleHandler manages a dentist's personalized weekly availability
// and date-range exceptions (vacation, leave, training).
type DentistScheduleHandler struct {
	db *gorm.DB
}

func NewDentistScheduleHandler(db *gorm.DB) *DentistScheduleHandler {
	return &DentistScheduleHandler{db: db}
}

type AvailabilityRangeConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Active    bool   `json:"active"`
}

type AvailabilityUpdateRequest struct {
	Ranges []AvailabilityRangeConfig `json:"ranges" binding:"required"`
}

type CreateExceptionRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Kind      string `json:"kind"`
	Reason    string `json:"reason"`
	AllDay    *bool  `json:"all_day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *DentistScheduleHandler) GetAvailability(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	dentist, ok := h.loadOwnedDentist(c, clinicID)
	if !ok {
		return
	}

	var ranges []models.DentistAvailability
	if err := h.db.
		Where("dentist_id = ?", dentist.ID).
		Order("weekday ASC, start_time ASC").
		Find(&ranges).Error; err != nil {

		httperr.Internal(c, "failed_to_get_availability", "failed to load availability")
		return
	}

	c.JSON(http.StatusOK, ranges)
}

// UpdateAvailability replaces the dentist's whole weekly configuration.
func (h *DentistScheduleHandler) UpdateAvailability(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	dentist, ok := h.loadOwnedDentist(c, clinicID)
	if !ok {
		return
	}

	var req AvailabilityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	for _, r := range req.Ranges {
		if !scheduling.ValidHM(r.StartTime) || !scheduling.ValidHM(r.EndTime) {
			httperr.BadRequest(c, "invalid_range", "start_time and end_time must be HH:MM")
			return
		}
		if r.StartTime >= r.EndTime {
			httperr.BadRequest(c, "invalid_range", "start_time must be before end_time")
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dentist_id = ?", dentist.ID).
			Delete(&models.DentistAvailability{}).Error; err != nil {
			return err
		}

		var toCreate []models.DentistAvailability
		for _, r := range req.Ranges {
			toCreate = append(toCreate, models.DentistAvailability{
				DentistID: dentist.ID,
				Weekday:   r.Weekday,
				StartTime: r.StartTime,
				EndTime:   r.EndTime,
				Active:    r.Active,
			})
		}

		if len(toCreate) > 0 {
			return tx.Create(&toCreate).Error
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_availability", "failed to save availability")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// EXCEPTIONS
// ======================================================

func (h *DentistScheduleHandler) ListExceptions(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	dentist, ok := h.loadOwnedDentist(c, clinicID)
	if !ok {
		return
	}

	var exceptions []models.DentistException
	if err := h.db.
		Where("dentist_id = ? AND active = ?", dentist.ID, true).
		Order("start_date ASC").
		Find(&exceptions).Error; err != nil {

		httperr.Internal(c, "failed_to_get_exceptions", "failed to load exceptions")
		return
	}

	c.JSON(http.StatusOK, exceptions)
}

func (h *DentistScheduleHandler) CreateException(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	dentist, ok := h.loadOwnedDentist(c, clinicID)
	if !ok {
		return
	}

	var req CreateExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	clinic, ok := loadClinicByID(c, h.db, clinicID)
	if !ok {
		return
	}

	startDate, err1 := parseDateInClinic(clinic, req.StartDate)
	endDate, err2 := parseDateInClinic(clinic, req.EndDate)
	if err1 != nil || err2 != nil || endDate.Before(startDate) {
		httperr.BadRequest(c, "invalid_date_range", "start_date and end_date must be YYYY-MM-DD with start <= end")
		return
	}

	allDay := true
	if req.AllDay != nil {
		allDay = *req.AllDay
	}

	if !allDay {
		if !scheduling.ValidHM(req.StartTime) || !scheduling.ValidHM(req.EndTime) || req.StartTime >= req.EndTime {
			httperr.BadRequest(c, "invalid_time_window", "partial-day exceptions need start_time < end_time in HH:MM")
			return
		}
	}

	kind := req.Kind
	if kind == "" {
		kind = "leave"
	}

	exception := models.DentistException{
		DentistID: dentist.ID,
		StartDate: startDate,
		EndDate:   endDate,
		Kind:      kind,
		Reason:    req.Reason,
		AllDay:    allDay,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Active:    true,
	}

	if err := h.db.Create(&exception).Error; err != nil {
		httperr.Internal(c, "failed_to_create_exception", "failed to save exception")
		return
	}

	c.JSON(http.StatusCreated, exception)
}

// DeleteException soft-deactivates: past exceptions stay for history.
func (h *DentistScheduleHandler) DeleteException(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	dentist, ok := h.loadOwnedDentist(c, clinicID)
	if !ok {
		return
	}

	exceptionID := c.Param("exceptionId")

	result := h.db.Model(&models.DentistException{}).
		Where("id = ? AND dentist_id = ?", exceptionID, dentist.ID).
		Update("active", false)

	if result.Error != nil {
		httperr.Internal(c, "failed_to_delete_exception", "failed to remove exception")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "not_found", "resource not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// HELPERS
// ======================================================

func (h *DentistScheduleHandler) loadOwnedDentist(c *gin.Context, clinicID uint) (*models.Dentist, bool) {
	dentistID, ok := paramID(c)
	if !ok {
		return nil, false
	}

	var dentist models.Dentist
	if err := h.db.
		Preload("PrimaryBranch").
		First(&dentist, dentistID).Error; err != nil {

		httperr.NotFound(c, "not_found", "resource not found")
		return nil, false
	}

	if dentist.PrimaryBranch == nil || dentist.PrimaryBranch.ClinicID != clinicID {
		httperr.NotFound(c, "not_found", "resource not found")
		return nil, false
	}
	return &dentist, true
}
