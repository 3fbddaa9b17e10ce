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

// ScheduleHandler manages the operating hours and booking policy of a branch.
type ScheduleHandler struct {
	db *gorm.DB
}

func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{db: db}
}

type UpdateScheduleRequest struct {
	OpenTime  string `json:"open_time" binding:"required"`
	CloseTime string `json:"close_time" binding:"required"`

	SaturdayOpen  string `json:"saturday_open"`
	SaturdayClose string `json:"saturday_close"`
	SundayOpen    string `json:"sunday_open"`
	SundayClose   string `json:"sunday_close"`

	AttendsMonday    bool `json:"attends_monday"`
	AttendsTuesday   bool `json:"attends_tuesday"`
	AttendsWednesday bool `json:"attends_wednesday"`
	AttendsThursday  bool `json:"attends_thursday"`
	AttendsFriday    bool `json:"attends_friday"`
	AttendsSaturday  bool `json:"attends_saturday"`
	AttendsSunday    bool `json:"attends_sunday"`

	SlotMinutes  int  `json:"slot_minutes"`
	AllowSameDay bool `json:"allow_same_day"`
	MinLeadHours int  `json:"min_lead_hours"`
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	branch, ok := h.loadOwnedBranch(c, clinicID)
	if !ok {
		return
	}

	var sched models.BranchSchedule
	if err := h.db.Where("branch_id = ?", branch.ID).First(&sched).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "schedule_not_found", "branch has no schedule yet")
			return
		}
		httperr.Internal(c, "failed_to_get_schedule", "failed to load schedule")
		return
	}

	c.JSON(http.StatusOK, sched)
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	branch, ok := h.loadOwnedBranch(c, clinicID)
	if !ok {
		return
	}

	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if msg := validateScheduleRequest(&req); msg != "" {
		httperr.BadRequest(c, "invalid_schedule", msg)
		return
	}

	var sched models.BranchSchedule
	err := h.db.Where("branch_id = ?", branch.ID).First(&sched).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		httperr.Internal(c, "failed_to_get_schedule", "failed to load schedule")
		return
	}

	sched.BranchID = branch.ID
	sched.OpenTime = req.OpenTime
	sched.CloseTime = req.CloseTime
	sched.SaturdayOpen = req.SaturdayOpen
	sched.SaturdayClose = req.SaturdayClose
	sched.SundayOpen = req.SundayOpen
	sched.SundayClose = req.SundayClose
	sched.AttendsMonday = req.AttendsMonday
	sched.AttendsTuesday = req.AttendsTuesday
	sched.AttendsWednesday = req.AttendsWednesday
	sched.AttendsThursday = req.AttendsThursday
	sched.AttendsFriday = req.AttendsFriday
	sched.AttendsSaturday = req.AttendsSaturday
	sched.AttendsSunday = req.AttendsSunday
	sched.SlotMinutes = req.SlotMinutes
	sched.AllowSameDay = req.AllowSameDay
	sched.MinLeadHours = req.MinLeadHours

	if err := h.db.Save(&sched).Error; err != nil {
		httperr.Internal(c, "failed_to_save_schedule", "failed to save schedule")
		return
	}

	c.JSON(http.StatusOK, sched)
}

// validateScheduleRequest returns an error message or "" when valid. Weekend
// override pairs must be both set or both empty.
func validateScheduleRequest(req *UpdateScheduleRequest) string {
	if !scheduling.ValidHM(req.OpenTime) || !scheduling.ValidHM(req.CloseTime) {
		return "open_time and close_time must be HH:MM"
	}
	if req.OpenTime >= req.CloseTime {
		return "open_time must be before close_time"
	}

	if (req.SaturdayOpen == "") != (req.SaturdayClose == "") {
		return "saturday_open and saturday_close must be set together"
	}
	if req.SaturdayOpen != "" {
		if !scheduling.ValidHM(req.SaturdayOpen) || !scheduling.ValidHM(req.SaturdayClose) {
			return "saturday hours must be HH:MM"
		}
		if req.SaturdayOpen >= req.SaturdayClose {
			return "saturday_open must be before saturday_close"
		}
	}

	if (req.SundayOpen == "") != (req.SundayClose == "") {
		return "sunday_open and sunday_close must be set together"
	}
	if req.SundayOpen != "" {
		if !scheduling.ValidHM(req.SundayOpen) || !scheduling.ValidHM(req.SundayClose) {
			return "sunday hours must be HH:MM"
		}
		if req.SundayOpen >= req.SundayClose {
			return "sunday_open must be before sunday_close"
		}
	}

	if req.SlotMinutes < 5 || req.SlotMinutes > 120 {
		return "slot_minutes must be between 5 and 120"
	}
	if req.MinLeadHours < 0 || req.MinLeadHours > 72 {
		return "min_lead_hours must be between 0 and 72"
	}

	return ""
}

func (h *ScheduleHandler) loadOwnedBranch(c *gin.Context, clinicID uint) (*models.Branch, bool) {
	branchID, ok := paramID(c)
	if !ok {
		return nil, false
	}

	var branch models.Branch
	if err := h.db.
		Where("id = ? AND clinic_id = ?", branchID, clinicID).
		First(&branch).Error; err != nil {

		httperr.NotFound(c, "not_found", "resource not found")
		return nil, false
	}
	return &branch, true
}
