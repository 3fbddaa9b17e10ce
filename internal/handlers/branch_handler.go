package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dentalcloud/clinic-scheduler/internal/httperr"
	"github.com/dentalcloud/clinic-scheduler/internal/middleware"
	"github.com/dentalcloud/clinic-scheduler/internal/models"
)

type BranchHandler struct {
	db *gorm.DB
}

func NewBranchHandler(db *gorm.DB) *BranchHandler {
	return &BranchHandler{db: db}
}

// --------- Requests ---------

type CreateBranchRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type UpdateBranchRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Active  *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *BranchHandler) List(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var branches []models.Branch
	if err := h.db.
		Where("clinic_id = ?", clinicID).
		Order("id ASC").
		Find(&branches).Error; err != nil {

		httperr.Internal(c, "failed_to_list_branches", "failed to list branches")
		return
	}

	c.JSON(http.StatusOK, branches)
}

// Create also seeds a default schedule so the branch is immediately bookable
// on weekdays.
func (h *BranchHandler) Create(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	branch := models.Branch{
		ClinicID: clinicID,
		Name:     strings.TrimSpace(req.Name),
		Address:  req.Address,
		Phone:    req.Phone,
		Active:   true,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&branch).Error; err != nil {
			return err
		}

		sched := models.BranchSchedule{
			BranchID:         branch.ID,
			OpenTime:         "08:30",
			CloseTime:        "18:00",
			AttendsMonday:    true,
			AttendsTuesday:   true,
			AttendsWednesday: true,
			AttendsThursday:  true,
			AttendsFriday:    true,
			SlotMinutes:      30,
			AllowSameDay:     true,
		}
		return tx.Create(&sched).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_create_branch", "failed to create branch")
		return
	}

	c.JSON(http.StatusCreated, branch)
}

func (h *BranchHandler) Update(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id, ok := paramID(c)
	if !ok {
		return
	}

	var branch models.Branch
	if err := h.db.
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&branch).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "not_found", "resource not found")
			return
		}
		httperr.Internal(c, "failed_to_get_branch", "failed to load branch")
		return
	}

	var req UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		branch.Name = *req.Name
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.Phone != nil {
		branch.Phone = *req.Phone
	}
	if req.Active != nil {
		branch.Active = *req.Active
	}

	if err := h.db.Save(&branch).Error; err != nil {
		httperr.Internal(c, "failed_to_update_branch", "failed to save branch")
		return
	}

	c.JSON(http.StatusOK, branch)
}
