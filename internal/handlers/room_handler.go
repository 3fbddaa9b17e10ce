package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dentalcloud/clinic-scheduler/internal/httperr"
	"github.com/dentalcloud/clinic-scheduler/internal/middleware"
	"github.com/dentalcloud/clinic-scheduler/internal/models"
)

type RoomHandler struct {
	db *gorm.DB
}

func NewRoomHandler(db *gorm.DB) *RoomHandler {
	return &RoomHandler{db: db}
}

// --------- Requests ---------

type CreateRoomRequest struct {
	BranchID    uint   `json:"branch_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Number      int    `json:"number"`
	Description string `json:"description"`
}

type UpdateRoomRequest struct {
	Name        *string `json:"name,omitempty"`
	Number      *int    `json:"number,omitempty"`
	Description *string `json:"description,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *RoomHandler) List(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	q := h.db.
		Joins("JOIN branches ON branches.id = rooms.branch_id").
		Where("branches.clinic_id = ?", clinicID)

	if v, err := strconv.Atoi(c.Query("branch_id")); err == nil && v > 0 {
		q = q.Where("rooms.branch_id = ?", v)
	}

	var rooms []models.Room
	if err := q.
		Order("rooms.branch_id ASC, rooms.number ASC").
		Find(&rooms).Error; err != nil {

		httperr.Internal(c, "failed_to_list_rooms", "failed to list rooms")
		return
	}

	c.JSON(http.StatusOK, rooms)
}

func (h *RoomHandler) Create(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	// The target branch must belong to the caller's clinic.
	var branch models.Branch
	if err := h.db.
		Where("id = ? AND clinic_id = ?", req.BranchID, clinicID).
		First(&branch).Error; err != nil {

		httperr.NotFound(c, "not_found", "resource not found")
		return
	}

	room := models.Room{
		BranchID:    branch.ID,
		Name:        strings.TrimSpace(req.Name),
		Number:      req.Number,
		Description: req.Description,
		Active:      true,
	}

	if err := h.db.Create(&room).Error; err != nil {
		httperr.Internal(c, "failed_to_create_room", "failed to create room")
		return
	}

	c.JSON(http.StatusCreated, room)
}

func (h *RoomHandler) Update(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id, ok := paramID(c)
	if !ok {
		return
	}

	var room models.Room
	if err := h.db.
		Preload("Branch").
		First(&room, id).Error; err != nil {

		httperr.NotFound(c, "not_found", "resource not found")
		return
	}
	if room.Branch.ClinicID != clinicID {
		httperr.NotFound(c, "not_found", "resource not found")
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Number != nil {
		room.Number = *req.Number
	}
	if req.Description != nil {
		room.Description = *req.Description
	}
	if req.Active != nil {
		room.Active = *req.Active
	}

	if err := h.db.Save(&room).Error; err != nil {
		httperr.Internal(c, "failed_to_update_room", "failed to save room")
		return
	}

	c.JSON(http.StatusOK, room)
}
