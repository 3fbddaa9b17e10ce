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

type PatientHandler struct {
	db *gorm.DB
}

func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{db: db}
}

// --------- Requests ---------

type CreatePatientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type UpdatePatientRequest struct {
	Name   *string `json:"name,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Email  *string `json:"email,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *PatientHandler) List(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("clinic_id = ?", clinicID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var patients []models.Patient
	if err := q.
		Order("created_at DESC").
		Find(&patients).Error; err != nil {

		httperr.Internal(c, "failed_to_list_patients", "failed to list patients")
		return
	}

	c.JSON(http.StatusOK, patients)
}

func (h *PatientHandler) Create(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	patient := models.Patient{
		ClinicID: clinicID,
		Name:     strings.TrimSpace(req.Name),
		Phone:    req.Phone,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Active:   true,
	}

	if err := h.db.Create(&patient).Error; err != nil {
		httperr.Internal(c, "failed_to_create_patient", "failed to create patient")
		return
	}

	c.JSON(http.StatusCreated, patient)
}

func (h *PatientHandler) Update(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id, ok := paramID(c)
	if !ok {
		return
	}

	var patient models.Patient
	if err := h.db.
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&patient).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "not_found", "resource not found")
			return
		}
		httperr.Internal(c, "failed_to_get_patient", "failed to load patient")
		return
	}

	var req UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		patient.Name = *req.Name
	}
	if req.Phone != nil {
		patient.Phone = *req.Phone
	}
	if req.Email != nil {
		patient.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Active != nil {
		patient.Active = *req.Active
	}

	if err := h.db.Save(&patient).Error; err != nil {
		httperr.Internal(c, "failed_to_update_patient", "failed to save patient")
		return
	}

	c.JSON(http.StatusOK, patient)
}
