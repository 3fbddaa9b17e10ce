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

type DentistHandler struct {
	db *gorm.DB
}

func NewDentistHandler(db *gorm.DB) *DentistHandler {
	return &DentistHandler{db: db}
}

// --------- Requests ---------

type CreateDentistRequest struct {
	Name            string `json:"name" binding:"required"`
	LicenseNumber   string `json:"license_number"`
	Phone           string `json:"phone"`
	PrimaryBranchID uint   `json:"primary_branch_id" binding:"required"`
	SpecialtyIDs    []uint `json:"specialty_ids" binding:"required,min=1"`
}

type UpdateDentistRequest struct {
	Name            *string `json:"name,omitempty"`
	LicenseNumber   *string `json:"license_number,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	PrimaryBranchID *uint   `json:"primary_branch_id,omitempty"`
	SpecialtyIDs    []uint  `json:"specialty_ids,omitempty"`
	Active          *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *DentistHandler) List(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.
		Preload("PrimaryBranch").
		Preload("Specialties").
		Joins("JOIN branches ON branches.id = dentists.primary_branch_id").
		Where("branches.clinic_id = ?", clinicID)

	if query != "" {
		q = q.Where("LOWER(dentists.name) LIKE ?", "%"+query+"%")
	}

	var dentists []models.Dentist
	if err := q.
		Order("dentists.name ASC").
		Find(&dentists).Error; err != nil {

		httperr.Internal(c, "failed_to_list_dentists", "failed to list dentists")
		return
	}

	c.JSON(http.StatusOK, dentists)
}

func (h *DentistHandler) Create(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req CreateDentistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var branch models.Branch
	if err := h.db.
		Where("id = ? AND clinic_id = ?", req.PrimaryBranchID, clinicID).
		First(&branch).Error; err != nil {

		httperr.NotFound(c, "not_found", "resource not found")
		return
	}

	var specialties []models.Specialty
	if err := h.db.
		Where("id IN ? AND active = ?", req.SpecialtyIDs, true).
		Find(&specialties).Error; err != nil || len(specialties) != len(req.SpecialtyIDs) {

		httperr.BadRequest(c, "invalid_specialties", "one or more specialties do not exist")
		return
	}

	branchID := branch.ID
	dentist := models.Dentist{
		Name:            strings.TrimSpace(req.Name),
		LicenseNumber:   req.LicenseNumber,
		Phone:           req.Phone,
		PrimaryBranchID: &branchID,
		Specialties:     specialties,
		Active:          true,
	}

	if err := h.db.Create(&dentist).Error; err != nil {
		httperr.Internal(c, "failed_to_create_dentist", "failed to create dentist")
		return
	}

	c.JSON(http.StatusCreated, dentist)
}

func (h *DentistHandler) Update(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id, ok := paramID(c)
	if !ok {
		return
	}

	var dentist models.Dentist
	if err := h.db.
		Preload("PrimaryBranch").
		Preload("Specialties").
		First(&dentist, id).Error; err != nil {

		httperr.NotFound(c, "not_found", "resource not found")
		return
	}

	if dentist.PrimaryBranch == nil || dentist.PrimaryBranch.ClinicID != clinicID {
		httperr.NotFound(c, "not_found", "resource not found")
		return
	}

	var req UpdateDentistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		dentist.Name = *req.Name
	}
	if req.LicenseNumber != nil {
		dentist.LicenseNumber = *req.LicenseNumber
	}
	if req.Phone != nil {
		dentist.Phone = *req.Phone
	}
	if req.Active != nil {
		dentist.Active = *req.Active
	}

	if req.PrimaryBranchID != nil {
		var branch models.Branch
		if err := h.db.
			Where("id = ? AND clinic_id = ?", *req.PrimaryBranchID, clinicID).
			First(&branch).Error; err != nil {

			httperr.NotFound(c, "not_found", "resource not found")
			return
		}
		branchID := branch.ID
		dentist.PrimaryBranchID = &branchID
	}

	if req.SpecialtyIDs != nil {
		var specialties []models.Specialty
		if err := h.db.
			Where("id IN ? AND active = ?", req.SpecialtyIDs, true).
			Find(&specialties).Error; err != nil || len(specialties) != len(req.SpecialtyIDs) {

			httperr.BadRequest(c, "invalid_specialties", "one or more specialties do not exist")
			return
		}
		if err := h.db.Model(&dentist).Association("Specialties").Replace(specialties); err != nil {
			httperr.Internal(c, "failed_to_update_dentist", "failed to update specialties")
			return
		}
	}

	if err := h.db.Save(&dentist).Error; err != nil {
		httperr.Internal(c, "failed_to_update_dentist", "failed to save dentist")
		return
	}

	c.JSON(http.StatusOK, dentist)
}
