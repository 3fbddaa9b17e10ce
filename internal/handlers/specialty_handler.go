package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dentalcloud/clinic-scheduler/internal/httperr"
	"github.com/dentalcloud/clinic-scheduler/internal/models"
)

// Specialties are a shared catalog, not per-clinic; only listing is exposed
// to staff, management happens out of band.
type SpecialtyHandler struct {
	db *gorm.DB
}

func NewSpecialtyHandler(db *gorm.DB) *SpecialtyHandler {
	return &SpecialtyHandler{db: db}
}

func (h *SpecialtyHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("active = ?", true)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var specialties []models.Specialty
	if err := q.
		Order("name ASC").
		Find(&specialties).Error; err != nil {

		httperr.Internal(c, "failed_to_list_specialties", "failed to list specialties")
		return
	}

	c.JSON(http.StatusOK, specialties)
}
