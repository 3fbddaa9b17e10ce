package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dentalcloud/clinic-scheduler/internal/httperr"
	"github.com/dentalcloud/clinic-scheduler/internal/models"
	"github.com/dentalcloud/clinic-scheduler/internal/timezone"
)

// All request dates and times are interpreted in the clinic's timezone, never
// the server's.

func parseDateInClinic(clinic *models.Clinic, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(clinic.Timezone),
	)
}

func parseDateTimeInClinic(
	clinic *models.Clinic,
	dateStr string,
	timeStr string,
) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		timezone.Location(clinic.Timezone),
	)
}

func loadClinicByID(c *gin.Context, db *gorm.DB, clinicID uint) (*models.Clinic, bool) {
	var clinic models.Clinic
	if err := db.First(&clinic, clinicID).Error; err != nil {
		httperr.Internal(c, "clinic_not_found", "failed to load clinic")
		return nil, false
	}
	return &clinic, true
}
