package handlers

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	"github.com/chai2010/webp"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
	"gorm.io/gorm"

	"github.com/dentalcloud/clinic-scheduler/internal/httperr"
	"github.com/dentalcloud/clinic-scheduler/internal/middleware"
	"github.com/dentalcloud/clinic-scheduler/internal/models"
	"github.com/dentalcloud/clinic-scheduler/internal/storage"
	"github.com/dentalcloud/clinic-scheduler/internal/timezone"
)

const (
	maxLogoBytes = 5 << 20
	logoMaxEdge  = 512
)

type ClinicHandler struct {
	db      *gorm.DB
	storage *storage.Client
}

func NewClinicHandler(db *gorm.DB, storage *storage.Client) *ClinicHandler {
	return &ClinicHandler{db: db, storage: storage}
}

type UpdateClinicRequest struct {
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Timezone *string `json:"timezone"`
}

func (h *ClinicHandler) GetMeClinic(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var clinic models.Clinic
	if err := h.db.First(&clinic, clinicID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "clinic_not_found", "clinic not found")
			return
		}
		httperr.Internal(c, "failed_to_get_clinic", "failed to load clinic")
		return
	}

	c.JSON(http.StatusOK, clinic)
}

func (h *ClinicHandler) UpdateMeClinic(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var clinic models.Clinic
	if err := h.db.First(&clinic, clinicID).Error; err != nil {
		httperr.Internal(c, "failed_to_get_clinic", "failed to load clinic")
		return
	}

	var req UpdateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		clinic.Name = *req.Name
	}
	if req.Address != nil {
		clinic.Address = *req.Address
	}
	if req.Phone != nil {
		clinic.Phone = *req.Phone
	}
	if req.Email != nil {
		clinic.Email = *req.Email
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "timezone must be a valid IANA name")
			return
		}
		clinic.Timezone = *req.Timezone
	}

	if err := h.db.Save(&clinic).Error; err != nil {
		httperr.Internal(c, "failed_to_update_clinic", "failed to save clinic")
		return
	}

	c.JSON(http.StatusOK, clinic)
}

// UploadLogo accepts a PNG or JPEG, downscales it to at most 512px on the
// long edge, re-encodes as webp and stores it in object storage.
func (h *ClinicHandler) UploadLogo(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	if h.storage == nil {
		httperr.Internal(c, "storage_unavailable", "object storage is not configured")
		return
	}

	file, err := c.FormFile("logo")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "multipart field 'logo' is required")
		return
	}
	if file.Size > maxLogoBytes {
		httperr.BadRequest(c, "file_too_large", "logo must be at most 5MB")
		return
	}

	src, err := file.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "failed to read upload")
		return
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "logo must be a PNG or JPEG image")
		return
	}

	img = downscale(img, logoMaxEdge)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: 85}); err != nil {
		httperr.Internal(c, "failed_to_encode_image", "failed to convert logo")
		return
	}

	key := fmt.Sprintf("logos/%d/%s.webp", clinicID, uuid.NewString())
	if err := h.storage.Upload(
		c.Request.Context(),
		key,
		"image/webp",
		bytes.NewReader(buf.Bytes()),
		int64(buf.Len()),
	); err != nil {
		httperr.Internal(c, "failed_to_upload", "failed to store logo")
		return
	}

	logoURL := h.storage.PublicURL(key)
	if err := h.db.Model(&models.Clinic{}).
		Where("id = ?", clinicID).
		Update("logo_url", logoURL).Error; err != nil {

		httperr.Internal(c, "failed_to_update_clinic", "failed to save logo url")
		return
	}

	c.JSON(http.StatusOK, gin.H{"logo_url": logoURL})
}

func downscale(img image.Image, maxEdge int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxEdge && h <= maxEdge {
		return img
	}

	if w >= h {
		h = h * maxEdge / w
		w = maxEdge
	} else {
		w = w * maxEdge / h
		h = maxEdge
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
