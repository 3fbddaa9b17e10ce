package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// ClinicID is denormalized from patient/dentist/room ownership and
	// recomputed on every write, so reads never depend on join traversal
	// for tenant filtering.
	ClinicID uint `gorm:"index;not null" json:"clinic_id"`

	PatientID uint    `gorm:"index;not null" json:"patient_id"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"patient"`

	DentistID uint    `gorm:"index;not null" json:"dentist_id"`
	Dentist   Dentist `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"dentist"`

	SpecialtyID uint      `gorm:"not null" json:"specialty_id"`
	Specialty   Specialty `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"specialty"`

	RoomID uint `gorm:"index;not null" json:"room_id"`
	Room   Room `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"room"`

	StartTime   time.Time `gorm:"index;not null" json:"start_time"`
	EndTime     time.Time `gorm:"not null" json:"end_time"`
	DurationMin int       `gorm:"not null" json:"duration_min"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Observations       string `gorm:"size:500" json:"observations"`
	CancellationReason string `gorm:"size:500" json:"cancellation_reason"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
