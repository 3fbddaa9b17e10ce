package models

import "time"

type Patient struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ClinicID uint   `gorm:"index;not null" json:"clinic_id"`
	Clinic   Clinic `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"clinic"`

	Name  string `gorm:"size:150;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
