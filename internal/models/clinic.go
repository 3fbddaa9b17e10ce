package models

import "time"

type Clinic struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:150;uniqueIndex;not null" json:"name"`

	Address string `gorm:"size:255" json:"address"`
	Phone   string `gorm:"size:20" json:"phone"`
	Email   string `gorm:"size:100" json:"email"`

	Country  string `gorm:"size:2;default:'EC'" json:"country"`
	Currency string `gorm:"size:3;default:'USD'" json:"currency"`
	Timezone string `gorm:"size:50;default:'America/Guayaquil'" json:"timezone"`

	LogoURL string `gorm:"size:255" json:"logo_url"`
	Active  bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
