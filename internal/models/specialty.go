package models

import "time"

type Specialty struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`

	Description     string `gorm:"size:255" json:"description"`
	DefaultDuration int    `gorm:"default:30" json:"default_duration"`
	CalendarColor   string `gorm:"size:7;default:'#3498db'" json:"calendar_color"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
