package models

import "time"

// Room is a treatment room (chair) inside a branch. Rooms are booked
// independently from dentists and must never be double-booked.
type Room struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BranchID uint   `gorm:"index;not null" json:"branch_id"`
	Branch   Branch `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"branch"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Number      int    `json:"number"`
	Description string `gorm:"size:255" json:"description"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
