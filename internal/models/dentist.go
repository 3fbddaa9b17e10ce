package models

import "time"

type Dentist struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID *uint `gorm:"index" json:"user_id"`

	// PrimaryBranchID fixes which branch the dentist schedules at. A dentist
	// without one cannot take appointments.
	PrimaryBranchID *uint   `gorm:"index" json:"primary_branch_id"`
	PrimaryBranch   *Branch `gorm:"foreignKey:PrimaryBranchID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"primary_branch"`

	Name          string `gorm:"size:150;not null" json:"name"`
	LicenseNumber string `gorm:"size:50" json:"license_number"`
	Phone         string `gorm:"size:20" json:"phone"`

	Specialties []Specialty `gorm:"many2many:dentist_specialties;" json:"specialties"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasSpecialty reports whether the dentist holds the given specialty.
func (d *Dentist) HasSpecialty(specialtyID uint) bool {
	for _, sp := range d.Specialties {
		if sp.ID == specialtyID {
			return true
		}
	}
	return false
}

// DentistAvailability is one personalized weekly range. When a dentist has
// any active range for a weekday, those ranges replace the branch hours for
// that dentist on that weekday.
type DentistAvailability struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	DentistID uint `gorm:"index;not null" json:"dentist_id"`

	Weekday   int    `json:"weekday"` // 0 = Sunday .. 6 = Saturday, time.Weekday numbering
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DentistException blocks a dentist for a date range (vacation, leave,
// training). An all-day exception removes the whole day; otherwise only the
// [StartTime, EndTime) window is blocked.
type DentistException struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	DentistID uint `gorm:"index;not null" json:"dentist_id"`

	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`

	Kind   string `gorm:"size:10;default:'leave'" json:"kind"`
	Reason string `gorm:"size:255" json:"reason"`

	AllDay    bool   `gorm:"default:true" json:"all_day"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Covers reports whether the exception covers the given moment. StartDate and
// EndDate hold clinic-local midnights; comparing raw instants keeps the answer
// stable even when the driver hands the timestamps back in another zone.
func (e *DentistException) Covers(date time.Time) bool {
	return !date.Before(e.StartDate) && date.Before(e.EndDate.Add(24*time.Hour))
}
