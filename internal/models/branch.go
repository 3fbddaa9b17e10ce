package models

import "time"

type Branch struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ClinicID uint   `gorm:"index;not null" json:"clinic_id"`
	Clinic   Clinic `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"clinic"`

	Name    string `gorm:"size:150;not null" json:"name"`
	Address string `gorm:"size:255" json:"address"`
	Phone   string `gorm:"size:20" json:"phone"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BranchSchedule holds the operating hours and booking policy of one branch.
// Saturday/Sunday override pairs are either both set or both empty; the
// schedule handler enforces that at save time.
type BranchSchedule struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BranchID uint   `gorm:"uniqueIndex;not null" json:"branch_id"`
	Branch   Branch `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"branch"`

	OpenTime  string `gorm:"size:5;default:'08:30'" json:"open_time"`
	CloseTime string `gorm:"size:5;default:'18:00'" json:"close_time"`

	SaturdayOpen  string `gorm:"size:5" json:"saturday_open"`
	SaturdayClose string `gorm:"size:5" json:"saturday_close"`
	SundayOpen    string `gorm:"size:5" json:"sunday_open"`
	SundayClose   string `gorm:"size:5" json:"sunday_close"`

	AttendsMonday    bool `gorm:"default:true" json:"attends_monday"`
	AttendsTuesday   bool `gorm:"default:true" json:"attends_tuesday"`
	AttendsWednesday bool `gorm:"default:true" json:"attends_wednesday"`
	AttendsThursday  bool `gorm:"default:true" json:"attends_thursday"`
	AttendsFriday    bool `gorm:"default:true" json:"attends_friday"`
	AttendsSaturday  bool `gorm:"default:false" json:"attends_saturday"`
	AttendsSunday    bool `gorm:"default:false" json:"attends_sunday"`

	SlotMinutes  int  `gorm:"default:30" json:"slot_minutes"`
	AllowSameDay bool `gorm:"default:true" json:"allow_same_day"`
	MinLeadHours int  `gorm:"default:0" json:"min_lead_hours"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Attends reports whether the branch attends on the given weekday.
func (s *BranchSchedule) Attends(weekday time.Weekday) bool {
	switch weekday {
	case time.Monday:
		return s.AttendsMonday
	case time.Tuesday:
		return s.AttendsTuesday
	case time.Wednesday:
		return s.AttendsWednesday
	case time.Thursday:
		return s.AttendsThursday
	case time.Friday:
		return s.AttendsFriday
	case time.Saturday:
		return s.AttendsSaturday
	case time.Sunday:
		return s.AttendsSunday
	}
	return false
}
