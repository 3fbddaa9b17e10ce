package dto

import "time"

type AppointmentListDTO struct {
	ID            uint      `json:"id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	DurationMin   int       `json:"duration_min"`
	Status        string    `json:"status"`
	PatientName   string    `json:"patient_name"`
	DentistName   string    `json:"dentist_name"`
	SpecialtyName string    `json:"specialty_name"`
	RoomName      string    `json:"room_name"`
	Observations  string    `json:"observations,omitempty"`
}
