package dto

import "time"

// CalendarEventDTO is the shape calendar widgets consume. Color encodes the
// appointment status.
type CalendarEventDTO struct {
	ID    uint      `json:"id"`
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Color string    `json:"color"`
}

var statusColors = map[string]string{
	"pending":     "#ffc107",
	"confirmed":   "#28a745",
	"in_progress": "#17a2b8",
	"completed":   "#6c757d",
	"cancelled":   "#dc3545",
	"no_show":     "#343a40",
}

func StatusColor(status string) string {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return "#3498db"
}
