package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Exception bounds are written as midnight in the clinic's timezone, so the
// lookup anchor must land on the exact same instant or the range predicate
// silently drops the row and the dentist's leave day becomes bookable.
func TestExceptionDayAnchor_MatchesClinicLocalBounds(t *testing.T) {
	for _, tz := range []string{"America/Guayaquil", "Asia/Tokyo"} {
		loc, err := time.LoadLocation(tz)
		require.NoError(t, err)

		// Single-day exception as the handler stores it.
		storedStart := time.Date(2026, 9, 1, 0, 0, 0, 0, loc)
		storedEnd := storedStart

		for _, booking := range []time.Time{
			time.Date(2026, 9, 1, 9, 0, 0, 0, loc),
			time.Date(2026, 9, 1, 23, 30, 0, 0, loc),
		} {
			day := exceptionDayAnchor(booking)

			assert.False(t, storedStart.After(day),
				"%s: start_date %v must not exceed anchor %v", tz, storedStart, day)
			assert.False(t, storedEnd.Before(day),
				"%s: end_date %v must not precede anchor %v", tz, storedEnd, day)
		}
	}
}

func TestExceptionDayAnchor_DayOutsideRangeStaysBookable(t *testing.T) {
	loc, err := time.LoadLocation("America/Guayaquil")
	require.NoError(t, err)

	_ = time.Date(2026, 9, 1, 0, 0, 0, 0, loc)
	storedEnd := time.Date(2026, 9, 3, 0, 0, 0, 0, loc)

	day := exceptionDayAnchor(time.Date(2026, 9, 4, 10, 0, 0, 0, loc))
	assert.True(t, storedEnd.Before(day), "the day after the range must not match")
}
