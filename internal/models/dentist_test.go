package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDentistExceptionCovers_SurvivesZoneRoundTrip(t *testing.T) {
	loc, err := time.LoadLocation("America/Guayaquil")
	require.NoError(t, err)

	// Bounds as the handler writes them, then handed back by the driver in
	// UTC, the way a postgres session in another zone would.
	exc := DentistException{
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, loc).In(time.UTC),
		EndDate:   time.Date(2026, 9, 2, 0, 0, 0, 0, loc).In(time.UTC),
		AllDay:    true,
		Active:    true,
	}

	assert.True(t, exc.Covers(time.Date(2026, 9, 1, 9, 0, 0, 0, loc)))
	assert.True(t, exc.Covers(time.Date(2026, 9, 2, 23, 30, 0, 0, loc)))
	assert.False(t, exc.Covers(time.Date(2026, 9, 3, 0, 0, 0, 0, loc)))
	assert.False(t, exc.Covers(time.Date(2026, 8, 31, 23, 59, 0, 0, loc)))
}

func TestDentistExceptionCovers_EastOfUTC(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	exc := DentistException{
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, loc).In(time.UTC),
		EndDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, loc).In(time.UTC),
		AllDay:    true,
		Active:    true,
	}

	assert.True(t, exc.Covers(time.Date(2026, 9, 1, 8, 0, 0, 0, loc)))
	assert.False(t, exc.Covers(time.Date(2026, 9, 2, 8, 0, 0, 0, loc)))
}
