package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition_AllowedEdges(t *testing.T) {
	allowed := []struct {
		from Status
		to   Status
	}{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusInProgress},
		{StatusConfirmed, StatusCancelled},
		{StatusConfirmed, StatusNoShow},
		{StatusInProgress, StatusCompleted},
	}

	for _, tc := range allowed {
		assert.NoError(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestCanTransition_RejectsEverythingElse(t *testing.T) {
	all := []Status{
		StatusPending, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow,
	}

	allowed := map[[2]Status]bool{
		{StatusPending, StatusConfirmed}:    true,
		{StatusPending, StatusCancelled}:    true,
		{StatusConfirmed, StatusInProgress}: true,
		{StatusConfirmed, StatusCancelled}:  true,
		{StatusConfirmed, StatusNoShow}:     true,
		{StatusInProgress, StatusCompleted}: true,
	}

	for _, from := range all {
		for _, to := range all {
			if allowed[[2]Status{from, to}] {
				continue
			}
			err := CanTransition(from, to)
			require.Error(t, err, "%s -> %s must be rejected", from, to)

			var inv *InvalidTransitionError
			require.ErrorAs(t, err, &inv)
			assert.Equal(t, from, inv.From)
			assert.Equal(t, to, inv.To)
		}
	}
}

func TestTerminalStatesHaveNoOutgoingTransitions(t *testing.T) {
	for _, s := range []Status{StatusCompleted, StatusCancelled, StatusNoShow} {
		assert.True(t, IsTerminal(s))
		assert.Empty(t, transitions[s])
	}
}

func TestActiveStatuses(t *testing.T) {
	assert.ElementsMatch(t,
		[]Status{StatusPending, StatusConfirmed, StatusInProgress},
		ActiveStatuses(),
	)
	assert.False(t, IsActive(StatusCancelled))
	assert.True(t, IsActive(StatusInProgress))
}

func TestInitialStatus_SundayRequiresConfirmed(t *testing.T) {
	sunday := time.Date(2026, 9, 13, 10, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

	_, err := InitialStatus(StatusPending, sunday)
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "status", ve.Field)

	got, err := InitialStatus(StatusConfirmed, sunday)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, got)

	got, err = InitialStatus("", monday)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, got)

	_, err = InitialStatus(StatusCompleted, monday)
	assert.Error(t, err)
}
