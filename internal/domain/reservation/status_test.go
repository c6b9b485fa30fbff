package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/httperr"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/models"
)

func TestActionsFor(t *testing.T) {
	tests := []struct {
		status models.ReservationStatus
		want   Actions
	}{
		{models.StatusPending, Actions{Confirm: true, Complete: false, Cancel: true}},
		{models.StatusConfirmed, Actions{Complete: true, Cancel: true}},
		{models.StatusReconfirmed, Actions{Complete: true, Cancel: true}},
		{models.StatusWaitingClient, Actions{Complete: true, Cancel: true}},
		{models.StatusInProgress, Actions{Complete: true, Cancel: true}},
		{models.StatusNoShow, Actions{Cancel: true}},
		{models.StatusCancelled, Actions{}},
		{models.StatusCompleted, Actions{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, ActionsFor(tt.status))
		})
	}
}

func TestCanTransition(t *testing.T) {
	assert.NoError(t, CanTransition(models.StatusPending, models.StatusConfirmed))
	assert.NoError(t, CanTransition(models.StatusConfirmed, models.StatusInProgress))
	assert.NoError(t, CanTransition(models.StatusConfirmed, models.StatusNoShow))

	err := CanTransition(models.StatusCancelled, models.StatusConfirmed)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	err = CanTransition(models.StatusPending, models.StatusCompleted)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	err = CanTransition(models.StatusPending, "ARCHIVED")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestCancelAndComplete(t *testing.T) {
	r := &models.Reservation{Status: models.StatusConfirmed, Note: "Auto blanco"}

	require.NoError(t, Complete(r, "  Lavado listo "))
	assert.Equal(t, models.StatusCompleted, r.Status)
	assert.Equal(t, "Auto blanco\nLavado listo", r.Note)

	assert.Error(t, Cancel(r, "admin"), "completed reservations cannot be cancelled")

	p := &models.Reservation{Status: models.StatusPending}
	require.NoError(t, Cancel(p, "admin"))
	require.NotNil(t, p.CancelledBy)
	assert.Equal(t, "admin", *p.CancelledBy)
	assert.Error(t, Complete(p, ""))
}
