package reservation

import (
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/httperr"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/models"
)

// ===============================
// Actions
// ===============================

type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

// Actions is the set of admin buttons shown for one reservation row.
type Actions struct {
	Confirm  bool `json:"confirm"`
	Complete bool `json:"complete"`
	Cancel   bool `json:"cancel"`
}

var completable = map[models.ReservationStatus]bool{
	models.StatusConfirmed:     true,
	models.StatusInProgress:    true,
	models.StatusReconfirmed:   true,
	models.StatusWaitingClient: true,
}

// ActionsFor depends on the status only.
func ActionsFor(status models.ReservationStatus) Actions {
	return Actions{
		Confirm:  status == models.StatusPending,
		Complete: completable[status],
		Cancel:   !IsTerminal(status),
	}
}

// IsTerminal reports whether the client-facing cancel/complete actions are
// closed for this status.
func IsTerminal(status models.ReservationStatus) bool {
	return status == models.StatusCancelled || status == models.StatusCompleted
}

// ===============================
// Validations
// ===============================

func CanConfirm(current models.ReservationStatus) error {
	if !ActionsFor(current).Confirm {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current models.ReservationStatus) error {
	if !ActionsFor(current).Complete {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCancel(current models.ReservationStatus) error {
	if !ActionsFor(current).Cancel {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanTransition validates a free status change from the admin status
// selector. Confirm/complete/cancel targets go through their own guards.
func CanTransition(current, next models.ReservationStatus) error {
	if !next.Valid() {
		return httperr.ErrBusiness("invalid_status")
	}
	switch next {
	case models.StatusConfirmed:
		if current == models.StatusPending {
			return nil
		}
	case models.StatusCompleted:
		return CanComplete(current)
	case models.StatusCancelled:
		return CanCancel(current)
	}
	if IsTerminal(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}
