package reservation

import (
	"strings"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// These apply the expected effect of a mutation to a local snapshot. They
// are used for optimistic updates; the backend stays the authority.

func SetStatus(r *models.Reservation, next models.ReservationStatus) error {
	if err := CanTransition(r.Status, next); err != nil {
		return err
	}
	r.Status = next
	return nil
}

func Cancel(r *models.Reservation, by string) error {
	if err := CanCancel(r.Status); err != nil {
		return err
	}
	r.Status = models.StatusCancelled
	r.CancelledBy = &by
	return nil
}

func Complete(r *models.Reservation, note string) error {
	if err := CanComplete(r.Status); err != nil {
		return err
	}
	r.Status = models.StatusCompleted
	if note = strings.TrimSpace(note); note != "" {
		if r.Note != "" {
			r.Note += "\n"
		}
		r.Note += note
	}
	return nil
}
