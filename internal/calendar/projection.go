package calendar

import (
	"strconv"
	"strings"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/models"
)

const (
	DefaultColor   = "#3788d8"
	CancelledColor = "#9e9e9e"

	pendingAlpha = "80"
)

type Resource struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	EventColor string `json:"eventColor"`
}

type EventKind string

const (
	KindReservation EventKind = "reservation"
	KindBlock       EventKind = "block"
)

type EventProps struct {
	Kind          EventKind                `json:"kind"`
	ReservationID uint                     `json:"reservation_id,omitempty"`
	BlockID       uint                     `json:"block_id,omitempty"`
	Status        models.ReservationStatus `json:"status,omitempty"`
	Reason        string                   `json:"reason,omitempty"`
}

type Event struct {
	ID            string           `json:"id"`
	ResourceID    string           `json:"resourceId"`
	Title         string           `json:"title"`
	Start         models.Timestamp `json:"start"`
	End           models.Timestamp `json:"end"`
	Color         string           `json:"color,omitempty"`
	Display       string           `json:"display,omitempty"`
	ExtendedProps EventProps       `json:"extendedProps"`
}

// Options are the calendar settings that make it a viewer: nothing can be
// dragged or resized, only empty ranges can be selected.
type Options struct {
	EventStartEditable    bool `json:"eventStartEditable"`
	EventDurationEditable bool `json:"eventDurationEditable"`
	Selectable            bool `json:"selectable"`
}

type View struct {
	Resources []Resource `json:"resources"`
	Events    []Event    `json:"events"`
	Options   Options    `json:"options"`
}

// Project turns agenda data into calendar resources and events. Reservations
// without an assigned window are left out.
func Project(professionals []models.Professional, reservations []models.Reservation, blocks []models.SlotBlock) View {
	v := View{
		Resources: make([]Resource, 0, len(professionals)),
		Events:    make([]Event, 0, len(reservations)+len(blocks)),
		Options:   Options{Selectable: true},
	}

	colors := make(map[uint]string, len(professionals))
	for _, p := range professionals {
		color := colorOf(p)
		colors[p.ID] = color
		v.Resources = append(v.Resources, Resource{
			ID:         resourceID(p.ID),
			Title:      p.FullName(),
			EventColor: color,
		})
	}

	for _, r := range reservations {
		if r.SlotsSummary == nil {
			continue
		}
		v.Events = append(v.Events, reservationEvent(r, colors))
	}

	for _, b := range blocks {
		v.Events = append(v.Events, Event{
			ID:         "block-" + strconv.FormatUint(uint64(b.ID), 10),
			ResourceID: resourceID(b.ProfessionalID),
			Title:      "🚫 " + b.Reason,
			Start:      b.Start,
			End:        b.End,
			Display:    "background",
			ExtendedProps: EventProps{
				Kind:    KindBlock,
				BlockID: b.ID,
				Reason:  b.Reason,
			},
		})
	}
	return v
}

func reservationEvent(r models.Reservation, colors map[uint]string) Event {
	s := r.SlotsSummary
	color, ok := colors[s.ProfessionalID]
	if !ok {
		color = DefaultColor
	}

	title := reservationTitle(r)
	switch r.Status {
	case models.StatusCancelled:
		color = CancelledColor
		title = "(CANCELLED) " + title
	case models.StatusPending:
		color += pendingAlpha
		title = "⏳ " + title
	}

	return Event{
		ID:         "res-" + strconv.FormatUint(uint64(r.ID), 10),
		ResourceID: resourceID(s.ProfessionalID),
		Title:      title,
		Start:      s.Start,
		End:        s.End,
		Color:      color,
		ExtendedProps: EventProps{
			Kind:          KindReservation,
			ReservationID: r.ID,
			Status:        r.Status,
		},
	}
}

func reservationTitle(r models.Reservation) string {
	var name string
	if r.ClientInfo != nil {
		name = r.ClientInfo.FullName()
	}
	if name == "" {
		name = "Reserva #" + strconv.FormatUint(uint64(r.ID), 10)
	}

	names := make([]string, 0, len(r.Services))
	for _, s := range r.Services {
		if s.ServiceName != "" {
			names = append(names, s.ServiceName)
		}
	}
	if len(names) == 0 {
		return name
	}
	return name + " · " + strings.Join(names, ", ")
}

func colorOf(p models.Professional) string {
	if c := strings.TrimSpace(p.CalendarColor); c != "" {
		return c
	}
	return DefaultColor
}

func resourceID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
