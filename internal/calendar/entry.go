package calendar

import (
	"strings"
	"time"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/booking"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/httperr"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/models"
)

type EntryType string

const (
	EntryAppointment EntryType = "appointment"
	EntryBlocked     EntryType = "blocked"
)

type EntryState string

const (
	EntryIdle         EntryState = "idle"
	EntryTypeSelected EntryState = "type-selected"
	EntryValidating   EntryState = "validating"
	EntryValid        EntryState = "valid"
	EntryInvalid      EntryState = "invalid"
	EntryClosed       EntryState = "closed"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// EntryFields is everything the create/block modal can hold. Which fields
// matter depends on the entry type.
type EntryFields struct {
	ProfessionalID uint   `json:"profesional"`
	Fecha          string `json:"fecha"`
	Start          string `json:"start"`
	End            string `json:"end"`

	Reason string `json:"razon"`

	SlotID     uint         `json:"slot_id"`
	ServiceIDs []uint       `json:"services"`
	Client     booking.Form `json:"client"`
}

// Payload is what a confirmed entry hands back to the caller. Exactly one
// of Block or Reservation is set.
type Payload struct {
	Type        EntryType                        `json:"type"`
	BlockID     uint                             `json:"block_id,omitempty"`
	Block       *models.SlotBlock                `json:"block,omitempty"`
	Reservation *models.CreateReservationRequest `json:"reservation,omitempty"`
}

// Entry is the admin "create appointment or block" modal.
type Entry struct {
	state   EntryState
	typ     EntryType
	blockID uint
	fields  EntryFields
	errors  map[string]string
}

// NewEntry opens the modal on an empty calendar range.
func NewEntry(professionalID uint, start, end models.Timestamp) *Entry {
	e := &Entry{state: EntryIdle}
	e.fields.ProfessionalID = professionalID
	if !start.IsZero() {
		e.fields.Fecha = start.Format(dateLayout)
		e.fields.Start = start.Clock()
	}
	if !end.IsZero() {
		e.fields.End = end.Clock()
	}
	return e
}

// EntryFromBlock opens the modal to edit an existing block.
func EntryFromBlock(b models.SlotBlock) *Entry {
	fecha := b.Fecha
	if fecha == "" && !b.Start.IsZero() {
		fecha = b.Start.Format(dateLayout)
	}
	return &Entry{
		state:   EntryTypeSelected,
		typ:     EntryBlocked,
		blockID: b.ID,
		fields: EntryFields{
			ProfessionalID: b.ProfessionalID,
			Fecha:          fecha,
			Start:          b.Start.Clock(),
			End:            b.End.Clock(),
			Reason:         b.Reason,
		},
	}
}

func (e *Entry) State() EntryState         { return e.state }
func (e *Entry) Type() EntryType           { return e.typ }
func (e *Entry) Fields() EntryFields       { return e.fields }
func (e *Entry) Errors() map[string]string { return e.errors }

func (e *Entry) SelectType(t EntryType) error {
	if t != EntryAppointment && t != EntryBlocked {
		return httperr.ErrBusinessMsg("invalid_entry_type", "Tipo de entrada desconocido.")
	}
	if e.state == EntryClosed || e.state == EntryValidating {
		return entryTransitionErr(e.state)
	}
	if e.blockID != 0 && t != EntryBlocked {
		return httperr.ErrBusinessMsg("invalid_entry_type", "Un bloqueo existente no puede convertirse en cita.")
	}
	e.typ = t
	e.state = EntryTypeSelected
	e.errors = nil
	return nil
}

// Update replaces the fields. Any earlier verdict is dropped.
func (e *Entry) Update(f EntryFields) error {
	if e.state == EntryIdle || e.state == EntryClosed || e.state == EntryValidating {
		return entryTransitionErr(e.state)
	}
	e.fields = f
	e.state = EntryTypeSelected
	e.errors = nil
	return nil
}

// Validate moves to valid or invalid and returns the per-field errors.
func (e *Entry) Validate() map[string]string {
	if e.state == EntryIdle || e.state == EntryClosed {
		return map[string]string{"type": "Selecciona cita o bloqueo."}
	}
	e.state = EntryValidating

	var errs map[string]string
	switch e.typ {
	case EntryBlocked:
		errs = e.validateBlock()
	default:
		errs = e.validateAppointment()
	}

	if len(errs) > 0 {
		e.state = EntryInvalid
		e.errors = errs
		return errs
	}
	e.state = EntryValid
	e.errors = nil
	return nil
}

// Confirm closes a valid entry and returns its payload.
func (e *Entry) Confirm() (Payload, error) {
	if e.state != EntryValid {
		return Payload{}, entryTransitionErr(e.state)
	}

	p := Payload{Type: e.typ}
	switch e.typ {
	case EntryBlocked:
		start, _ := wallClock(e.fields.Fecha, e.fields.Start)
		end, _ := wallClock(e.fields.Fecha, e.fields.End)
		p.BlockID = e.blockID
		p.Block = &models.SlotBlock{
			ID:             e.blockID,
			ProfessionalID: e.fields.ProfessionalID,
			Fecha:          e.fields.Fecha,
			Start:          start,
			End:            end,
			Reason:         strings.TrimSpace(e.fields.Reason),
		}
	default:
		req := booking.BuildPayload(booking.Selection{
			ProfessionalID: e.fields.ProfessionalID,
			SlotID:         e.fields.SlotID,
		}, e.fields.ServiceIDs, e.fields.Client, "")
		p.Reservation = &req
	}

	e.state = EntryClosed
	return p, nil
}

func (e *Entry) validateBlock() map[string]string {
	errs := map[string]string{}
	f := e.fields
	if f.ProfessionalID == 0 {
		errs["profesional"] = "Selecciona un profesional."
	}
	start, startErr := wallClock(f.Fecha, f.Start)
	end, endErr := wallClock(f.Fecha, f.End)
	switch {
	case !validDate(f.Fecha):
		errs["fecha"] = "Fecha inválida."
	case startErr != nil:
		errs["start"] = "Hora de inicio inválida."
	case endErr != nil:
		errs["end"] = "Hora de término inválida."
	case !end.After(start.Time):
		errs["end"] = "Debe ser posterior al inicio."
	}
	if strings.TrimSpace(f.Reason) == "" {
		errs["razon"] = "Indica el motivo del bloqueo."
	}
	return errs
}

func (e *Entry) validateAppointment() map[string]string {
	errs := map[string]string{}
	f := e.fields
	if f.ProfessionalID == 0 {
		errs["profesional"] = "Selecciona un profesional."
	}
	if f.SlotID == 0 {
		errs["slot_id"] = "Selecciona un horario disponible."
	}
	if len(f.ServiceIDs) == 0 {
		errs["services"] = "Selecciona al menos un servicio."
	}
	for field, msg := range f.Client.Validate() {
		errs["client."+field] = msg
	}
	return errs
}

func wallClock(fecha, clock string) (models.Timestamp, error) {
	t, err := time.Parse(dateLayout+" "+clockLayout, fecha+" "+strings.TrimSpace(clock))
	if err != nil {
		return models.Timestamp{}, err
	}
	return models.Floating(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute()), nil
}

func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

func entryTransitionErr(from EntryState) error {
	return httperr.ErrBusinessMsg("invalid_transition", "Acción no disponible en el estado "+string(from)+".")
}
