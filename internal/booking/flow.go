package booking

import (
	"sync"
	"time"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/domain/availability"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/httperr"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/models"
)

type State string

const (
	StateBrowsing     State = "browsing"
	StateSlotSelected State = "slot-selected"
	StateSubmitting   State = "submitting"
	StateSubmitted    State = "submitted"
)

// ValidationError carries per-field messages; nothing was sent upstream.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "booking form is invalid"
}

// Flow is one client's way through the booking screens:
// browsing → slot-selected → submitting → submitted, with a failed submit
// landing back in slot-selected.
type Flow struct {
	mu sync.Mutex

	id         string
	serviceIDs []uint
	fecha      string
	state      State
	slots      []models.AggregatedSlot
	selection  *Selection
	form       Form
	lastError  string
	prefilled  []string
	reservedID uint
	touchedAt  time.Time
}

// View is a point-in-time copy of a Flow for rendering.
type View struct {
	ID            string                  `json:"id"`
	State         State                   `json:"state"`
	Services      []uint                  `json:"services"`
	Fecha         string                  `json:"fecha"`
	Slots         []models.AggregatedSlot `json:"slots"`
	Buckets       []availability.Bucket   `json:"buckets"`
	Selection     *Selection              `json:"selection"`
	Form          *Form                   `json:"form,omitempty"`
	Prefilled     []string                `json:"prefilled,omitempty"`
	LastError     string                  `json:"last_error,omitempty"`
	ReservationID uint                    `json:"reservation_id,omitempty"`
}

func NewFlow(id string, serviceIDs []uint, fecha string, slots []models.AggregatedSlot) *Flow {
	ids := make([]uint, len(serviceIDs))
	copy(ids, serviceIDs)
	return &Flow{
		id:         id,
		serviceIDs: ids,
		fecha:      fecha,
		state:      StateBrowsing,
		slots:      slots,
		touchedAt:  time.Now(),
	}
}

func (f *Flow) ID() string { return f.id }

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) Fecha() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fecha
}

func (f *Flow) ServiceIDs() []uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]uint, len(f.serviceIDs))
	copy(out, f.serviceIDs)
	return out
}

func (f *Flow) lastTouched() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.touchedAt
}

// SetDate swaps the active date and its slots. Any pick and any typed data
// are discarded.
func (f *Flow) SetDate(fecha string, slots []models.AggregatedSlot) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateBrowsing && f.state != StateSlotSelected {
		return transitionErr(f.state)
	}
	f.fecha = fecha
	f.slots = slots
	f.reset()
	return nil
}

// Select picks the aggregate at index. The first professional and the first
// slot id of the aggregate are taken.
func (f *Flow) Select(index int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateBrowsing && f.state != StateSlotSelected {
		return transitionErr(f.state)
	}
	if index < 0 || index >= len(f.slots) {
		return httperr.ErrBusinessMsg("slot_not_found", "El horario elegido ya no está disponible.")
	}
	slot := f.slots[index]
	if len(slot.Professionals) == 0 || len(slot.SlotIDs) == 0 {
		return httperr.ErrBusinessMsg("slot_not_bookable", "El horario elegido no tiene profesional asignable.")
	}

	f.selection = &Selection{
		Slot:           slot,
		ProfessionalID: slot.Professionals[0],
		SlotID:         slot.SlotIDs[0],
	}
	f.state = StateSlotSelected
	f.lastError = ""
	f.touchedAt = time.Now()
	return nil
}

// Back returns to the slot list and drops the form.
func (f *Flow) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateSlotSelected {
		return transitionErr(f.state)
	}
	f.reset()
	return nil
}

func (f *Flow) UpdateForm(p FormPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateSlotSelected {
		return transitionErr(f.state)
	}
	f.form.Apply(p)
	f.touchedAt = time.Now()
	return nil
}

// lookupTarget returns what to look up for the current form, if anything.
func (f *Flow) lookupTarget(email, phone string) (string, string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateSlotSelected {
		return "", "", false
	}
	return lookupKey(email, phone)
}

func (f *Flow) applyLookup(res *models.ClientLookup) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateSlotSelected {
		return
	}
	f.prefilled = Prefill(&f.form, res)
}

// BeginSubmit validates the form and moves to submitting. The returned
// payload is what must be posted.
func (f *Flow) BeginSubmit(captchaToken string) (models.CreateReservationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case StateSubmitting:
		return models.CreateReservationRequest{}, httperr.ErrBusinessMsg("already_submitting", "La reserva se está enviando.")
	case StateSubmitted:
		return models.CreateReservationRequest{}, httperr.ErrBusinessMsg("already_submitted", "La reserva ya fue creada.")
	case StateSlotSelected:
	default:
		return models.CreateReservationRequest{}, transitionErr(f.state)
	}

	if fields := f.form.Validate(); len(fields) > 0 {
		return models.CreateReservationRequest{}, &ValidationError{Fields: fields}
	}

	f.state = StateSubmitting
	f.lastError = ""
	f.touchedAt = time.Now()
	return BuildPayload(*f.selection, f.serviceIDs, f.form, captchaToken), nil
}

// FinishSubmit records the backend answer. errMsg is shown as-is.
func (f *Flow) FinishSubmit(res *models.Reservation, errMsg string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateSubmitting {
		return
	}
	f.touchedAt = time.Now()
	if res == nil {
		f.state = StateSlotSelected
		f.lastError = errMsg
		return
	}
	f.state = StateSubmitted
	f.reservedID = res.ID
}

func (f *Flow) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	v := View{
		ID:            f.id,
		State:         f.state,
		Services:      append([]uint(nil), f.serviceIDs...),
		Fecha:         f.fecha,
		Slots:         append([]models.AggregatedSlot{}, f.slots...),
		Buckets:       availability.Bucketize(f.slots),
		LastError:     f.lastError,
		ReservationID: f.reservedID,
		Prefilled:     append([]string(nil), f.prefilled...),
	}
	if f.selection != nil {
		sel := *f.selection
		v.Selection = &sel
	}
	if f.state != StateBrowsing {
		form := f.form
		v.Form = &form
	}
	return v
}

func (f *Flow) reset() {
	f.state = StateBrowsing
	f.selection = nil
	f.form = Form{}
	f.prefilled = nil
	f.lastError = ""
	f.touchedAt = time.Now()
}

func transitionErr(from State) error {
	return httperr.ErrBusinessMsg("invalid_transition", "Acción no disponible en el estado "+string(from)+".")
}
