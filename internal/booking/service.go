package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/httperr"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/metrics"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/models"
)

const genericSubmitError = "No fue posible crear la reserva. Intenta nuevamente."

// Backend is the part of the agenda backend a booking needs.
type Backend interface {
	AvailabilitySource
	Lookuper
	CreateReservation(ctx context.Context, in models.CreateReservationRequest) (*models.Reservation, error)
}

type Service struct {
	backend Backend
	avail   *Availability
	store   *Store
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewService(backend Backend, store *Store, logger *zap.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		backend: backend,
		avail:   NewAvailability(backend, logger),
		store:   store,
		logger:  logger,
		metrics: m,
	}
}

// Availability exposes the plain query for the stateless public endpoint.
func (s *Service) Availability(ctx context.Context, serviceIDs []uint, fecha string) []models.AggregatedSlot {
	return s.avail.Query(ctx, serviceIDs, fecha)
}

// =====================
// Flow operations
// =====================

func (s *Service) Start(ctx context.Context, serviceIDs []uint, fecha string) (View, error) {
	if len(serviceIDs) == 0 {
		return View{}, httperr.ErrBusinessMsg("services_required", "Selecciona al menos un servicio.")
	}
	f := NewFlow(uuid.NewString(), serviceIDs, fecha, s.avail.Query(ctx, serviceIDs, fecha))
	s.store.Put(f)
	return f.View(), nil
}

func (s *Service) Get(id string) (View, error) {
	f, err := s.store.Get(id)
	if err != nil {
		return View{}, err
	}
	return f.View(), nil
}

func (s *Service) ChangeDate(ctx context.Context, id, fecha string) (View, error) {
	f, err := s.store.Get(id)
	if err != nil {
		return View{}, err
	}
	if st := f.State(); st != StateBrowsing && st != StateSlotSelected {
		return View{}, transitionErr(st)
	}
	slots := s.avail.Query(ctx, f.ServiceIDs(), fecha)
	if err := f.SetDate(fecha, slots); err != nil {
		return View{}, err
	}
	return f.View(), nil
}

func (s *Service) Select(id string, index int) (View, error) {
	return s.apply(id, func(f *Flow) error { return f.Select(index) })
}

func (s *Service) Back(id string) (View, error) {
	return s.apply(id, (*Flow).Back)
}

func (s *Service) UpdateForm(id string, p FormPatch) (View, error) {
	return s.apply(id, func(f *Flow) error { return f.UpdateForm(p) })
}

// Lookup runs the blur-triggered client lookup. It never fails because of
// the backend: a failed or empty lookup leaves the form as it was.
func (s *Service) Lookup(ctx context.Context, id, email, phone string) (View, error) {
	f, err := s.store.Get(id)
	if err != nil {
		return View{}, err
	}
	qEmail, qPhone, ok := f.lookupTarget(email, phone)
	if !ok {
		return f.View(), nil
	}

	res, err := s.backend.LookupClient(ctx, qEmail, qPhone)
	if err != nil {
		s.logger.Debug("client lookup failed", zap.String("flow", id), zap.Error(err))
		return f.View(), nil
	}
	f.applyLookup(res)
	return f.View(), nil
}

// LookupFields is the stateless lookup: it returns a form holding only the
// fields the backend knew, and their names.
func (s *Service) LookupFields(ctx context.Context, email, phone string) (Form, []string) {
	var form Form
	qEmail, qPhone, ok := lookupKey(email, phone)
	if !ok {
		return form, nil
	}
	res, err := s.backend.LookupClient(ctx, qEmail, qPhone)
	if err != nil {
		s.logger.Debug("client lookup failed", zap.Error(err))
		return form, nil
	}
	filled := Prefill(&form, res)
	return form, filled
}

// Submit validates and posts the reservation. Validation failures return a
// *ValidationError and nothing is sent. A backend rejection is stored on the
// flow as LastError, the flow goes back to slot-selected, and the backend
// error is returned next to the view.
func (s *Service) Submit(ctx context.Context, id, captchaToken string) (View, error) {
	f, err := s.store.Get(id)
	if err != nil {
		return View{}, err
	}
	_, err = s.submit(ctx, f, captchaToken)
	return f.View(), err
}

func (s *Service) submit(ctx context.Context, f *Flow, captchaToken string) (*models.Reservation, error) {
	if captchaToken == "" {
		s.logger.Warn("submitting reservation without captcha token", zap.String("flow", f.ID()))
	}

	payload, err := f.BeginSubmit(captchaToken)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			s.metrics.ObserveBooking("invalid")
		}
		return nil, err
	}

	res, err := s.backend.CreateReservation(ctx, payload)
	if err == nil && (res == nil || res.ID == 0) {
		err = errors.New("backend returned no reservation")
	}
	if err != nil {
		s.logger.Warn("reservation rejected",
			zap.String("flow", f.ID()),
			zap.Uint("slot_id", payload.SlotID),
			zap.Uint("professional_id", payload.ProfessionalID),
			zap.Error(err),
		)
		f.FinishSubmit(nil, submitMessage(err))
		s.metrics.ObserveBooking("failed")
		return nil, err
	}

	f.FinishSubmit(res, "")
	s.metrics.ObserveBooking("submitted")
	s.logger.Info("reservation created",
		zap.String("flow", f.ID()),
		zap.Uint("reservation_id", res.ID),
		zap.Uint("slot_id", payload.SlotID),
	)
	return res, nil
}

// OneShot is a complete booking sent in a single request: the aggregate the
// client picked plus the filled form.
type OneShot struct {
	Services       []uint                `json:"services" binding:"required,min=1"`
	Fecha          string                `json:"fecha" binding:"required"`
	Slot           models.AggregatedSlot `json:"slot"`
	Form           Form                  `json:"form"`
	RecaptchaToken string                `json:"recaptcha_token"`
}

// BookOnce runs a whole flow in one call and forgets it afterwards.
func (s *Service) BookOnce(ctx context.Context, in OneShot) (*models.Reservation, error) {
	f := NewFlow(uuid.NewString(), in.Services, in.Fecha, []models.AggregatedSlot{in.Slot})
	if err := f.Select(0); err != nil {
		return nil, err
	}
	if err := f.UpdateForm(in.Form.PatchOf()); err != nil {
		return nil, err
	}
	return s.submit(ctx, f, in.RecaptchaToken)
}

func (s *Service) apply(id string, fn func(*Flow) error) (View, error) {
	f, err := s.store.Get(id)
	if err != nil {
		return View{}, err
	}
	if err := fn(f); err != nil {
		return View{}, err
	}
	return f.View(), nil
}

func submitMessage(err error) string {
	var uf httperr.UpstreamFailure
	if errors.As(err, &uf) {
		if msg := uf.Message(); msg != "" {
			return msg
		}
	}
	return genericSubmitError
}
