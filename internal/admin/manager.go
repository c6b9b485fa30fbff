package admin

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/audit"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/domain/reservation"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/metrics"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/models"
)

const cancelledByAdmin = "admin"

// Backend is the reservation part of the agenda backend, already bound to
// the admin's token.
type Backend interface {
	ListReservations(ctx context.Context, f models.ReservationFilter) ([]models.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id uint, status models.ReservationStatus) (*models.Reservation, error)
	CancelReservation(ctx context.Context, id uint) (*models.Reservation, error)
	CompleteReservation(ctx context.Context, id uint, note string) (*models.Reservation, error)
}

// Actor identifies who is driving a Manager, for the audit trail.
type Actor struct {
	UserID uint
	Email  string
}

// Manager holds one admin's reservation list. Mutations are applied to the
// list before the backend answers; when the backend rejects one, the whole
// list is reloaded with the last filter.
type Manager struct {
	backend Backend
	actor   Actor
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
	logger  *zap.Logger

	mu     sync.RWMutex
	items  []models.Reservation
	filter models.ReservationFilter
}

type Deps struct {
	Audit   *audit.Dispatcher
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

func NewManager(backend Backend, actor Actor, deps Deps) *Manager {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Manager{
		backend: backend,
		actor:   actor,
		audit:   deps.Audit,
		metrics: deps.Metrics,
		logger:  deps.Logger,
		items:   []models.Reservation{},
	}
}

// NormalizeFilter forces include_cancelled when filtering by CANCELLED,
// otherwise the backend would hide every match.
func NormalizeFilter(f models.ReservationFilter) models.ReservationFilter {
	if f.Status == models.StatusCancelled {
		f.IncludeCancelled = true
	}
	return f
}

// Load replaces the list. A failed read leaves an empty list and is logged,
// not returned.
func (m *Manager) Load(ctx context.Context, f models.ReservationFilter) []models.Reservation {
	f = NormalizeFilter(f)

	items, err := m.backend.ListReservations(ctx, f)
	if err != nil {
		m.logger.Warn("reservation list failed, showing empty list",
			zap.String("fecha", f.Fecha),
			zap.String("status", string(f.Status)),
			zap.Error(err),
		)
		items = []models.Reservation{}
	}
	if items == nil {
		items = []models.Reservation{}
	}

	m.mu.Lock()
	m.items = items
	m.filter = f
	m.mu.Unlock()

	return m.Items()
}

func (m *Manager) Items() []models.Reservation {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Reservation, len(m.items))
	copy(out, m.items)
	return out
}

func (m *Manager) Filter() models.ReservationFilter {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.filter
}

func (m *Manager) UpdateStatus(ctx context.Context, id uint, next models.ReservationStatus) (*models.Reservation, error) {
	from, err := m.patch(id, func(r *models.Reservation) error { return reservation.SetStatus(r, next) })
	if err != nil {
		return nil, err
	}
	res, err := m.backend.UpdateReservationStatus(ctx, id, next)
	return m.settle(ctx, "status", audit.ActionReservationStatus, id, from, next, res, err)
}

func (m *Manager) Cancel(ctx context.Context, id uint) (*models.Reservation, error) {
	from, err := m.patch(id, func(r *models.Reservation) error { return reservation.Cancel(r, cancelledByAdmin) })
	if err != nil {
		return nil, err
	}
	res, err := m.backend.CancelReservation(ctx, id)
	return m.settle(ctx, "cancel", audit.ActionReservationCancel, id, from, models.StatusCancelled, res, err)
}

func (m *Manager) Complete(ctx context.Context, id uint, note string) (*models.Reservation, error) {
	note = strings.TrimSpace(note)
	from, err := m.patch(id, func(r *models.Reservation) error { return reservation.Complete(r, note) })
	if err != nil {
		return nil, err
	}
	res, err := m.backend.CompleteReservation(ctx, id, note)
	return m.settle(ctx, "complete", audit.ActionReservationComplete, id, from, models.StatusCompleted, res, err)
}

// patch applies fn to the listed reservation. Reservations outside the
// current list go straight to the backend, which owns the rules.
func (m *Manager) patch(id uint, fn func(*models.Reservation) error) (models.ReservationStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexLocked(id)
	if i < 0 {
		return "", nil
	}
	from := m.items[i].Status
	next := m.items[i]
	if err := fn(&next); err != nil {
		return from, err
	}
	m.items[i] = next
	return from, nil
}

func (m *Manager) settle(
	ctx context.Context,
	action, auditAction string,
	id uint,
	from, to models.ReservationStatus,
	res *models.Reservation,
	err error,
) (*models.Reservation, error) {
	if err != nil {
		m.metrics.ObserveAdminMutation(action, false)
		m.logger.Warn("reservation mutation failed, reloading list",
			zap.String("action", action),
			zap.Uint("reservation_id", id),
			zap.Error(err),
		)
		m.Load(ctx, m.Filter())
		return nil, fmt.Errorf("%s reservation %d: %w", action, id, err)
	}

	m.metrics.ObserveAdminMutation(action, true)
	if res != nil {
		m.mu.Lock()
		if i := m.indexLocked(id); i >= 0 {
			m.items[i] = *res
		}
		m.mu.Unlock()
	}

	userID := m.actor.UserID
	entityID := id
	m.audit.Dispatch(audit.Event{
		UserID:     &userID,
		ActorEmail: m.actor.Email,
		Action:     auditAction,
		Entity:     "reservation",
		EntityID:   &entityID,
		Metadata:   map[string]string{"from": string(from), "to": string(to)},
	})
	return res, nil
}

func (m *Manager) indexLocked(id uint) int {
	for i := range m.items {
		if m.items[i].ID == id {
			return i
		}
	}
	return -1
}
