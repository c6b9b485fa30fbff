package admin

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/dto"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/httperr"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/models"
)

type fakeBackend struct {
	mu      sync.Mutex
	rows    []models.Reservation
	filters []models.ReservationFilter
	lists   int

	mutateErr error
	started   chan struct{}
	release   chan struct{}
	notes     []string
}

func (f *fakeBackend) ListReservations(_ context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	f.filters = append(f.filters, filter)

	out := []models.Reservation{}
	for _, r := range f.rows {
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if r.Status == models.StatusCancelled && !filter.IncludeCancelled {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeBackend) wait() {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
}

func (f *fakeBackend) UpdateReservationStatus(_ context.Context, id uint, status models.ReservationStatus) (*models.Reservation, error) {
	f.wait()
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	return &models.Reservation{ID: id, Status: status}, nil
}

func (f *fakeBackend) CancelReservation(_ context.Context, id uint) (*models.Reservation, error) {
	f.wait()
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	by := "admin"
	return &models.Reservation{ID: id, Status: models.StatusCancelled, CancelledBy: &by}, nil
}

func (f *fakeBackend) CompleteReservation(_ context.Context, id uint, note string) (*models.Reservation, error) {
	f.wait()
	f.mu.Lock()
	f.notes = append(f.notes, note)
	f.mu.Unlock()
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	return nil, nil
}

func seed() []models.Reservation {
	return []models.Reservation{
		{ID: 1, Status: models.StatusPending},
		{ID: 2, Status: models.StatusConfirmed},
		{ID: 3, Status: models.StatusCancelled},
		{ID: 4, Status: models.StatusCancelled},
	}
}

func find(items []models.Reservation, id uint) models.Reservation {
	for _, r := range items {
		if r.ID == id {
			return r
		}
	}
	return models.Reservation{}
}

func TestManager_UpdateStatusIsVisibleBeforeBackendAnswers(t *testing.T) {
	fb := &fakeBackend{rows: seed(), started: make(chan struct{}), release: make(chan struct{})}
	m := NewManager(fb, Actor{UserID: 1}, Deps{})
	m.Load(context.Background(), models.ReservationFilter{Fecha: "2025-04-10"})

	done := make(chan error, 1)
	go func() {
		_, err := m.UpdateStatus(context.Background(), 1, models.StatusConfirmed)
		done <- err
	}()

	select {
	case <-fb.started:
	case <-time.After(time.Second):
		t.Fatal("backend was never called")
	}
	assert.Equal(t, models.StatusConfirmed, find(m.Items(), 1).Status)

	close(fb.release)
	require.NoError(t, <-done)
	assert.Equal(t, models.StatusConfirmed, find(m.Items(), 1).Status)
}

func TestManager_FailedMutationReloadsList(t *testing.T) {
	upstream := errors.New("backend down")
	fb := &fakeBackend{rows: seed(), mutateErr: upstream}
	m := NewManager(fb, Actor{UserID: 1}, Deps{})
	m.Load(context.Background(), models.ReservationFilter{Fecha: "2025-04-10"})

	_, err := m.Cancel(context.Background(), 2)
	assert.ErrorIs(t, err, upstream)

	assert.Equal(t, models.StatusConfirmed, find(m.Items(), 2).Status)
	assert.Equal(t, 2, fb.lists)
	assert.Equal(t, "2025-04-10", fb.filters[1].Fecha)
}

func TestManager_GuardRejectsHiddenAction(t *testing.T) {
	fb := &fakeBackend{rows: seed()}
	m := NewManager(fb, Actor{}, Deps{})
	m.Load(context.Background(), models.ReservationFilter{IncludeCancelled: true})

	_, err := m.Complete(context.Background(), 1, "")
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = m.Cancel(context.Background(), 3)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	assert.Empty(t, fb.notes)
}

func TestManager_CompleteAppendsNote(t *testing.T) {
	fb := &fakeBackend{rows: []models.Reservation{{ID: 2, Status: models.StatusConfirmed, Note: "cliente pide boleta"}}}
	m := NewManager(fb, Actor{}, Deps{})
	m.Load(context.Background(), models.ReservationFilter{})

	_, err := m.Complete(context.Background(), 2, " lavado listo ")
	require.NoError(t, err)

	r := find(m.Items(), 2)
	assert.Equal(t, models.StatusCompleted, r.Status)
	assert.Equal(t, "cliente pide boleta\nlavado listo", r.Note)
	assert.Equal(t, []string{"lavado listo"}, fb.notes)
}

func TestManager_CancelledFilterShowsNoCancelAction(t *testing.T) {
	fb := &fakeBackend{rows: seed()}
	m := NewManager(fb, Actor{}, Deps{})

	items := m.Load(context.Background(), models.ReservationFilter{Status: models.StatusCancelled})
	require.Len(t, items, 2)
	assert.True(t, fb.filters[0].IncludeCancelled)

	for _, row := range dto.ReservationRows(items) {
		assert.Equal(t, models.StatusCancelled, row.Status)
		assert.False(t, row.Actions.Cancel)
		assert.False(t, row.Actions.Confirm)
		assert.False(t, row.Actions.Complete)
	}
}

func TestRegistry_OneManagerPerSession(t *testing.T) {
	r := NewRegistry(Deps{}, time.Hour)
	fb := &fakeBackend{}

	a := r.For("s1", fb, Actor{})
	assert.Same(t, a, r.For("s1", fb, Actor{}))
	assert.NotSame(t, a, r.For("s2", fb, Actor{}))

	r.Drop("s1")
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_SweepsIdleManagers(t *testing.T) {
	r := NewRegistry(Deps{}, 30*time.Minute)
	now := time.Now()
	r.now = func() time.Time { return now }
	fb := &fakeBackend{}

	for i := 0; i < 100; i++ {
		r.For(fmt.Sprintf("abandoned-%d", i), fb, Actor{})
	}
	kept := r.For("active", fb, Actor{})
	require.Equal(t, 101, r.Len())

	now = now.Add(20 * time.Minute)
	assert.Same(t, kept, r.For("active", fb, Actor{}))

	now = now.Add(20 * time.Minute)
	assert.Same(t, kept, r.For("active", fb, Actor{}))
	assert.Equal(t, 1, r.Len())
}
