package booking

import (
	"sync"
	"time"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/httperr"
)

// Store keeps live flows in memory. Idle flows older than ttl are dropped
// the next time the store is written to.
type Store struct {
	mu    sync.RWMutex
	flows map[string]*Flow
	ttl   time.Duration
	now   func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		flows: make(map[string]*Flow),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *Store) Put(f *Flow) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	s.flows[f.ID()] = f
}

func (s *Store) Get(id string) (*Flow, error) {
	s.mu.RLock()
	f, ok := s.flows[id]
	s.mu.RUnlock()

	if !ok || s.expired(f) {
		return nil, httperr.ErrBusinessMsg("flow_not_found", "La sesión de reserva expiró, vuelve a empezar.")
	}
	return f, nil
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flows, id)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.flows)
}

func (s *Store) expired(f *Flow) bool {
	return s.ttl > 0 && s.now().Sub(f.lastTouched()) > s.ttl
}

func (s *Store) sweepLocked() {
	for id, f := range s.flows {
		if s.expired(f) {
			delete(s.flows, id)
		}
	}
}
