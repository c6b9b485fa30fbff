package admin

import (
	"sync"
	"time"
)

// Registry keeps one Manager per admin session, so each admin's list has a
// single writer. Managers not used for longer than idle are swept, which
// covers sessions that expire in the store without a logout.
type Registry struct {
	mu       sync.Mutex
	managers map[string]*registryEntry
	deps     Deps
	idle     time.Duration
	now      func() time.Time
}

type registryEntry struct {
	manager  *Manager
	lastUsed time.Time
}

func NewRegistry(deps Deps, idle time.Duration) *Registry {
	return &Registry{
		managers: make(map[string]*registryEntry),
		deps:     deps,
		idle:     idle,
		now:      time.Now,
	}
}

// For returns the session's Manager, creating it on first use.
func (r *Registry) For(sessionID string, backend Backend, actor Actor) *Manager {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweepLocked(now)

	if e, ok := r.managers[sessionID]; ok {
		e.lastUsed = now
		return e.manager
	}
	m := NewManager(backend, actor, r.deps)
	r.managers[sessionID] = &registryEntry{manager: m, lastUsed: now}
	return m
}

// Drop forgets a session's Manager. Wired to logout.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.managers, sessionID)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.managers)
}

func (r *Registry) sweepLocked(now time.Time) {
	if r.idle <= 0 {
		return
	}
	for id, e := range r.managers {
		if now.Sub(e.lastUsed) > r.idle {
			delete(r.managers, id)
		}
	}
}
