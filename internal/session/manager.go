package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/models"
)

// Manager owns the session lifecycle: created on login, hydrated on every
// request, cleared on logout.
type Manager struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time

	mu      sync.RWMutex
	onClear []func(id string)
}

func NewManager(store Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, logger: logger, now: time.Now}
}

// OnClear registers a hook run after a session is cleared.
func (m *Manager) OnClear(fn func(id string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onClear = append(m.onClear, fn)
}

func (m *Manager) Create(ctx context.Context, tokens models.TokenPair) (*Session, error) {
	user, err := DecodeUser(tokens.Access)
	if err != nil {
		return nil, err
	}
	if Expired(tokens.Access, m.now()) {
		return nil, ErrExpiredToken
	}

	sess := &Session{
		ID:        uuid.NewString(),
		Access:    tokens.Access,
		Refresh:   tokens.Refresh,
		User:      user,
		CreatedAt: m.now().UTC(),
	}
	if err := m.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	m.logger.Info("session created", zap.Uint("user_id", user.UserID), zap.Bool("is_staff", user.IsStaff))
	return sess, nil
}

// Hydrate loads a session by id. A token that no longer decodes or has
// passed its exp ends the session.
func (m *Manager) Hydrate(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	sess, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := DecodeUser(sess.Access); err != nil || Expired(sess.Access, m.now()) {
		m.logger.Debug("session token expired", zap.Uint("user_id", sess.User.UserID))
		_ = m.Clear(ctx, id)
		return nil, ErrNotFound
	}
	return sess, nil
}

func (m *Manager) Clear(ctx context.Context, id string) error {
	if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("clear session: %w", err)
	}

	m.mu.RLock()
	hooks := append([]func(string){}, m.onClear...)
	m.mu.RUnlock()
	for _, fn := range hooks {
		fn(id)
	}
	return nil
}
