package session

import (
	"context"
	"errors"
	"time"
)

// Session is one logged-in browser. ID is what the browser holds; the
// tokens never leave the gateway.
type Session struct {
	ID        string    `json:"id"`
	Access    string    `json:"access"`
	Refresh   string    `json:"refresh"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

var ErrNotFound = errors.New("session not found")

type Store interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
