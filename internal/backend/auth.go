package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/models"
)

func (c *Client) Login(ctx context.Context, in models.LoginRequest) (*models.TokenPair, error) {
	var out models.TokenPair
	if err := c.doJSON(ctx, "login", http.MethodPost, "/api/auth/login/", nil, in, &out); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if out.Access == "" {
		return nil, fmt.Errorf("login: backend returned no access token")
	}
	return &out, nil
}
