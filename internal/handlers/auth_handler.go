package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/backend"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/httperr"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/middleware"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/models"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/session"
)

type AuthHandler struct {
	api        *backend.Client
	sessions   *session.Manager
	sessionTTL time.Duration
	secure     bool
	logger     *zap.Logger
}

func NewAuthHandler(api *backend.Client, sessions *session.Manager, sessionTTL time.Duration, secureCookie bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		api:        api,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		secure:     secureCookie,
		logger:     logger,
	}
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	tokens, err := h.api.Login(c.Request.Context(), req)
	if err != nil {
		h.logger.Info("login rejected", zap.String("email", req.Email), zap.Error(err))
		httperr.Upstream(c, err)
		return
	}

	sess, err := h.sessions.Create(c.Request.Context(), *tokens)
	if errors.Is(err, session.ErrExpiredToken) {
		h.logger.Warn("backend issued an expired access token", zap.String("email", req.Email))
		httperr.Unauthorized(c, "token_expired", "La sesión entregada ya expiró, intenta nuevamente.")
		return
	}
	if err != nil {
		h.logger.Error("session create failed", zap.Error(err))
		httperr.Internal(c, "session_failed", "No fue posible iniciar la sesión.")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, sess.ID, int(h.sessionTTL.Seconds()), "/", "", h.secure, true)

	c.JSON(http.StatusOK, gin.H{
		"session_id": sess.ID,
		"user":       sess.User,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if id := middleware.SessionID(c); id != "" {
		if err := h.sessions.Clear(c.Request.Context(), id); err != nil {
			h.logger.Warn("session clear failed", zap.Error(err))
		}
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.secure, true)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Me(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		httperr.Unauthorized(c, "missing_session", "Inicia sesión para continuar.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":      sess.User,
		"can_admin": sess.User.CanAdmin(),
	})
}
