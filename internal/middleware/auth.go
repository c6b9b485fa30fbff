package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/httperr"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/session"
)

const (
	ContextSession = "session"
	SessionCookie  = "revitek_session"
)

// SessionID reads the session id from the cookie or a bearer header.
func SessionID(c *gin.Context) string {
	if id, err := c.Cookie(SessionCookie); err == nil && id != "" {
		return id
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// AuthMiddleware hydrates the session for the request or rejects it.
func AuthMiddleware(sessions *session.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := SessionID(c)
		if id == "" {
			httperr.Unauthorized(c, "missing_session", "Inicia sesión para continuar.")
			c.Abort()
			return
		}

		sess, err := sessions.Hydrate(c.Request.Context(), id)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				logger.Error("session lookup failed", zap.Error(err))
			}
			httperr.Unauthorized(c, "invalid_session", "Tu sesión expiró, vuelve a iniciar sesión.")
			c.Abort()
			return
		}

		c.Set(ContextSession, sess)
		c.Next()
	}
}

// RequireAdmin lets through staff users and users linked to a professional.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if sess == nil || !sess.User.CanAdmin() {
			httperr.Forbidden(c, "forbidden", "No tienes acceso al panel de administración.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(ContextSession)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}
