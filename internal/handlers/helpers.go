package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/audit"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/backend"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/httperr"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/middleware"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/validators"
)

// apiFor binds the backend client to the caller's token, if any.
func apiFor(c *gin.Context, api *backend.Client) *backend.Client {
	if sess := middleware.CurrentSession(c); sess != nil {
		return api.WithToken(sess.Access)
	}
	return api
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.Validation(c, validators.FieldErrors(err))
		return false
	}
	return true
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

// queryUint returns 0 for a missing or malformed value.
func queryUint(c *gin.Context, key string) uint {
	v, err := strconv.ParseUint(c.Query(key), 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}

func auditEvent(c *gin.Context, action, entity string, entityID uint, meta any) audit.Event {
	ev := audit.Event{
		Action:   action,
		Entity:   entity,
		Metadata: meta,
	}
	if entityID != 0 {
		ev.EntityID = &entityID
	}
	if sess := middleware.CurrentSession(c); sess != nil {
		uid := sess.User.UserID
		ev.UserID = &uid
		ev.ActorEmail = sess.User.Email
	}
	return ev
}
