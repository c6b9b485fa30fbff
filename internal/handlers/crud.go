package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/audit"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/backend"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/httperr"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/httpresp"
)

// The back-office resources are thin pass-throughs: bind and validate
// locally, forward, write the backend answer, record the change.

type crud struct {
	api    *backend.Client
	audit  *audit.Dispatcher
	action string
}

func listOf[T any](h crud, fn func(*backend.Client, context.Context) ([]T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := fn(apiFor(c, h.api), c.Request.Context())
		if err != nil {
			httperr.Upstream(c, err)
			return
		}
		httpresp.List(c, items)
	}
}

func getOne[T any](h crud, fn func(*backend.Client, context.Context, uint) (*T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		item, err := fn(apiFor(c, h.api), c.Request.Context(), id)
		if err != nil {
			httperr.Upstream(c, err)
			return
		}
		httpresp.OK(c, item)
	}
}

func createOne[T any](h crud, entity string, fn func(*backend.Client, context.Context, T) (*T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in T
		if !bindJSON(c, &in) {
			return
		}
		created, err := fn(apiFor(c, h.api), c.Request.Context(), in)
		if err != nil {
			httperr.Upstream(c, err)
			return
		}
		h.audit.Dispatch(auditEvent(c, h.action, entity, 0, gin.H{"op": "create", "data": created}))
		httpresp.Created(c, created)
	}
}

func updateOne[T any](h crud, entity string, fn func(*backend.Client, context.Context, uint, T) (*T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		var in T
		if !bindJSON(c, &in) {
			return
		}
		updated, err := fn(apiFor(c, h.api), c.Request.Context(), id, in)
		if err != nil {
			httperr.Upstream(c, err)
			return
		}
		h.audit.Dispatch(auditEvent(c, h.action, entity, id, gin.H{"op": "update"}))
		httpresp.OK(c, updated)
	}
}

func deleteOne(h crud, entity string, fn func(*backend.Client, context.Context, uint) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		if err := fn(apiFor(c, h.api), c.Request.Context(), id); err != nil {
			httperr.Upstream(c, err)
			return
		}
		h.audit.Dispatch(auditEvent(c, h.action, entity, id, gin.H{"op": "delete"}))
		httpresp.NoContent(c)
	}
}
