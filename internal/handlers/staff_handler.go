package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/audit"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/backend"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/httperr"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/httpresp"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/models"
)

// StaffHandler serves professionals, their work schedules and breaks.
type StaffHandler struct {
	crud
}

func NewStaffHandler(api *backend.Client, dispatcher *audit.Dispatcher) *StaffHandler {
	return &StaffHandler{crud{api: api, audit: dispatcher, action: audit.ActionStaffChanged}}
}

// --------- Professionals ---------

func (h *StaffHandler) ListProfessionals(c *gin.Context) {
	listOf(h.crud, (*backend.Client).ListProfessionals)(c)
}

func (h *StaffHandler) GetProfessional(c *gin.Context) {
	getOne(h.crud, (*backend.Client).GetProfessional)(c)
}

func (h *StaffHandler) CreateProfessional(c *gin.Context) {
	createOne(h.crud, "professional", (*backend.Client).CreateProfessional)(c)
}

func (h *StaffHandler) UpdateProfessional(c *gin.Context) {
	updateOne(h.crud, "professional", (*backend.Client).UpdateProfessional)(c)
}

func (h *StaffHandler) DeleteProfessional(c *gin.Context) {
	deleteOne(h.crud, "professional", (*backend.Client).DeleteProfessional)(c)
}

// --------- Schedules ---------

func (h *StaffHandler) ListSchedules(c *gin.Context) {
	professionalID := queryUint(c, "profesional_id")
	listOf(h.crud, func(api *backend.Client, ctx context.Context) ([]models.WorkSchedule, error) {
		return api.ListSchedules(ctx, professionalID)
	})(c)
}

func (h *StaffHandler) CreateSchedule(c *gin.Context) {
	createOne(h.crud, "schedule", (*backend.Client).CreateSchedule)(c)
}

func (h *StaffHandler) UpdateSchedule(c *gin.Context) {
	updateOne(h.crud, "schedule", (*backend.Client).UpdateSchedule)(c)
}

func (h *StaffHandler) DeleteSchedule(c *gin.Context) {
	deleteOne(h.crud, "schedule", (*backend.Client).DeleteSchedule)(c)
}

// --------- Breaks ---------

func (h *StaffHandler) ListBreaks(c *gin.Context) {
	scheduleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	breaks, err := apiFor(c, h.api).ListBreaks(c.Request.Context(), scheduleID)
	if err != nil {
		httperr.Upstream(c, err)
		return
	}
	httpresp.List(c, breaks)
}

func (h *StaffHandler) CreateBreak(c *gin.Context) {
	scheduleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in models.Break
	if !bindJSON(c, &in) {
		return
	}
	created, err := apiFor(c, h.api).CreateBreak(c.Request.Context(), scheduleID, in)
	if err != nil {
		httperr.Upstream(c, err)
		return
	}
	h.audit.Dispatch(auditEvent(c, h.action, "break", scheduleID, gin.H{"op": "create"}))
	httpresp.Created(c, created)
}

func (h *StaffHandler) DeleteBreak(c *gin.Context) {
	deleteOne(h.crud, "break", (*backend.Client).DeleteBreak)(c)
}
