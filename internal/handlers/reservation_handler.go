package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/admin"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/backend"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/dto"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/httperr"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/httpresp"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/middleware"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/models"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type ReservationHandler struct {
	api      *backend.Client
	registry *admin.Registry
	tz       string
}

func NewReservationHandler(api *backend.Client, registry *admin.Registry, tz string) *ReservationHandler {
	return &ReservationHandler{api: api, registry: registry, tz: tz}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateStatusRequest struct {
	Status models.ReservationStatus `json:"status" binding:"required"`
}

type CompleteRequest struct {
	Note string `json:"note"`
}

type mutationResponse struct {
	Reservation *models.Reservation     `json:"reservation"`
	Items       []dto.ReservationRowDTO `json:"items"`
}

// ======================================================
// HELPERS
// ======================================================

func (h *ReservationHandler) manager(c *gin.Context) *admin.Manager {
	sess := middleware.CurrentSession(c)
	return h.registry.For(sess.ID, apiFor(c, h.api), admin.Actor{
		UserID: sess.User.UserID,
		Email:  sess.User.Email,
	})
}

func (h *ReservationHandler) filterFrom(c *gin.Context) (models.ReservationFilter, bool) {
	f := models.ReservationFilter{
		Fecha:          c.Query("fecha"),
		Status:         models.ReservationStatus(c.Query("status")),
		ProfessionalID: queryUint(c, "profesional_id"),
	}
	f.IncludeCancelled, _ = strconv.ParseBool(c.Query("include_cancelled"))

	if f.Fecha != "" && !timezone.ValidDate(f.Fecha) {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida, usa AAAA-MM-DD.")
		return f, false
	}
	if f.Status != "" && !f.Status.Valid() {
		httperr.BadRequest(c, "invalid_status", "Estado desconocido.")
		return f, false
	}
	return f, true
}

func (h *ReservationHandler) mutated(c *gin.Context, m *admin.Manager, res *models.Reservation, err error) {
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, mutationResponse{
		Reservation: res,
		Items:       dto.ReservationRows(m.Items()),
	})
}

// ======================================================
// LIST / DETAIL
// ======================================================

func (h *ReservationHandler) List(c *gin.Context) {
	filter, ok := h.filterFrom(c)
	if !ok {
		return
	}
	items := h.manager(c).Load(c.Request.Context(), filter)
	httpresp.List(c, dto.ReservationRows(items))
}

func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res, err := apiFor(c, h.api).GetReservation(c.Request.Context(), id)
	if err != nil {
		httperr.Upstream(c, err)
		return
	}
	httpresp.OK(c, gin.H{
		"reservation": res,
		"row":         dto.ReservationRow(*res),
		"address":     res.EffectiveAddress(),
		"vehicle":     res.EffectiveVehicle(),
	})
}

// Today lists today's reservations in the shop's timezone.
func (h *ReservationHandler) Today(c *gin.Context) {
	items := h.manager(c).Load(c.Request.Context(), models.ReservationFilter{Fecha: timezone.Today(h.tz)})
	httpresp.List(c, dto.ReservationRows(items))
}

// ======================================================
// MUTATIONS
// ======================================================

func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	if !req.Status.Valid() {
		httperr.BadRequest(c, "invalid_status", "Estado desconocido.")
		return
	}

	m := h.manager(c)
	res, err := m.UpdateStatus(c.Request.Context(), id, req.Status)
	h.mutated(c, m, res, err)
}

func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	m := h.manager(c)
	res, err := m.Cancel(c.Request.Context(), id)
	h.mutated(c, m, res, err)
}

func (h *ReservationHandler) Complete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req CompleteRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	m := h.manager(c)
	res, err := m.Complete(c.Request.Context(), id, req.Note)
	h.mutated(c, m, res, err)
}
