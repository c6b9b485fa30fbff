package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/backend"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/httperr"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/httpresp"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/timezone"
)

type DashboardHandler struct {
	api *backend.Client
}

func NewDashboardHandler(api *backend.Client) *DashboardHandler {
	return &DashboardHandler{api: api}
}

func (h *DashboardHandler) Get(c *gin.Context) {
	d, err := apiFor(c, h.api).Dashboard(c.Request.Context())
	if err != nil {
		httperr.Upstream(c, err)
		return
	}
	httpresp.OK(c, d)
}

// Slots lists the raw per-professional slots of a day.
func (h *DashboardHandler) Slots(c *gin.Context) {
	fecha := c.Query("fecha")
	if !timezone.ValidDate(fecha) {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida, usa AAAA-MM-DD.")
		return
	}
	slots, err := apiFor(c, h.api).Slots(c.Request.Context(), fecha, queryUint(c, "profesional_id"))
	if err != nil {
		httperr.Upstream(c, err)
		return
	}
	httpresp.List(c, slots)
}
