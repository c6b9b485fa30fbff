package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/audit"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/backend"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/calendar"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/httperr"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/httpresp"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/models"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/timezone"
)

// BlockHandler manages slot blocks directly, outside the calendar modal.
type BlockHandler struct {
	crud
}

func NewBlockHandler(api *backend.Client, dispatcher *audit.Dispatcher) *BlockHandler {
	return &BlockHandler{crud{api: api, audit: dispatcher, action: audit.ActionBlockSaved}}
}

func (h *BlockHandler) List(c *gin.Context) {
	fecha := c.Query("fecha")
	if fecha != "" && !timezone.ValidDate(fecha) {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida, usa AAAA-MM-DD.")
		return
	}
	blocks, err := apiFor(c, h.api).ListBlocks(c.Request.Context(), fecha, queryUint(c, "profesional_id"))
	if err != nil {
		httperr.Upstream(c, err)
		return
	}
	httpresp.List(c, blocks)
}

func (h *BlockHandler) Create(c *gin.Context) {
	var in models.SlotBlock
	if !bindJSON(c, &in) || !h.validBlock(c, in) {
		return
	}
	created, err := apiFor(c, h.api).CreateBlock(c.Request.Context(), in)
	if err != nil {
		httperr.Upstream(c, err)
		return
	}
	h.audit.Dispatch(auditEvent(c, audit.ActionBlockSaved, "slot_block", created.ID, in))
	httpresp.Created(c, created)
}

func (h *BlockHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in models.SlotBlock
	if !bindJSON(c, &in) || !h.validBlock(c, in) {
		return
	}
	in.ID = id
	updated, err := apiFor(c, h.api).UpdateBlock(c.Request.Context(), id, in)
	if err != nil {
		httperr.Upstream(c, err)
		return
	}
	h.audit.Dispatch(auditEvent(c, audit.ActionBlockSaved, "slot_block", id, in))
	httpresp.OK(c, updated)
}

func (h *BlockHandler) Delete(c *gin.Context) {
	deleteOne(crud{api: h.api, audit: h.audit, action: audit.ActionBlockDeleted}, "slot_block", (*backend.Client).DeleteBlock)(c)
}

// validBlock runs the same checks as the calendar block modal.
func (h *BlockHandler) validBlock(c *gin.Context, b models.SlotBlock) bool {
	if errs := calendar.EntryFromBlock(b).Validate(); len(errs) > 0 {
		httperr.Validation(c, errs)
		return false
	}
	return true
}
