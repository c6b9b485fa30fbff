package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/audit"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/backend"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/calendar"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/httperr"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/httpresp"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/models"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type CalendarHandler struct {
	api   *backend.Client
	audit *audit.Dispatcher
	tz    string
}

func NewCalendarHandler(api *backend.Client, dispatcher *audit.Dispatcher, tz string) *CalendarHandler {
	return &CalendarHandler{api: api, audit: dispatcher, tz: tz}
}

// ======================================================
// REQUESTS
// ======================================================

type CalendarEntryRequest struct {
	Type   calendar.EntryType   `json:"type" binding:"required"`
	Fields calendar.EntryFields `json:"fields"`
}

type BlockEntryRequest struct {
	Fields calendar.EntryFields `json:"fields"`
}

// ======================================================
// READ
// ======================================================

// Get renders one day of the admin calendar.
func (h *CalendarHandler) Get(c *gin.Context) {
	fecha := c.DefaultQuery("fecha", timezone.Today(h.tz))
	if !timezone.ValidDate(fecha) {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida, usa AAAA-MM-DD.")
		return
	}
	professionalID := queryUint(c, "profesional_id")
	api := apiFor(c, h.api)

	var (
		professionals []models.Professional
		reservations  []models.Reservation
		blocks        []models.SlotBlock
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		professionals, err = api.ListProfessionals(ctx)
		return err
	})
	g.Go(func() (err error) {
		reservations, err = api.ListReservations(ctx, models.ReservationFilter{
			Fecha:            fecha,
			ProfessionalID:   professionalID,
			IncludeCancelled: true,
		})
		return err
	})
	g.Go(func() (err error) {
		blocks, err = api.ListBlocks(ctx, fecha, professionalID)
		return err
	})
	if err := g.Wait(); err != nil {
		httperr.Upstream(c, err)
		return
	}

	if professionalID != 0 {
		professionals = onlyProfessional(professionals, professionalID)
	}

	view := calendar.Project(professionals, reservations, blocks)
	httpresp.OK(c, gin.H{
		"fecha":     fecha,
		"resources": view.Resources,
		"events":    view.Events,
		"options":   view.Options,
	})
}

// ======================================================
// WRITE
// ======================================================

// CreateEntry runs the create modal: pick type, fill, validate, confirm.
func (h *CalendarHandler) CreateEntry(c *gin.Context) {
	var req CalendarEntryRequest
	if !bindJSON(c, &req) {
		return
	}

	entry := calendar.NewEntry(req.Fields.ProfessionalID, models.Timestamp{}, models.Timestamp{})
	if err := entry.SelectType(req.Type); err != nil {
		httperr.FromError(c, err)
		return
	}
	h.confirm(c, entry, req.Fields)
}

// UpdateBlockEntry edits an existing block through the same modal.
func (h *CalendarHandler) UpdateBlockEntry(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req BlockEntryRequest
	if !bindJSON(c, &req) {
		return
	}

	entry := calendar.EntryFromBlock(models.SlotBlock{ID: id, ProfessionalID: req.Fields.ProfessionalID})
	h.confirm(c, entry, req.Fields)
}

func (h *CalendarHandler) confirm(c *gin.Context, entry *calendar.Entry, fields calendar.EntryFields) {
	if err := entry.Update(fields); err != nil {
		httperr.FromError(c, err)
		return
	}
	if errs := entry.Validate(); len(errs) > 0 {
		httperr.Validation(c, errs)
		return
	}
	payload, err := entry.Confirm()
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	saved, err := h.save(c.Request.Context(), apiFor(c, h.api), payload)
	if err != nil {
		httperr.Upstream(c, err)
		return
	}

	h.audit.Dispatch(auditEvent(c, audit.ActionCalendarEntryCreated, string(payload.Type), payload.BlockID, payload))
	httpresp.Created(c, gin.H{"type": payload.Type, "saved": saved})
}

func (h *CalendarHandler) save(ctx context.Context, api *backend.Client, p calendar.Payload) (any, error) {
	switch {
	case p.Block != nil && p.BlockID != 0:
		return api.UpdateBlock(ctx, p.BlockID, *p.Block)
	case p.Block != nil:
		return api.CreateBlock(ctx, *p.Block)
	default:
		return api.CreateReservation(ctx, *p.Reservation)
	}
}

func onlyProfessional(all []models.Professional, id uint) []models.Professional {
	for _, p := range all {
		if p.ID == id {
			return []models.Professional{p}
		}
	}
	return []models.Professional{}
}
