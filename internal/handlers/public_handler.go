package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/backend"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/booking"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/domain/availability"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/httperr"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/httpresp"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	api      *backend.Client
	bookings *booking.Service
}

func NewPublicHandler(api *backend.Client, bookings *booking.Service) *PublicHandler {
	return &PublicHandler{api: api, bookings: bookings}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type AvailabilityRequest struct {
	Services []uint `json:"services"`
	Fecha    string `json:"fecha"`
}

type LookupRequest struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	services, err := h.api.ListServices(c.Request.Context(), true)
	if err != nil {
		httperr.Upstream(c, err)
		return
	}
	httpresp.List(c, services)
}

func (h *PublicHandler) ListRegions(c *gin.Context) {
	regions, err := h.api.Regions(c.Request.Context())
	if err != nil {
		httperr.Upstream(c, err)
		return
	}
	httpresp.List(c, regions)
}

func (h *PublicHandler) ListCommunes(c *gin.Context) {
	regionID, ok := paramID(c, "id")
	if !ok {
		return
	}
	communes, err := h.api.Communes(c.Request.Context(), regionID)
	if err != nil {
		httperr.Upstream(c, err)
		return
	}
	httpresp.List(c, communes)
}

////////////////////////////////////////////////////////
// AVAILABILITY / LOOKUP
////////////////////////////////////////////////////////

// Availability always answers 200; a failed backend read looks like a day
// without slots.
func (h *PublicHandler) Availability(c *gin.Context) {
	var req AvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}

	slots := h.bookings.Availability(c.Request.Context(), req.Services, req.Fecha)
	c.JSON(http.StatusOK, gin.H{
		"slots":   slots,
		"buckets": availability.Bucketize(slots),
	})
}

func (h *PublicHandler) Lookup(c *gin.Context) {
	var req LookupRequest
	if !bindJSON(c, &req) {
		return
	}

	form, filled := h.bookings.LookupFields(c.Request.Context(), req.Email, req.Phone)
	c.JSON(http.StatusOK, gin.H{
		"found":     len(filled) > 0,
		"form":      form,
		"prefilled": filled,
	})
}

////////////////////////////////////////////////////////
// RESERVATIONS
////////////////////////////////////////////////////////

// CreateReservation books in one request: picked aggregate plus form.
func (h *PublicHandler) CreateReservation(c *gin.Context) {
	var req booking.OneShot
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.bookings.BookOnce(c.Request.Context(), req)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"reservation_id": res.ID,
		"status":         res.Status,
	})
}

func (h *PublicHandler) Confirm(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		httperr.BadRequest(c, "invalid_token", "Enlace de confirmación inválido.")
		return
	}

	res, err := h.api.ConfirmByToken(c.Request.Context(), token)
	if err != nil {
		httperr.Upstream(c, err)
		return
	}
	httpresp.OK(c, res)
}

func writeBookingError(c *gin.Context, err error) {
	var verr *booking.ValidationError
	if errors.As(err, &verr) {
		httperr.Validation(c, verr.Fields)
		return
	}
	httperr.FromError(c, err)
}

