package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/booking"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/httperr"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/httpresp"
)

// BookingHandler drives a booking flow step by step. Every answer is the
// flow's current view.
type BookingHandler struct {
	bookings *booking.Service
}

func NewBookingHandler(bookings *booking.Service) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type StartBookingRequest struct {
	Services []uint `json:"services" binding:"required,min=1"`
	Fecha    string `json:"fecha"`
}

type ChangeDateRequest struct {
	Fecha string `json:"fecha" binding:"required"`
}

type SelectSlotRequest struct {
	Index *int `json:"index" binding:"required,min=0"`
}

type SubmitBookingRequest struct {
	RecaptchaToken string `json:"recaptcha_token"`
}

func (h *BookingHandler) Start(c *gin.Context) {
	var req StartBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.bookings.Start(c.Request.Context(), req.Services, req.Fecha)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, view)
}

func (h *BookingHandler) Get(c *gin.Context) {
	respond(c)(h.bookings.Get(c.Param("id")))
}

func (h *BookingHandler) ChangeDate(c *gin.Context) {
	var req ChangeDateRequest
	if !bindJSON(c, &req) {
		return
	}
	respond(c)(h.bookings.ChangeDate(c.Request.Context(), c.Param("id"), req.Fecha))
}

func (h *BookingHandler) Select(c *gin.Context) {
	var req SelectSlotRequest
	if !bindJSON(c, &req) {
		return
	}
	respond(c)(h.bookings.Select(c.Param("id"), *req.Index))
}

func (h *BookingHandler) Back(c *gin.Context) {
	respond(c)(h.bookings.Back(c.Param("id")))
}

func (h *BookingHandler) UpdateForm(c *gin.Context) {
	var patch booking.FormPatch
	if !bindJSON(c, &patch) {
		return
	}
	respond(c)(h.bookings.UpdateForm(c.Param("id"), patch))
}

// Lookup never fails on the backend's account.
func (h *BookingHandler) Lookup(c *gin.Context) {
	var req LookupRequest
	if !bindJSON(c, &req) {
		return
	}
	respond(c)(h.bookings.Lookup(c.Request.Context(), c.Param("id"), req.Email, req.Phone))
}

func (h *BookingHandler) Submit(c *gin.Context) {
	var req SubmitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		httperr.BadRequest(c, "invalid_request", "Cuerpo de la solicitud inválido.")
		return
	}

	view, err := h.bookings.Submit(c.Request.Context(), c.Param("id"), req.RecaptchaToken)
	if err == nil {
		httpresp.Created(c, view)
		return
	}

	var verr *booking.ValidationError
	var berr httperr.BusinessError
	switch {
	case errors.As(err, &verr), errors.As(err, &berr):
		writeBookingError(c, err)
	default:
		// the backend said no: the flow is back on the form with the message
		c.JSON(httperr.UpstreamStatus(err), gin.H{
			"error_code": "reservation_failed",
			"message":    view.LastError,
			"booking":    view,
		})
	}
}

func respond(c *gin.Context) func(booking.View, error) {
	return func(view booking.View, err error) {
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		httpresp.OK(c, view)
	}
}
