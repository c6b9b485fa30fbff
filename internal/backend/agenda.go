package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/models"
)

// Slots lists the raw per-professional slots for a day.
func (c *Client) Slots(ctx context.Context, fecha string, professionalID uint) ([]models.Slot, error) {
	q := url.Values{}
	q.Set("fecha", fecha)
	if professionalID > 0 {
		q.Set("profesional_id", strconv.FormatUint(uint64(professionalID), 10))
	}
	slots, err := getList[models.Slot](ctx, c, "slots", "/api/agenda/slots", q)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return slots, nil
}

// Availability returns aggregated windows able to host every selected service.
func (c *Client) Availability(ctx context.Context, in models.AvailabilityRequest) ([]models.AggregatedSlot, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, "availability", http.MethodPost, "/api/agenda/availability", nil, in, &raw); err != nil {
		return nil, fmt.Errorf("availability: %w", err)
	}
	return decodeList[models.AggregatedSlot](raw)
}

func (c *Client) CreateReservation(ctx context.Context, in models.CreateReservationRequest) (*models.Reservation, error) {
	var out models.Reservation
	if err := c.doJSON(ctx, "reservation_create", http.MethodPost, "/api/agenda/reservas/", nil, in, &out); err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}
	return &out, nil
}

func (c *Client) GetReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	var out models.Reservation
	if err := c.doJSON(ctx, "reservation_get", http.MethodGet, idPath("/api/agenda/reservas/%d/", id), nil, nil, &out); err != nil {
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	return &out, nil
}

func (c *Client) ListReservations(ctx context.Context, f models.ReservationFilter) ([]models.Reservation, error) {
	q := url.Values{}
	if f.Fecha != "" {
		q.Set("fecha", f.Fecha)
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.ProfessionalID > 0 {
		q.Set("profesional_id", strconv.FormatUint(uint64(f.ProfessionalID), 10))
	}
	if f.IncludeCancelled {
		q.Set("include_cancelled", "true")
	}
	out, err := getList[models.Reservation](ctx, c, "reservation_list", "/api/agenda/reservas/", q)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return out, nil
}

func (c *Client) UpdateReservationStatus(ctx context.Context, id uint, status models.ReservationStatus) (*models.Reservation, error) {
	var out models.Reservation
	body := map[string]string{"status": string(status)}
	if err := c.doJSON(ctx, "reservation_status", http.MethodPatch, idPath("/api/agenda/reservas/%d/status/", id), nil, body, &out); err != nil {
		return nil, fmt.Errorf("update reservation status: %w", err)
	}
	return &out, nil
}

func (c *Client) CancelReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	var out models.Reservation
	if err := c.doJSON(ctx, "reservation_cancel", http.MethodPost, idPath("/api/agenda/reservas/%d/cancel/", id), nil, map[string]string{}, &out); err != nil {
		return nil, fmt.Errorf("cancel reservation: %w", err)
	}
	return &out, nil
}

func (c *Client) CompleteReservation(ctx context.Context, id uint, note string) (*models.Reservation, error) {
	var out models.Reservation
	body := map[string]string{}
	if note != "" {
		body["note"] = note
	}
	if err := c.doJSON(ctx, "reservation_complete", http.MethodPost, idPath("/api/agenda/reservas/%d/complete/", id), nil, body, &out); err != nil {
		return nil, fmt.Errorf("complete reservation: %w", err)
	}
	return &out, nil
}

// ConfirmByToken hits the public WhatsApp confirmation link.
func (c *Client) ConfirmByToken(ctx context.Context, token string) (*models.ConfirmationResult, error) {
	var out models.ConfirmationResult
	path := "/agenda/confirm/" + url.PathEscape(token) + "/"
	if err := c.doJSON(ctx, "confirm", http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("confirm reservation: %w", err)
	}
	return &out, nil
}

func (c *Client) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	var out models.Dashboard
	if err := c.doJSON(ctx, "dashboard", http.MethodGet, "/agenda/dashboard/", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	return &out, nil
}

// --------------------------------------------------
// Slot blocks
// --------------------------------------------------

func (c *Client) ListBlocks(ctx context.Context, fecha string, professionalID uint) ([]models.SlotBlock, error) {
	q := url.Values{}
	if fecha != "" {
		q.Set("fecha", fecha)
	}
	if professionalID > 0 {
		q.Set("profesional_id", strconv.FormatUint(uint64(professionalID), 10))
	}
	out, err := getList[models.SlotBlock](ctx, c, "block_list", "/api/agenda/blocks/", q)
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}
	return out, nil
}

func (c *Client) CreateBlock(ctx context.Context, in models.SlotBlock) (*models.SlotBlock, error) {
	var out models.SlotBlock
	if err := c.doJSON(ctx, "block_create", http.MethodPost, "/api/agenda/blocks/", nil, in, &out); err != nil {
		return nil, fmt.Errorf("create block: %w", err)
	}
	return &out, nil
}

func (c *Client) UpdateBlock(ctx context.Context, id uint, in models.SlotBlock) (*models.SlotBlock, error) {
	var out models.SlotBlock
	if err := c.doJSON(ctx, "block_update", http.MethodPut, idPath("/api/agenda/blocks/%d/", id), nil, in, &out); err != nil {
		return nil, fmt.Errorf("update block: %w", err)
	}
	return &out, nil
}

func (c *Client) DeleteBlock(ctx context.Context, id uint) error {
	if err := c.doJSON(ctx, "block_delete", http.MethodDelete, idPath("/api/agenda/blocks/%d/", id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete block: %w", err)
	}
	return nil
}
