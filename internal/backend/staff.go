package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/models"
)

// --------------------------------------------------
// Professionals
// --------------------------------------------------

func (c *Client) ListProfessionals(ctx context.Context) ([]models.Professional, error) {
	out, err := getList[models.Professional](ctx, c, "professional_list", "/api/agenda/professionals/", nil)
	if err != nil {
		return nil, fmt.Errorf("list professionals: %w", err)
	}
	return out, nil
}

func (c *Client) GetProfessional(ctx context.Context, id uint) (*models.Professional, error) {
	var out models.Professional
	if err := c.doJSON(ctx, "professional_get", http.MethodGet, idPath("/api/agenda/professionals/%d/", id), nil, nil, &out); err != nil {
		return nil, fmt.Errorf("get professional: %w", err)
	}
	return &out, nil
}

func (c *Client) CreateProfessional(ctx context.Context, in models.Professional) (*models.Professional, error) {
	var out models.Professional
	if err := c.doJSON(ctx, "professional_create", http.MethodPost, "/api/agenda/professionals/", nil, in, &out); err != nil {
		return nil, fmt.Errorf("create professional: %w", err)
	}
	return &out, nil
}

func (c *Client) UpdateProfessional(ctx context.Context, id uint, in models.Professional) (*models.Professional, error) {
	var out models.Professional
	if err := c.doJSON(ctx, "professional_update", http.MethodPut, idPath("/api/agenda/professionals/%d/", id), nil, in, &out); err != nil {
		return nil, fmt.Errorf("update professional: %w", err)
	}
	return &out, nil
}

func (c *Client) DeleteProfessional(ctx context.Context, id uint) error {
	if err := c.doJSON(ctx, "professional_delete", http.MethodDelete, idPath("/api/agenda/professionals/%d/", id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete professional: %w", err)
	}
	return nil
}

// --------------------------------------------------
// Work schedules + breaks
// --------------------------------------------------

func (c *Client) ListSchedules(ctx context.Context, professionalID uint) ([]models.WorkSchedule, error) {
	q := url.Values{}
	if professionalID > 0 {
		q.Set("profesional_id", strconv.FormatUint(uint64(professionalID), 10))
	}
	out, err := getList[models.WorkSchedule](ctx, c, "schedule_list", "/api/agenda/schedules/", q)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return out, nil
}

func (c *Client) CreateSchedule(ctx context.Context, in models.WorkSchedule) (*models.WorkSchedule, error) {
	var out models.WorkSchedule
	if err := c.doJSON(ctx, "schedule_create", http.MethodPost, "/api/agenda/schedules/", nil, in, &out); err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}
	return &out, nil
}

func (c *Client) UpdateSchedule(ctx context.Context, id uint, in models.WorkSchedule) (*models.WorkSchedule, error) {
	var out models.WorkSchedule
	if err := c.doJSON(ctx, "schedule_update", http.MethodPut, idPath("/api/agenda/schedules/%d/", id), nil, in, &out); err != nil {
		return nil, fmt.Errorf("update schedule: %w", err)
	}
	return &out, nil
}

func (c *Client) DeleteSchedule(ctx context.Context, id uint) error {
	if err := c.doJSON(ctx, "schedule_delete", http.MethodDelete, idPath("/api/agenda/schedules/%d/", id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}

func (c *Client) ListBreaks(ctx context.Context, scheduleID uint) ([]models.Break, error) {
	out, err := getList[models.Break](ctx, c, "break_list", idPath("/api/agenda/schedules/%d/breaks/", scheduleID), nil)
	if err != nil {
		return nil, fmt.Errorf("list breaks: %w", err)
	}
	return out, nil
}

func (c *Client) CreateBreak(ctx context.Context, scheduleID uint, in models.Break) (*models.Break, error) {
	var out models.Break
	if err := c.doJSON(ctx, "break_create", http.MethodPost, idPath("/api/agenda/schedules/%d/breaks/", scheduleID), nil, in, &out); err != nil {
		return nil, fmt.Errorf("create break: %w", err)
	}
	return &out, nil
}

func (c *Client) DeleteBreak(ctx context.Context, id uint) error {
	if err := c.doJSON(ctx, "break_delete", http.MethodDelete, idPath("/api/agenda/breaks/%d/", id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete break: %w", err)
	}
	return nil
}
