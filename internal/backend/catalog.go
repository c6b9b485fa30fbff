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
// Services
// --------------------------------------------------

func (c *Client) ListServices(ctx context.Context, onlyActive bool) ([]models.Service, error) {
	q := url.Values{}
	if onlyActive {
		q.Set("active", "true")
	}
	out, err := getList[models.Service](ctx, c, "service_list", "/api/catalog/services/", q)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return out, nil
}

func (c *Client) CreateService(ctx context.Context, in models.Service) (*models.Service, error) {
	var out models.Service
	if err := c.doJSON(ctx, "service_create", http.MethodPost, "/api/catalog/services/", nil, in, &out); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return &out, nil
}

func (c *Client) UpdateService(ctx context.Context, id uint, in models.Service) (*models.Service, error) {
	var out models.Service
	if err := c.doJSON(ctx, "service_update", http.MethodPut, idPath("/api/catalog/services/%d/", id), nil, in, &out); err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}
	return &out, nil
}

func (c *Client) DeleteService(ctx context.Context, id uint) error {
	if err := c.doJSON(ctx, "service_delete", http.MethodDelete, idPath("/api/catalog/services/%d/", id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	return nil
}

// --------------------------------------------------
// Categories
// --------------------------------------------------

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	out, err := getList[models.Category](ctx, c, "category_list", "/api/catalog/categories/", nil)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func (c *Client) CreateCategory(ctx context.Context, in models.Category) (*models.Category, error) {
	var out models.Category
	if err := c.doJSON(ctx, "category_create", http.MethodPost, "/api/catalog/categories/", nil, in, &out); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id uint, in models.Category) (*models.Category, error) {
	var out models.Category
	if err := c.doJSON(ctx, "category_update", http.MethodPut, idPath("/api/catalog/categories/%d/", id), nil, in, &out); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id uint) error {
	if err := c.doJSON(ctx, "category_delete", http.MethodDelete, idPath("/api/catalog/categories/%d/", id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// --------------------------------------------------
// Professional <-> service assignments
// --------------------------------------------------

func (c *Client) ListAssignments(ctx context.Context, professionalID, serviceID uint) ([]models.ProfessionalServiceAssignment, error) {
	q := url.Values{}
	if professionalID > 0 {
		q.Set("professional_id", strconv.FormatUint(uint64(professionalID), 10))
	}
	if serviceID > 0 {
		q.Set("service_id", strconv.FormatUint(uint64(serviceID), 10))
	}
	out, err := getList[models.ProfessionalServiceAssignment](ctx, c, "assignment_list", "/api/catalog/assignments/", q)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return out, nil
}

func (c *Client) CreateAssignment(ctx context.Context, in models.ProfessionalServiceAssignment) (*models.ProfessionalServiceAssignment, error) {
	var out models.ProfessionalServiceAssignment
	if err := c.doJSON(ctx, "assignment_create", http.MethodPost, "/api/catalog/assignments/", nil, in, &out); err != nil {
		return nil, fmt.Errorf("create assignment: %w", err)
	}
	return &out, nil
}

func (c *Client) UpdateAssignment(ctx context.Context, id uint, in models.ProfessionalServiceAssignment) (*models.ProfessionalServiceAssignment, error) {
	var out models.ProfessionalServiceAssignment
	if err := c.doJSON(ctx, "assignment_update", http.MethodPatch, idPath("/api/catalog/assignments/%d/", id), nil, in, &out); err != nil {
		return nil, fmt.Errorf("update assignment: %w", err)
	}
	return &out, nil
}

func (c *Client) DeleteAssignment(ctx context.Context, id uint) error {
	if err := c.doJSON(ctx, "assignment_delete", http.MethodDelete, idPath("/api/catalog/assignments/%d/", id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}
