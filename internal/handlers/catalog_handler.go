package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/audit"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/backend"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/models"
)

// CatalogHandler serves services, categories and the service-professional
// assignments.
type CatalogHandler struct {
	crud
}

func NewCatalogHandler(api *backend.Client, dispatcher *audit.Dispatcher) *CatalogHandler {
	return &CatalogHandler{crud{api: api, audit: dispatcher, action: audit.ActionCatalogChanged}}
}

// --------- Services ---------

func (h *CatalogHandler) ListServices(c *gin.Context) {
	onlyActive := c.Query("active") == "true"
	listOf(h.crud, func(api *backend.Client, ctx context.Context) ([]models.Service, error) {
		return api.ListServices(ctx, onlyActive)
	})(c)
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	createOne(h.crud, "service", (*backend.Client).CreateService)(c)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	updateOne(h.crud, "service", (*backend.Client).UpdateService)(c)
}

func (h *CatalogHandler) DeleteService(c *gin.Context) {
	deleteOne(h.crud, "service", (*backend.Client).DeleteService)(c)
}

// --------- Categories ---------

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	listOf(h.crud, (*backend.Client).ListCategories)(c)
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	createOne(h.crud, "category", (*backend.Client).CreateCategory)(c)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	updateOne(h.crud, "category", (*backend.Client).UpdateCategory)(c)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	deleteOne(h.crud, "category", (*backend.Client).DeleteCategory)(c)
}

// --------- Assignments ---------

func (h *CatalogHandler) ListAssignments(c *gin.Context) {
	professionalID, serviceID := queryUint(c, "profesional_id"), queryUint(c, "service_id")
	listOf(h.crud, func(api *backend.Client, ctx context.Context) ([]models.ProfessionalServiceAssignment, error) {
		return api.ListAssignments(ctx, professionalID, serviceID)
	})(c)
}

func (h *CatalogHandler) CreateAssignment(c *gin.Context) {
	createOne(h.crud, "assignment", (*backend.Client).CreateAssignment)(c)
}

func (h *CatalogHandler) UpdateAssignment(c *gin.Context) {
	updateOne(h.crud, "assignment", (*backend.Client).UpdateAssignment)(c)
}

func (h *CatalogHandler) DeleteAssignment(c *gin.Context) {
	deleteOne(h.crud, "assignment", (*backend.Client).DeleteAssignment)(c)
}
