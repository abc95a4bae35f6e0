package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/workshop-manager/workshop-manager/internal/dto"
	apierrors "github.com/workshop-manager/workshop-manager/internal/errors"
	"github.com/workshop-manager/workshop-manager/internal/services"
	"github.com/workshop-manager/workshop-manager/internal/utils"
)

// ServiceCatalogHandler coordinates service catalog HTTP handlers.
type ServiceCatalogHandler struct {
	catalogService *services.ServiceCatalogService
}

// NewServiceCatalogHandler creates a new ServiceCatalogHandler.
func NewServiceCatalogHandler(catalogService *services.ServiceCatalogService) *ServiceCatalogHandler {
	return &ServiceCatalogHandler{
		catalogService: catalogService,
	}
}

// CreateService adds a service to the catalog.
func (h *ServiceCatalogHandler) CreateService(c *gin.Context) {
	type CreateServiceRequest struct {
		Name            string  `json:"name" binding:"required,max=100"`
		Description     string  `json:"description"`
		Cost            float64 `json:"cost" binding:"required"`
		DurationMinutes int     `json:"duration_minutes" binding:"required"`
	}

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	service, err := h.catalogService.Create(services.CreateServiceInput{
		Name:            req.Name,
		Description:     req.Description,
		Cost:            req.Cost,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToServiceDTO(*service))
}

// GetService returns a catalog service.
func (h *ServiceCatalogHandler) GetService(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid service ID")
		return
	}

	service, err := h.catalogService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToServiceDTO(*service))
}

// ListServices returns the catalog.
func (h *ServiceCatalogHandler) ListServices(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	catalog, total, err := h.catalogService.List(params.Page, params.Limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	serviceDTOs := make([]dto.ServiceDTO, len(catalog))
	for i, service := range catalog {
		serviceDTOs[i] = dto.ToServiceDTO(service)
	}

	c.JSON(http.StatusOK, gin.H{
		"services": serviceDTOs,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// UpdateService applies a partial update to a catalog service.
func (h *ServiceCatalogHandler) UpdateService(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid service ID")
		return
	}

	type UpdateServiceRequest struct {
		Name            *string  `json:"name" binding:"omitempty,max=100"`
		Description     *string  `json:"description"`
		Cost            *float64 `json:"cost"`
		DurationMinutes *int     `json:"duration_minutes"`
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	service, err := h.catalogService.Update(id, services.UpdateServiceInput{
		Name:            req.Name,
		Description:     req.Description,
		Cost:            req.Cost,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToServiceDTO(*service))
}

// DeleteService removes a catalog service.
func (h *ServiceCatalogHandler) DeleteService(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid service ID")
		return
	}

	if err := h.catalogService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}

func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrServiceNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidCost),
		errors.Is(err, services.ErrInvalidDuration):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
