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

// VehicleHandler coordinates vehicle registry HTTP handlers.
type VehicleHandler struct {
	vehicleService *services.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(vehicleService *services.VehicleService) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
	}
}

// CreateVehicle registers a vehicle under an existing customer.
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	type CreateVehicleRequest struct {
		CustomerID uint64 `json:"customer_id" binding:"required"`
		Make       string `json:"make" binding:"required,max=50"`
		Model      string `json:"model" binding:"required,max=50"`
		Year       int    `json:"year" binding:"required"`
		Plate      string `json:"plate" binding:"required,max=10"`
	}

	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	vehicle, err := h.vehicleService.Create(services.CreateVehicleInput{
		CustomerID: req.CustomerID,
		Make:       req.Make,
		Model:      req.Model,
		Year:       req.Year,
		Plate:      req.Plate,
	})
	if err != nil {
		respondVehicleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToVehicleDTO(*vehicle))
}

// GetVehicle returns a vehicle with its owner and repair history.
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid vehicle ID")
		return
	}

	vehicle, err := h.vehicleService.Get(id)
	if err != nil {
		respondVehicleError(c, err)
		return
	}

	vehicleDTO := dto.ToVehicleDTO(*vehicle)
	orderDTOs := make([]dto.RepairOrderDTO, len(vehicle.RepairOrders))
	for i, order := range vehicle.RepairOrders {
		orderDTOs[i] = dto.ToRepairOrderDTO(order)
	}

	c.JSON(http.StatusOK, gin.H{
		"vehicle":       vehicleDTO,
		"repair_orders": orderDTOs,
	})
}

// ListVehicles returns vehicles, optionally scoped to one customer.
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var customerID *uint64
	if raw := c.Query("customer_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid customer_id")
			return
		}
		customerID = &id
	}

	vehicles, total, err := h.vehicleService.List(customerID, params.Page, params.Limit)
	if err != nil {
		respondVehicleError(c, err)
		return
	}

	vehicleDTOs := make([]dto.VehicleDTO, len(vehicles))
	for i, vehicle := range vehicles {
		vehicleDTOs[i] = dto.ToVehicleDTO(vehicle)
	}

	c.JSON(http.StatusOK, gin.H{
		"vehicles": vehicleDTOs,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// UpdateVehicle applies a partial update to a vehicle.
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid vehicle ID")
		return
	}

	type UpdateVehicleRequest struct {
		CustomerID *uint64 `json:"customer_id"`
		Make       *string `json:"make" binding:"omitempty,max=50"`
		Model      *string `json:"model" binding:"omitempty,max=50"`
		Year       *int    `json:"year"`
		Plate      *string `json:"plate" binding:"omitempty,max=10"`
	}

	var req UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	vehicle, err := h.vehicleService.Update(id, services.UpdateVehicleInput{
		CustomerID: req.CustomerID,
		Make:       req.Make,
		Model:      req.Model,
		Year:       req.Year,
		Plate:      req.Plate,
	})
	if err != nil {
		respondVehicleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVehicleDTO(*vehicle))
}

// DeleteVehicle removes a vehicle.
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid vehicle ID")
		return
	}

	if err := h.vehicleService.Delete(id); err != nil {
		respondVehicleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted"})
}

func respondVehicleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrVehicleNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrPlateTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrVehicleOwnerAbsent),
		errors.Is(err, services.ErrInvalidVehicleYear):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
