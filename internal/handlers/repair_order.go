package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/workshop-manager/workshop-manager/internal/dto"
	apierrors "github.com/workshop-manager/workshop-manager/internal/errors"
	"github.com/workshop-manager/workshop-manager/internal/middleware"
	"github.com/workshop-manager/workshop-manager/internal/models"
	"github.com/workshop-manager/workshop-manager/internal/services"
	"github.com/workshop-manager/workshop-manager/internal/utils"
)

// RepairOrderHandler coordinates repair order HTTP handlers.
type RepairOrderHandler struct {
	orderService *services.RepairOrderService
	authService  *services.AuthService
}

// NewRepairOrderHandler creates a new RepairOrderHandler.
func NewRepairOrderHandler(orderService *services.RepairOrderService, authService *services.AuthService) *RepairOrderHandler {
	return &RepairOrderHandler{
		orderService: orderService,
		authService:  authService,
	}
}

// CreateRepairOrder opens a repair order for a vehicle.
func (h *RepairOrderHandler) CreateRepairOrder(c *gin.Context) {
	type CreateRepairOrderRequest struct {
		VehicleID uint64                  `json:"vehicle_id" binding:"required"`
		ServiceID uint64                  `json:"service_id" binding:"required"`
		Condition models.VehicleCondition `json:"condition"`
		Notes     string                  `json:"notes"`
	}

	var req CreateRepairOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.Create(services.CreateRepairOrderInput{
		VehicleID: req.VehicleID,
		ServiceID: req.ServiceID,
		Condition: req.Condition,
		Notes:     req.Notes,
	})
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRepairOrderDTO(*order))
}

// GetRepairOrder returns a repair order with its relations.
func (h *RepairOrderHandler) GetRepairOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid repair order ID")
		return
	}

	order, err := h.orderService.Get(id)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRepairOrderDTO(*order))
}

// ListRepairOrders returns repair orders with optional filters.
func (h *RepairOrderHandler) ListRepairOrders(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	input := services.ListRepairOrdersInput{
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if raw := c.Query("status"); raw != "" {
		status := models.OrderStatus(raw)
		if !status.Valid() {
			apierrors.BadRequest(c, "Invalid status filter")
			return
		}
		input.Status = &status
	}
	if raw := c.Query("mechanic_id"); raw != "" {
		mechanicID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid mechanic_id")
			return
		}
		input.MechanicID = &mechanicID
	}
	if raw := c.Query("intake_from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid intake_from, expected RFC 3339")
			return
		}
		input.IntakeFrom = &from
	}
	if raw := c.Query("intake_to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid intake_to, expected RFC 3339")
			return
		}
		input.IntakeTo = &to
	}

	orders, total, err := h.orderService.List(input)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"repair_orders": toRepairOrderDTOs(orders),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// ListAvailableRepairOrders returns unassigned pending orders.
func (h *RepairOrderHandler) ListAvailableRepairOrders(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	orders, total, err := h.orderService.Available(params.Page, params.Limit)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"repair_orders": toRepairOrderDTOs(orders),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// ClaimRepairOrder assigns the order to the calling mechanic.
func (h *RepairOrderHandler) ClaimRepairOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid repair order ID")
		return
	}

	mechanicID, ok := h.currentEmployeeID(c)
	if !ok {
		apierrors.Forbidden(c, "No employee record linked to this account")
		return
	}

	order, err := h.orderService.Claim(id, mechanicID)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRepairOrderDTO(*order))
}

// UpdateRepairOrder applies a partial update to a repair order.
func (h *RepairOrderHandler) UpdateRepairOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid repair order ID")
		return
	}

	type UpdateRepairOrderRequest struct {
		Condition *models.VehicleCondition `json:"condition"`
		Status    *models.OrderStatus      `json:"status"`
		Note      *string                  `json:"note"`
	}

	var req UpdateRepairOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.Update(id, services.UpdateRepairOrderInput{
		Condition: req.Condition,
		Status:    req.Status,
		Note:      req.Note,
	})
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRepairOrderDTO(*order))
}

// DeleteRepairOrder removes a repair order and its tasks.
func (h *RepairOrderHandler) DeleteRepairOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid repair order ID")
		return
	}

	if err := h.orderService.Delete(id); err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Repair order deleted"})
}

// currentEmployeeID resolves the calling user's employee record.
func (h *RepairOrderHandler) currentEmployeeID(c *gin.Context) (uint64, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		return 0, false
	}

	user, err := h.authService.GetUser(userID)
	if err != nil || user.EmployeeID == nil {
		return 0, false
	}

	return *user.EmployeeID, true
}

func toRepairOrderDTOs(orders []models.RepairOrder) []dto.RepairOrderDTO {
	orderDTOs := make([]dto.RepairOrderDTO, len(orders))
	for i, order := range orders {
		orderDTOs[i] = dto.ToRepairOrderDTO(order)
	}
	return orderDTOs
}

func respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyAssigned):
		apierrors.AlreadyAssigned(c, err.Error())
	case errors.Is(err, services.ErrOrderVehicleAbsent),
		errors.Is(err, services.ErrOrderServiceAbsent),
		errors.Is(err, services.ErrInvalidOrderStatus),
		errors.Is(err, services.ErrInvalidCondition):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
