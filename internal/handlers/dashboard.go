package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/workshop-manager/workshop-manager/internal/constants"
	apierrors "github.com/workshop-manager/workshop-manager/internal/errors"
	"github.com/workshop-manager/workshop-manager/internal/middleware"
	"github.com/workshop-manager/workshop-manager/internal/models"
	"github.com/workshop-manager/workshop-manager/internal/services"
)

// DashboardHandler builds the role-specific landing views.
type DashboardHandler struct {
	orderService  *services.RepairOrderService
	taskService   *services.TaskService
	reportService *services.ReportService
	authService   *services.AuthService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(
	orderService *services.RepairOrderService,
	taskService *services.TaskService,
	reportService *services.ReportService,
	authService *services.AuthService,
) *DashboardHandler {
	return &DashboardHandler{
		orderService:  orderService,
		taskService:   taskService,
		reportService: reportService,
		authService:   authService,
	}
}

// ChiefDashboard returns the workshop-wide overview: status breakdown,
// trailing income and average turnaround.
func (h *DashboardHandler) ChiefDashboard(c *gin.Context) {
	breakdown, err := h.reportService.StatusBreakdown()
	if err != nil {
		apierrors.InternalError(c, "Failed to build dashboard")
		return
	}

	income, err := h.reportService.MonthlyIncome(constants.DashboardIncomeMonths)
	if err != nil {
		apierrors.InternalError(c, "Failed to build dashboard")
		return
	}

	turnaround, err := h.reportService.AverageTurnaroundDays(nil)
	if err != nil {
		apierrors.InternalError(c, "Failed to build dashboard")
		return
	}

	total := 0
	for _, count := range breakdown {
		total += count
	}

	c.JSON(http.StatusOK, gin.H{
		"total_orders":            total,
		"status_breakdown":        breakdown,
		"monthly_income":          income,
		"average_turnaround_days": turnaround,
	})
}

// MechanicDashboard returns the caller's personal view: assigned orders,
// claimable orders, this month's completions and open tasks.
func (h *DashboardHandler) MechanicDashboard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		apierrors.Unauthorized(c, "Unknown user")
		return
	}
	if user.EmployeeID == nil {
		apierrors.Forbidden(c, "No employee record linked to this account")
		return
	}
	mechanicID := *user.EmployeeID

	assigned, _, err := h.orderService.List(services.ListRepairOrdersInput{
		MechanicID: &mechanicID,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to build dashboard")
		return
	}

	open := make([]models.RepairOrder, 0, len(assigned))
	for _, order := range assigned {
		if order.Status != models.OrderStatusCompleted && order.Status != models.OrderStatusCancelled {
			open = append(open, order)
		}
	}

	_, available, err := h.orderService.Available(1, constants.MinPageSize)
	if err != nil {
		apierrors.InternalError(c, "Failed to build dashboard")
		return
	}

	completedThisMonth, err := h.reportService.CompletedInMonth(mechanicID, time.Now())
	if err != nil {
		apierrors.InternalError(c, "Failed to build dashboard")
		return
	}

	turnaround, err := h.reportService.AverageTurnaroundDays(&mechanicID)
	if err != nil {
		apierrors.InternalError(c, "Failed to build dashboard")
		return
	}

	todo := models.TaskStatusTodo
	_, openTasks, err := h.taskService.List(services.ListTasksInput{
		Status:     &todo,
		InvolvedID: &userID,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to build dashboard")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assigned_orders":         toRepairOrderDTOs(open),
		"available_orders":        available,
		"completed_this_month":    completedThisMonth,
		"average_turnaround_days": turnaround,
		"open_tasks":              openTasks,
	})
}
