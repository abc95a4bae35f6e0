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

// EmployeeHandler coordinates staff registry HTTP handlers.
type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
	}
}

// CreateEmployee registers an employee.
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	type CreateEmployeeRequest struct {
		Name     string `json:"name" binding:"required,max=100"`
		Position string `json:"position" binding:"required,max=50"`
		Phone    string `json:"phone" binding:"max=15"`
		Email    string `json:"email" binding:"required,email"`
	}

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.employeeService.Create(services.CreateEmployeeInput{
		Name:     req.Name,
		Position: req.Position,
		Phone:    req.Phone,
		Email:    req.Email,
	})
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEmployeeDTO(*employee))
}

// GetEmployee returns an employee.
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid employee ID")
		return
	}

	employee, err := h.employeeService.Get(id)
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee))
}

// ListEmployees returns employees.
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	employees, total, err := h.employeeService.List(params.Page, params.Limit)
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	employeeDTOs := make([]dto.EmployeeDTO, len(employees))
	for i, employee := range employees {
		employeeDTOs[i] = dto.ToEmployeeDTO(employee)
	}

	c.JSON(http.StatusOK, gin.H{
		"employees": employeeDTOs,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// UpdateEmployee applies a partial update to an employee.
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid employee ID")
		return
	}

	type UpdateEmployeeRequest struct {
		Name     *string `json:"name" binding:"omitempty,max=100"`
		Position *string `json:"position" binding:"omitempty,max=50"`
		Phone    *string `json:"phone" binding:"omitempty,max=15"`
		Email    *string `json:"email" binding:"omitempty,email"`
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.employeeService.Update(id, services.UpdateEmployeeInput{
		Name:     req.Name,
		Position: req.Position,
		Phone:    req.Phone,
		Email:    req.Email,
	})
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee))
}

// DeleteEmployee removes an employee.
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid employee ID")
		return
	}

	if err := h.employeeService.Delete(id); err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted"})
}

func respondEmployeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmployeeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEmployeeEmailTaken):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
