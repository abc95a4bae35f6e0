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

// CustomerHandler coordinates customer registry HTTP handlers.
type CustomerHandler struct {
	customerService *services.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerService *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// CreateCustomer registers a new customer.
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	type CreateCustomerRequest struct {
		FirstName string `json:"first_name" binding:"required,max=100"`
		LastName  string `json:"last_name" binding:"required,max=100"`
		Phone     string `json:"phone" binding:"max=15"`
		Address   string `json:"address" binding:"max=255"`
		Email     string `json:"email" binding:"required,email"`
	}

	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.Create(services.CreateCustomerInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
		Email:     req.Email,
	})
	if err != nil {
		respondCustomerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCustomerDTO(*customer))
}

// GetCustomer returns a customer with its vehicles.
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.Get(id)
	if err != nil {
		respondCustomerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerDTO(*customer))
}

// ListCustomers returns customers with optional name/email search.
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	search := c.Query("search")

	customers, total, err := h.customerService.List(search, params.Page, params.Limit)
	if err != nil {
		respondCustomerError(c, err)
		return
	}

	customerDTOs := make([]dto.CustomerDTO, len(customers))
	for i, customer := range customers {
		customerDTOs[i] = dto.ToCustomerDTO(customer)
	}

	c.JSON(http.StatusOK, gin.H{
		"customers": customerDTOs,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// UpdateCustomer applies a partial update to a customer.
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid customer ID")
		return
	}

	type UpdateCustomerRequest struct {
		FirstName *string `json:"first_name" binding:"omitempty,max=100"`
		LastName  *string `json:"last_name" binding:"omitempty,max=100"`
		Phone     *string `json:"phone" binding:"omitempty,max=15"`
		Address   *string `json:"address" binding:"omitempty,max=255"`
		Email     *string `json:"email" binding:"omitempty,email"`
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.Update(id, services.UpdateCustomerInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
		Email:     req.Email,
	})
	if err != nil {
		respondCustomerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerDTO(*customer))
}

// DeleteCustomer removes a customer.
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.Delete(id); err != nil {
		respondCustomerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted"})
}

func respondCustomerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCustomerNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrCustomerEmailTaken):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
