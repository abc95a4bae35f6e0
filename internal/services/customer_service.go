package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/workshop-manager/workshop-manager/internal/models"
	"github.com/workshop-manager/workshop-manager/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrCustomerEmailTaken = errors.New("customer email is already registered")
)

// CustomerService handles customer registry logic
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents input for registering a customer
type CreateCustomerInput struct {
	FirstName string
	LastName  string
	Phone     string
	Address   string
	Email     string
}

// UpdateCustomerInput represents a partial update of a customer
type UpdateCustomerInput struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Address   *string
	Email     *string
}

// Create registers a customer with the registration date stamped to now
func (s *CustomerService) Create(input CreateCustomerInput) (*models.Customer, error) {
	customer := &models.Customer{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		Address:      input.Address,
		Email:        input.Email,
		RegisteredAt: time.Now(),
	}

	if err := s.customerRepo.Create(customer); err != nil {
		if isDuplicateError(err) {
			return nil, ErrCustomerEmailTaken
		}
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return customer, nil
}

// Get returns a customer with its vehicles
func (s *CustomerService) Get(customerID uint64) (*models.Customer, error) {
	customer, err := s.customerRepo.FindByID(customerID, "Vehicles")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}

	return customer, nil
}

// List returns customers matching an optional search term
func (s *CustomerService) List(search string, page, pageSize int) ([]models.Customer, int64, error) {
	customers, total, err := s.customerRepo.List(search, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}

	return customers, total, nil
}

// Update applies a partial update to a customer
func (s *CustomerService) Update(customerID uint64, input UpdateCustomerInput) (*models.Customer, error) {
	customer, err := s.customerRepo.FindByID(customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}

	if input.FirstName != nil {
		customer.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		customer.LastName = *input.LastName
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}

	if err := s.customerRepo.Update(customer); err != nil {
		if isDuplicateError(err) {
			return nil, ErrCustomerEmailTaken
		}
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return customer, nil
}

// Delete removes a customer
func (s *CustomerService) Delete(customerID uint64) error {
	if _, err := s.customerRepo.FindByID(customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("failed to find customer: %w", err)
	}

	if err := s.customerRepo.Delete(customerID); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	return nil
}
