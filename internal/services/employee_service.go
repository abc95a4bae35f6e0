package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/workshop-manager/workshop-manager/internal/models"
	"github.com/workshop-manager/workshop-manager/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeEmailTaken = errors.New("employee email is already registered")
)

// EmployeeService handles staff registry logic
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(employeeRepo repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo}
}

// CreateEmployeeInput represents input for registering an employee
type CreateEmployeeInput struct {
	Name     string
	Position string
	Phone    string
	Email    string
}

// UpdateEmployeeInput represents a partial update of an employee
type UpdateEmployeeInput struct {
	Name     *string
	Position *string
	Phone    *string
	Email    *string
}

// Create registers an employee
func (s *EmployeeService) Create(input CreateEmployeeInput) (*models.Employee, error) {
	employee := &models.Employee{
		Name:     input.Name,
		Position: input.Position,
		Phone:    input.Phone,
		Email:    input.Email,
	}

	if err := s.employeeRepo.Create(employee); err != nil {
		if isDuplicateError(err) {
			return nil, ErrEmployeeEmailTaken
		}
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	return employee, nil
}

// Get returns an employee
func (s *EmployeeService) Get(employeeID uint64) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByID(employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}

	return employee, nil
}

// List returns employees
func (s *EmployeeService) List(page, pageSize int) ([]models.Employee, int64, error) {
	employees, total, err := s.employeeRepo.List(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}

	return employees, total, nil
}

// Update applies a partial update to an employee
func (s *EmployeeService) Update(employeeID uint64, input UpdateEmployeeInput) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByID(employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}

	if input.Name != nil {
		employee.Name = *input.Name
	}
	if input.Position != nil {
		employee.Position = *input.Position
	}
	if input.Phone != nil {
		employee.Phone = *input.Phone
	}
	if input.Email != nil {
		employee.Email = *input.Email
	}

	if err := s.employeeRepo.Update(employee); err != nil {
		if isDuplicateError(err) {
			return nil, ErrEmployeeEmailTaken
		}
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	return employee, nil
}

// Delete removes an employee
func (s *EmployeeService) Delete(employeeID uint64) error {
	if _, err := s.employeeRepo.FindByID(employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to find employee: %w", err)
	}

	if err := s.employeeRepo.Delete(employeeID); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	return nil
}

// isDuplicateError reports whether err is a unique constraint violation.
// MySQL and SQLite word it differently and gorm only translates some cases.
func isDuplicateError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
