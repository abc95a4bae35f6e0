package services

import (
	"errors"
	"fmt"

	"github.com/workshop-manager/workshop-manager/internal/models"
	"github.com/workshop-manager/workshop-manager/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrInvalidCost     = errors.New("service cost must not be negative")
	ErrInvalidDuration = errors.New("service duration must be positive")
)

// ServiceCatalogService handles the catalog of offered services
type ServiceCatalogService struct {
	serviceRepo repository.ServiceRepository
}

// NewServiceCatalogService creates a new ServiceCatalogService
func NewServiceCatalogService(serviceRepo repository.ServiceRepository) *ServiceCatalogService {
	return &ServiceCatalogService{serviceRepo: serviceRepo}
}

// CreateServiceInput represents input for adding a catalog service
type CreateServiceInput struct {
	Name            string
	Description     string
	Cost            float64
	DurationMinutes int
}

// UpdateServiceInput represents a partial update of a catalog service
type UpdateServiceInput struct {
	Name            *string
	Description     *string
	Cost            *float64
	DurationMinutes *int
}

// Create adds a service to the catalog
func (s *ServiceCatalogService) Create(input CreateServiceInput) (*models.Service, error) {
	if input.Cost < 0 {
		return nil, ErrInvalidCost
	}
	if input.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	service := &models.Service{
		Name:            input.Name,
		Description:     input.Description,
		Cost:            input.Cost,
		DurationMinutes: input.DurationMinutes,
	}

	if err := s.serviceRepo.Create(service); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	return service, nil
}

// Get returns a catalog service
func (s *ServiceCatalogService) Get(serviceID uint64) (*models.Service, error) {
	service, err := s.serviceRepo.FindByID(serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to find service: %w", err)
	}

	return service, nil
}

// List returns catalog services
func (s *ServiceCatalogService) List(page, pageSize int) ([]models.Service, int64, error) {
	services, total, err := s.serviceRepo.List(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list services: %w", err)
	}

	return services, total, nil
}

// Update applies a partial update to a catalog service
func (s *ServiceCatalogService) Update(serviceID uint64, input UpdateServiceInput) (*models.Service, error) {
	if input.Cost != nil && *input.Cost < 0 {
		return nil, ErrInvalidCost
	}
	if input.DurationMinutes != nil && *input.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	service, err := s.serviceRepo.FindByID(serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to find service: %w", err)
	}

	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.Cost != nil {
		service.Cost = *input.Cost
	}
	if input.DurationMinutes != nil {
		service.DurationMinutes = *input.DurationMinutes
	}

	if err := s.serviceRepo.Update(service); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	return service, nil
}

// Delete removes a catalog service
func (s *ServiceCatalogService) Delete(serviceID uint64) error {
	if _, err := s.serviceRepo.FindByID(serviceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrServiceNotFound
		}
		return fmt.Errorf("failed to find service: %w", err)
	}

	if err := s.serviceRepo.Delete(serviceID); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	return nil
}
