package services

import (
	"errors"
	"fmt"

	"github.com/workshop-manager/workshop-manager/internal/models"
	"github.com/workshop-manager/workshop-manager/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrVehicleNotFound    = errors.New("vehicle not found")
	ErrPlateTaken         = errors.New("plate is already registered")
	ErrVehicleOwnerAbsent = errors.New("referenced customer does not exist")
	ErrInvalidVehicleYear = errors.New("vehicle year is out of range")
)

// VehicleService handles vehicle registry logic
type VehicleService struct {
	vehicleRepo repository.VehicleRepository
}

// NewVehicleService creates a new VehicleService
func NewVehicleService(vehicleRepo repository.VehicleRepository) *VehicleService {
	return &VehicleService{vehicleRepo: vehicleRepo}
}

// CreateVehicleInput represents input for registering a vehicle
type CreateVehicleInput struct {
	CustomerID uint64
	Make       string
	Model      string
	Year       int
	Plate      string
}

// UpdateVehicleInput represents a partial update of a vehicle
type UpdateVehicleInput struct {
	CustomerID *uint64
	Make       *string
	Model      *string
	Year       *int
	Plate      *string
}

// Create registers a vehicle under an existing customer
func (s *VehicleService) Create(input CreateVehicleInput) (*models.Vehicle, error) {
	if input.Year < 1900 || input.Year > 2100 {
		return nil, ErrInvalidVehicleYear
	}

	if ok, err := s.vehicleRepo.CustomerExists(input.CustomerID); err != nil {
		return nil, fmt.Errorf("failed to verify customer: %w", err)
	} else if !ok {
		return nil, ErrVehicleOwnerAbsent
	}

	vehicle := &models.Vehicle{
		CustomerID: input.CustomerID,
		Make:       input.Make,
		Model:      input.Model,
		Year:       input.Year,
		Plate:      input.Plate,
	}

	if err := s.vehicleRepo.Create(vehicle); err != nil {
		if isDuplicateError(err) {
			return nil, ErrPlateTaken
		}
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	return s.vehicleRepo.FindByID(vehicle.ID, "Customer")
}

// Get returns a vehicle with its owner and repair history
func (s *VehicleService) Get(vehicleID uint64) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindByID(vehicleID, "Customer", "RepairOrders", "RepairOrders.Service")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to find vehicle: %w", err)
	}

	return vehicle, nil
}

// List returns vehicles, optionally scoped to one customer
func (s *VehicleService) List(customerID *uint64, page, pageSize int) ([]models.Vehicle, int64, error) {
	vehicles, total, err := s.vehicleRepo.List(customerID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vehicles: %w", err)
	}

	return vehicles, total, nil
}

// Update applies a partial update to a vehicle
func (s *VehicleService) Update(vehicleID uint64, input UpdateVehicleInput) (*models.Vehicle, error) {
	if input.Year != nil && (*input.Year < 1900 || *input.Year > 2100) {
		return nil, ErrInvalidVehicleYear
	}

	vehicle, err := s.vehicleRepo.FindByID(vehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to find vehicle: %w", err)
	}

	if input.CustomerID != nil {
		if ok, err := s.vehicleRepo.CustomerExists(*input.CustomerID); err != nil {
			return nil, fmt.Errorf("failed to verify customer: %w", err)
		} else if !ok {
			return nil, ErrVehicleOwnerAbsent
		}
		vehicle.CustomerID = *input.CustomerID
	}
	if input.Make != nil {
		vehicle.Make = *input.Make
	}
	if input.Model != nil {
		vehicle.Model = *input.Model
	}
	if input.Year != nil {
		vehicle.Year = *input.Year
	}
	if input.Plate != nil {
		vehicle.Plate = *input.Plate
	}

	if err := s.vehicleRepo.Update(vehicle); err != nil {
		if isDuplicateError(err) {
			return nil, ErrPlateTaken
		}
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}

	return s.vehicleRepo.FindByID(vehicle.ID, "Customer")
}

// Delete removes a vehicle
func (s *VehicleService) Delete(vehicleID uint64) error {
	if _, err := s.vehicleRepo.FindByID(vehicleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVehicleNotFound
		}
		return fmt.Errorf("failed to find vehicle: %w", err)
	}

	if err := s.vehicleRepo.Delete(vehicleID); err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	return nil
}
