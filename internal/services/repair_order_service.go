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
	ErrOrderNotFound      = errors.New("repair order not found")
	ErrOrderVehicleAbsent = errors.New("referenced vehicle does not exist")
	ErrOrderServiceAbsent = errors.New("referenced service does not exist")
	ErrAlreadyAssigned    = errors.New("repair order is already assigned to another mechanic")
	ErrInvalidOrderStatus = errors.New("invalid repair order status")
	ErrInvalidCondition   = errors.New("invalid vehicle condition")
)

var orderPreloads = []string{"Vehicle", "Vehicle.Customer", "Service", "Mechanic"}

// RepairOrderService handles the repair order lifecycle
type RepairOrderService struct {
	orderRepo repository.RepairOrderRepository
}

// NewRepairOrderService creates a new RepairOrderService
func NewRepairOrderService(orderRepo repository.RepairOrderRepository) *RepairOrderService {
	return &RepairOrderService{orderRepo: orderRepo}
}

// CreateRepairOrderInput represents input for opening a repair order
type CreateRepairOrderInput struct {
	VehicleID uint64
	ServiceID uint64
	Condition models.VehicleCondition
	Notes     string
}

// UpdateRepairOrderInput represents a partial update of a repair order.
// Note is appended to the existing notes, never overwritten.
type UpdateRepairOrderInput struct {
	Condition *models.VehicleCondition
	Status    *models.OrderStatus
	Note      *string
}

// ListRepairOrdersInput represents filters for listing repair orders
type ListRepairOrdersInput struct {
	Status     *models.OrderStatus
	MechanicID *uint64
	Unassigned bool
	IntakeFrom *time.Time
	IntakeTo   *time.Time
	Page       int
	PageSize   int
}

// Create opens a new repair order with intake stamped to now
func (s *RepairOrderService) Create(input CreateRepairOrderInput) (*models.RepairOrder, error) {
	if ok, err := s.orderRepo.VehicleExists(input.VehicleID); err != nil {
		return nil, fmt.Errorf("failed to verify vehicle: %w", err)
	} else if !ok {
		return nil, ErrOrderVehicleAbsent
	}
	if ok, err := s.orderRepo.ServiceExists(input.ServiceID); err != nil {
		return nil, fmt.Errorf("failed to verify service: %w", err)
	} else if !ok {
		return nil, ErrOrderServiceAbsent
	}

	condition := input.Condition
	if condition == "" {
		condition = models.ConditionFair
	}
	if !condition.Valid() {
		return nil, ErrInvalidCondition
	}

	order := &models.RepairOrder{
		VehicleID: input.VehicleID,
		ServiceID: input.ServiceID,
		IntakeAt:  time.Now(),
		Condition: condition,
		Status:    models.OrderStatusPending,
		Notes:     input.Notes,
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create repair order: %w", err)
	}

	return s.orderRepo.FindByID(order.ID, orderPreloads...)
}

// Get returns a repair order with related data
func (s *RepairOrderService) Get(orderID uint64) (*models.RepairOrder, error) {
	order, err := s.orderRepo.FindByID(orderID, orderPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find repair order: %w", err)
	}

	return order, nil
}

// List returns repair orders matching the filters, ordered by intake
func (s *RepairOrderService) List(input ListRepairOrdersInput) ([]models.RepairOrder, int64, error) {
	filter := repository.RepairOrderFilter{
		Status:     input.Status,
		MechanicID: input.MechanicID,
		Unassigned: input.Unassigned,
		IntakeFrom: input.IntakeFrom,
		IntakeTo:   input.IntakeTo,
		Page:       input.Page,
		PageSize:   input.PageSize,
		Preload:    orderPreloads,
	}

	orders, total, err := s.orderRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list repair orders: %w", err)
	}

	return orders, total, nil
}

// Available returns unassigned pending orders a mechanic can take
func (s *RepairOrderService) Available(page, pageSize int) ([]models.RepairOrder, int64, error) {
	status := models.OrderStatusPending
	return s.List(ListRepairOrdersInput{
		Status:     &status,
		Unassigned: true,
		Page:       page,
		PageSize:   pageSize,
	})
}

// Claim assigns a repair order to a mechanic. A pending order advances to
// in_progress. Claiming an order held by another mechanic fails with
// ErrAlreadyAssigned; re-claiming one's own order is a no-op.
func (s *RepairOrderService) Claim(orderID, mechanicID uint64) (*models.RepairOrder, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find repair order: %w", err)
	}

	if order.MechanicID != nil && *order.MechanicID != mechanicID {
		return nil, ErrAlreadyAssigned
	}

	claimed, err := s.orderRepo.ClaimMechanic(orderID, mechanicID)
	if err != nil {
		return nil, fmt.Errorf("failed to claim repair order: %w", err)
	}
	if !claimed {
		// Lost the race: someone else took it between the read and the write.
		return nil, ErrAlreadyAssigned
	}

	return s.orderRepo.FindByID(orderID, orderPreloads...)
}

// Update applies a partial update. Status transitions are deliberately
// unrestricted; the exit timestamp is guarded independently of whatever
// transition happened: it is set the first time the order reaches
// completed and never touched again.
func (s *RepairOrderService) Update(orderID uint64, input UpdateRepairOrderInput) (*models.RepairOrder, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, ErrInvalidOrderStatus
	}
	if input.Condition != nil && !input.Condition.Valid() {
		return nil, ErrInvalidCondition
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find repair order: %w", err)
	}

	if input.Condition != nil {
		order.Condition = *input.Condition
	}
	if input.Note != nil && *input.Note != "" {
		order.Notes = appendNote(order.Notes, *input.Note, time.Now())
	}
	if input.Status != nil {
		order.Status = *input.Status
	}

	if order.Status == models.OrderStatusCompleted && order.ExitAt == nil {
		now := time.Now()
		order.ExitAt = &now
	}

	if err := s.orderRepo.Update(order); err != nil {
		return nil, fmt.Errorf("failed to update repair order: %w", err)
	}

	return s.orderRepo.FindByID(order.ID, orderPreloads...)
}

// Delete removes a repair order and its tasks
func (s *RepairOrderService) Delete(orderID uint64) error {
	if _, err := s.orderRepo.FindByID(orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to find repair order: %w", err)
	}

	if err := s.orderRepo.Delete(orderID); err != nil {
		return fmt.Errorf("failed to delete repair order: %w", err)
	}

	return nil
}

// appendNote adds note text to existing notes as a timestamped block.
// The very first note goes in bare, matching the historical data format.
func appendNote(existing, note string, now time.Time) string {
	if existing == "" {
		return note
	}
	return existing + "\n\n--- Update " + now.Format("02/01/2006 15:04") + " ---\n" + note
}
