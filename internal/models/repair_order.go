package models

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusInProgress     OrderStatus = "in_progress"
	OrderStatusAwaitingParts  OrderStatus = "awaiting_parts"
	OrderStatusReadyForReview OrderStatus = "ready_for_review"
	OrderStatusCompleted      OrderStatus = "completed"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusAwaitingParts,
		OrderStatusReadyForReview, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

type VehicleCondition string

const (
	ConditionExcellent VehicleCondition = "excellent"
	ConditionGood      VehicleCondition = "good"
	ConditionFair      VehicleCondition = "fair"
	ConditionPoor      VehicleCondition = "poor"
	ConditionCritical  VehicleCondition = "critical"
)

func (c VehicleCondition) Valid() bool {
	switch c {
	case ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor, ConditionCritical:
		return true
	}
	return false
}

// RepairOrder ties a vehicle to a requested service and tracks its progress.
// IntakeAt is set once at creation. ExitAt is set exactly once, the first
// time the status reaches completed, and is never cleared afterwards.
type RepairOrder struct {
	ID         uint64           `gorm:"primarykey" json:"id"`
	VehicleID  uint64           `gorm:"not null" json:"vehicle_id"`
	ServiceID  uint64           `gorm:"not null" json:"service_id"`
	MechanicID *uint64          `gorm:"index" json:"mechanic_id"`
	IntakeAt   time.Time        `gorm:"not null" json:"intake_at"`
	ExitAt     *time.Time       `json:"exit_at"`
	Condition  VehicleCondition `gorm:"type:varchar(20);not null;default:'fair'" json:"condition"`
	Status     OrderStatus      `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes      string           `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
	DeletedAt  gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relations
	Vehicle  Vehicle   `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Service  Service   `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Mechanic *Employee `gorm:"foreignKey:MechanicID" json:"mechanic,omitempty"`
	Tasks    []Task    `gorm:"foreignKey:RepairOrderID" json:"tasks,omitempty"`
}
