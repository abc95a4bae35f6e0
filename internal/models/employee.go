package models

import (
	"time"

	"gorm.io/gorm"
)

// Position is free text in the store ("Mechanic", "Chief", ...); capability
// checks derive a Capability from it rather than trusting it directly.
type Employee struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(100);not null" json:"name"`
	Position  string         `gorm:"type:varchar(50);not null" json:"position"`
	Phone     string         `gorm:"type:varchar(15)" json:"phone"`
	Email     string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	AssignedOrders []RepairOrder `gorm:"foreignKey:MechanicID" json:"assigned_orders,omitempty"`
}
