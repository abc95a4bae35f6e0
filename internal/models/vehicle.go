package models

import (
	"time"

	"gorm.io/gorm"
)

type Vehicle struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	CustomerID uint64         `gorm:"not null" json:"customer_id"`
	Make       string         `gorm:"type:varchar(50);not null" json:"make"`
	Model      string         `gorm:"type:varchar(50);not null" json:"model"`
	Year       int            `gorm:"not null" json:"year"`
	Plate      string         `gorm:"type:varchar(10);uniqueIndex;not null" json:"plate"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Customer     Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	RepairOrders []RepairOrder `gorm:"foreignKey:VehicleID" json:"repair_orders,omitempty"`
}
