package models

import (
	"time"

	"gorm.io/gorm"
)

type Customer struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	FirstName    string         `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string         `gorm:"type:varchar(100);not null" json:"last_name"`
	Phone        string         `gorm:"type:varchar(15)" json:"phone"`
	Address      string         `gorm:"type:varchar(255)" json:"address"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	RegisteredAt time.Time      `json:"registered_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Vehicles []Vehicle `gorm:"foreignKey:CustomerID" json:"vehicles,omitempty"`
}
