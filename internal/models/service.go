package models

import (
	"time"

	"gorm.io/gorm"
)

// Service is one entry of the workshop's catalog of offered work.
type Service struct {
	ID              uint64         `gorm:"primarykey" json:"id"`
	Name            string         `gorm:"type:varchar(100);not null" json:"name"`
	Description     string         `gorm:"type:text" json:"description"`
	Cost            float64        `gorm:"type:decimal(10,2);not null" json:"cost"`
	DurationMinutes int            `gorm:"not null" json:"duration_minutes"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
