package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	Title         string         `gorm:"type:varchar(200);not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	Status        TaskStatus     `gorm:"type:varchar(20);not null;default:'todo'" json:"status"`
	Priority      TaskPriority   `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	DueDate       *time.Time     `json:"due_date"`
	RepairOrderID *uint64        `gorm:"index" json:"repair_order_id"`
	CreatorID     uint64         `gorm:"not null" json:"creator_id"`
	AssigneeID    *uint64        `gorm:"index" json:"assignee_id"`
	UpdatedByID   *uint64        `json:"updated_by_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	RepairOrder *RepairOrder  `gorm:"foreignKey:RepairOrderID" json:"repair_order,omitempty"`
	Creator     User          `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Assignee    *User         `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	UpdatedBy   *User         `gorm:"foreignKey:UpdatedByID" json:"updated_by,omitempty"`
	History     []TaskHistory `gorm:"foreignKey:TaskID" json:"history,omitempty"`
}
