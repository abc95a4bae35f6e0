package models

import "time"

// TaskHistory is an append-only audit record for a task. Entries are never
// updated or deleted on their own; they go away only when the task does.
type TaskHistory struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	TaskID      uint64    `gorm:"not null;index" json:"task_id"`
	UserID      *uint64   `json:"user_id"`
	Action      string    `gorm:"type:varchar(50);not null" json:"action"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Task Task  `gorm:"foreignKey:TaskID" json:"-"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
