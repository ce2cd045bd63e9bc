package models

import (
	"time"
)

// Task is an entry of a user's task library, reusable across templates.
type Task struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	TemplateTasks []TemplateTask `gorm:"foreignKey:TaskID" json:"-"`
}
