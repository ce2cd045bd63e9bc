package models

import (
	"time"
)

// DailyTaskList is the schedule of one user for one calendar date.
type DailyTaskList struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	UserID     uint64    `gorm:"not null;uniqueIndex:idx_daily_task_lists_user_date" json:"user_id"`
	Date       time.Time `gorm:"type:date;not null;uniqueIndex:idx_daily_task_lists_user_date" json:"date"`
	TemplateID uint64    `gorm:"not null;index" json:"template_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Template Template    `gorm:"foreignKey:TemplateID" json:"template,omitempty"`
	Tasks    []DailyTask `gorm:"foreignKey:DailyTaskListID" json:"tasks,omitempty"`
}
