package models

import (
	"time"
)

// DailyTask is a concrete task for a date, either materialized from a
// template or created adhoc.
type DailyTask struct {
	ID              uint64     `gorm:"primarykey" json:"id"`
	UserID          uint64     `gorm:"not null;index" json:"user_id"`
	DailyTaskListID *uint64    `gorm:"index" json:"daily_task_list_id"`
	TemplateTaskID  *uint64    `gorm:"index" json:"template_task_id"`
	Title           string     `gorm:"type:varchar(255);not null" json:"title"`
	DueDate         time.Time  `gorm:"type:date;not null" json:"due_date"`
	Completed       bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt     *time.Time `json:"completed_at"`
	Order           int        `gorm:"column:sort_order;not null;default:0" json:"order"`
	IsAdhoc         bool       `gorm:"not null;default:false" json:"is_adhoc"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Relations
	DailyTaskList *DailyTaskList `gorm:"foreignKey:DailyTaskListID" json:"-"`
	TemplateTask  *TemplateTask  `gorm:"foreignKey:TemplateTaskID" json:"-"`
	Labels        []Label        `gorm:"many2many:daily_task_labels" json:"labels,omitempty"`
}
