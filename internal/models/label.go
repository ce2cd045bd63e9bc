package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Label struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_labels_user_name" json:"user_id"`
	Name      string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_labels_user_name" json:"name"`
	Color     string    `gorm:"type:varchar(7);not null" json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a random UUID when the label has no id yet.
func (l *Label) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// DailyTaskLabel is the join row between a daily task and a label.
type DailyTaskLabel struct {
	DailyTaskID uint64    `gorm:"primaryKey" json:"daily_task_id"`
	LabelID     string    `gorm:"type:varchar(36);primaryKey" json:"label_id"`
	CreatedAt   time.Time `json:"created_at"`
}
