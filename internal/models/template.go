package models

import (
	"time"

	"github.com/lib/pq"
)

type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays lists every weekday in calendar order, starting on Monday.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// WeekdayOf returns the weekday a calendar date falls on.
func WeekdayOf(date time.Time) Weekday {
	return Weekday(date.Weekday().String())
}

// Template is a named, ordered set of library tasks scheduled on weekdays.
type Template struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	UserID    uint64         `gorm:"not null;index" json:"user_id"`
	Title     string         `gorm:"type:varchar(255);not null" json:"title"`
	Weekdays  pq.StringArray `gorm:"type:text" json:"weekdays"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	// Relations
	TemplateTasks  []TemplateTask  `gorm:"foreignKey:TemplateID" json:"template_tasks,omitempty"`
	DailyTaskLists []DailyTaskList `gorm:"foreignKey:TemplateID" json:"-"`
}

// WeekdaySet returns the template weekdays as typed values.
func (t Template) WeekdaySet() []Weekday {
	days := make([]Weekday, 0, len(t.Weekdays))
	for _, d := range t.Weekdays {
		days = append(days, Weekday(d))
	}
	return days
}

// HasWeekday reports whether the template is assigned to the given weekday.
func (t Template) HasWeekday(day Weekday) bool {
	for _, d := range t.Weekdays {
		if Weekday(d) == day {
			return true
		}
	}
	return false
}

// TemplateTask binds a library task into a template at a position.
type TemplateTask struct {
	ID         uint64 `gorm:"primarykey" json:"id"`
	TemplateID uint64 `gorm:"not null;uniqueIndex:idx_template_tasks_template_task" json:"template_id"`
	TaskID     uint64 `gorm:"not null;uniqueIndex:idx_template_tasks_template_task;index" json:"task_id"`
	Order      int    `gorm:"column:sort_order;not null" json:"order"`

	// Relations
	Template Template `gorm:"foreignKey:TemplateID" json:"-"`
	Task     Task     `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
