package dto

import (
	"time"

	"github.com/yukikurage/daily-planner-api/internal/models"
)

// TemplateTaskDTO is a library task as positioned inside a template
type TemplateTaskDTO struct {
	ID             uint64 `json:"id"`
	Title          string `json:"title"`
	Order          int    `json:"order"`
	TemplateTaskID uint64 `json:"template_task_id"`
}

// TemplateDTO represents a template in API responses
type TemplateDTO struct {
	ID        uint64            `json:"id"`
	Title     string            `json:"title"`
	Weekdays  []string          `json:"weekdays"`
	Tasks     []TemplateTaskDTO `json:"tasks"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// TemplateListResponse represents the user's templates
type TemplateListResponse struct {
	Templates []TemplateDTO `json:"templates"`
}

// AvailableWeekdaysResponse lists the weekdays no other template uses
type AvailableWeekdaysResponse struct {
	Weekdays []models.Weekday `json:"weekdays"`
}

// ToTemplateDTO converts a Template model with ordered template tasks
func ToTemplateDTO(template models.Template) TemplateDTO {
	weekdays := make([]string, len(template.Weekdays))
	copy(weekdays, template.Weekdays)

	tasks := make([]TemplateTaskDTO, len(template.TemplateTasks))
	for i, tt := range template.TemplateTasks {
		tasks[i] = TemplateTaskDTO{
			ID:             tt.TaskID,
			Title:          tt.Task.Title,
			Order:          tt.Order,
			TemplateTaskID: tt.ID,
		}
	}

	return TemplateDTO{
		ID:        template.ID,
		Title:     template.Title,
		Weekdays:  weekdays,
		Tasks:     tasks,
		CreatedAt: template.CreatedAt,
		UpdatedAt: template.UpdatedAt,
	}
}

// ToTemplateListResponse converts a slice of templates
func ToTemplateListResponse(templates []models.Template) TemplateListResponse {
	items := make([]TemplateDTO, len(templates))
	for i, template := range templates {
		items[i] = ToTemplateDTO(template)
	}
	return TemplateListResponse{Templates: items}
}
