package dto

import (
	"time"

	"github.com/yukikurage/daily-planner-api/internal/models"
	"github.com/yukikurage/daily-planner-api/internal/utils"
)

// LabelDTO represents a label in API responses
type LabelDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// LabelListResponse represents the user's labels
type LabelListResponse struct {
	Labels []LabelDTO `json:"labels"`
}

// ListRefDTO points from a daily task back to its list
type ListRefDTO struct {
	ID   uint64 `json:"id"`
	Date string `json:"date"`
}

// TemplateTaskRefDTO points from a daily task back to the template task it
// was materialized from
type TemplateTaskRefDTO struct {
	ID            uint64 `json:"id"`
	TaskTitle     string `json:"task_title"`
	TemplateTitle string `json:"template_title"`
}

// DailyTaskDTO represents a daily task in API responses
type DailyTaskDTO struct {
	ID            uint64              `json:"id"`
	Title         string              `json:"title"`
	DueDate       string              `json:"due_date"`
	Completed     bool                `json:"completed"`
	CompletedAt   *time.Time          `json:"completed_at"`
	Order         int                 `json:"order"`
	IsAdhoc       bool                `json:"is_adhoc"`
	Labels        []LabelDTO          `json:"labels"`
	DailyTaskList *ListRefDTO         `json:"daily_task_list"`
	TemplateTask  *TemplateTaskRefDTO `json:"template_task"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// AdhocListResponse represents a list of adhoc tasks
type AdhocListResponse struct {
	Tasks []DailyTaskDTO `json:"tasks"`
}

// DailyTaskListDTO represents a materialized schedule
type DailyTaskListDTO struct {
	ID            uint64         `json:"id"`
	Date          string         `json:"date"`
	TemplateID    uint64         `json:"template_id"`
	TemplateTitle string         `json:"template_title"`
	Tasks         []DailyTaskDTO `json:"tasks"`
	CreatedAt     time.Time      `json:"created_at"`
}

// DailyTaskListsResponse represents a page of schedules
type DailyTaskListsResponse struct {
	Lists      []DailyTaskListDTO       `json:"daily_task_lists"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToLabelDTO converts a Label model to LabelDTO
func ToLabelDTO(label models.Label) LabelDTO {
	return LabelDTO{
		ID:    label.ID,
		Name:  label.Name,
		Color: label.Color,
	}
}

func ToLabelListResponse(labels []models.Label) LabelListResponse {
	items := make([]LabelDTO, len(labels))
	for i, label := range labels {
		items[i] = ToLabelDTO(label)
	}
	return LabelListResponse{Labels: items}
}

// ToDailyTaskDTO converts a DailyTask model. References are included when
// their relations were preloaded.
func ToDailyTaskDTO(task models.DailyTask) DailyTaskDTO {
	dto := DailyTaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		DueDate:     utils.FormatDate(task.DueDate),
		Completed:   task.Completed,
		CompletedAt: task.CompletedAt,
		Order:       task.Order,
		IsAdhoc:     task.IsAdhoc,
		Labels:      make([]LabelDTO, len(task.Labels)),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	for i, label := range task.Labels {
		dto.Labels[i] = ToLabelDTO(label)
	}

	if task.DailyTaskList != nil {
		dto.DailyTaskList = &ListRefDTO{
			ID:   task.DailyTaskList.ID,
			Date: utils.FormatDate(task.DailyTaskList.Date),
		}
	}
	if task.TemplateTask != nil {
		dto.TemplateTask = &TemplateTaskRefDTO{
			ID:            task.TemplateTask.ID,
			TaskTitle:     task.TemplateTask.Task.Title,
			TemplateTitle: task.TemplateTask.Template.Title,
		}
	}

	return dto
}

func ToAdhocListResponse(tasks []models.DailyTask) AdhocListResponse {
	items := make([]DailyTaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToDailyTaskDTO(task)
	}
	return AdhocListResponse{Tasks: items}
}

// ToDailyTaskListDTO converts a DailyTaskList model with its tasks
func ToDailyTaskListDTO(list models.DailyTaskList) DailyTaskListDTO {
	tasks := make([]DailyTaskDTO, len(list.Tasks))
	for i, task := range list.Tasks {
		tasks[i] = ToDailyTaskDTO(task)
	}

	return DailyTaskListDTO{
		ID:            list.ID,
		Date:          utils.FormatDate(list.Date),
		TemplateID:    list.TemplateID,
		TemplateTitle: list.Template.Title,
		Tasks:         tasks,
		CreatedAt:     list.CreatedAt,
	}
}

// ToDailyTaskListsResponse converts a page of lists
func ToDailyTaskListsResponse(lists []models.DailyTaskList, params utils.PaginationParams, total int64) DailyTaskListsResponse {
	items := make([]DailyTaskListDTO, len(lists))
	for i, list := range lists {
		items[i] = ToDailyTaskListDTO(list)
	}

	return DailyTaskListsResponse{
		Lists: items,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}
}
