package dto

import (
	"sort"
	"time"

	"github.com/yukikurage/daily-planner-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64 `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// TaskDTO represents a library task in API responses
type TaskDTO struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskListItemDTO represents a library task with the templates using it
type TaskListItemDTO struct {
	TaskDTO
	TemplateCount int      `json:"template_count"`
	TemplateNames []string `json:"template_names"`
}

// TaskListResponse represents the user's task library
type TaskListResponse struct {
	Tasks []TaskListItemDTO `json:"tasks"`
}

// TaskDeleteResponse reports how many templates lost the deleted task
type TaskDeleteResponse struct {
	Message       string `json:"message"`
	TemplateCount int64  `json:"template_count"`
}

// SuggestedTaskDTO is a title proposed by the AI service
type SuggestedTaskDTO struct {
	Title string `json:"title"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:        task.ID,
		Title:     task.Title,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}

// ToTaskListItemDTO converts a Task model with preloaded template tasks
func ToTaskListItemDTO(task models.Task) TaskListItemDTO {
	names := make([]string, 0, len(task.TemplateTasks))
	for _, tt := range task.TemplateTasks {
		if tt.Template.ID != 0 {
			names = append(names, tt.Template.Title)
		}
	}
	sort.Strings(names)

	return TaskListItemDTO{
		TaskDTO:       ToTaskDTO(task),
		TemplateCount: len(task.TemplateTasks),
		TemplateNames: names,
	}
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task) TaskListResponse {
	items := make([]TaskListItemDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskListItemDTO(task)
	}
	return TaskListResponse{Tasks: items}
}
