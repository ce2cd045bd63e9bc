package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/daily-planner-api/internal/constants"
	"github.com/yukikurage/daily-planner-api/internal/models"
	"github.com/yukikurage/daily-planner-api/internal/planner"
	"github.com/yukikurage/daily-planner-api/internal/repository"
)

var (
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
)

// TaskService handles the task library
type TaskService struct {
	taskRepo  repository.TaskRepository
	suggester TaskSuggester
}

// NewTaskService creates a new TaskService. suggester may be nil, which
// disables task suggestions.
func NewTaskService(taskRepo repository.TaskRepository, suggester TaskSuggester) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		suggester: suggester,
	}
}

// ListTasks returns the user's library ordered by title
func (s *TaskService) ListTasks(userID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a task of the user
func (s *TaskService) GetTask(userID, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(userID, taskID)
	if err != nil {
		return nil, storageError(err, "Task", "find task")
	}
	return task, nil
}

// CreateTask adds a task to the user's library
func (s *TaskService) CreateTask(userID uint64, title string) (*models.Task, error) {
	title, err := planner.NormalizeTitle("title", title)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		UserID: userID,
		Title:  title,
	}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// UpdateTask renames a task. Daily tasks already created from it keep
// their titles.
func (s *TaskService) UpdateTask(userID, taskID uint64, title string) (*models.Task, error) {
	title, err := planner.NormalizeTitle("title", title)
	if err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(userID, taskID)
	if err != nil {
		return nil, storageError(err, "Task", "find task")
	}

	task.Title = title
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// DeleteTask removes a task from the library and every template using it.
// It returns the number of templates the task was removed from.
func (s *TaskService) DeleteTask(userID, taskID uint64) (int64, error) {
	removedFrom, err := s.taskRepo.Delete(userID, taskID)
	if err != nil {
		return 0, storageError(err, "Task", "delete task")
	}
	return removedFrom, nil
}

// SuggestTasks extracts candidate library task titles from text. Nothing is
// stored.
func (s *TaskService) SuggestTasks(ctx context.Context, text string) ([]SuggestedTask, error) {
	if s.suggester == nil {
		return nil, ErrAIServiceNotConfigured
	}

	suggestions, err := s.suggester.SuggestTasks(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	if len(suggestions) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(suggestions) > constants.MaxAIGeneratedTasks {
		suggestions = suggestions[:constants.MaxAIGeneratedTasks]
	}

	seen := make(map[string]bool, len(suggestions))
	valid := make([]SuggestedTask, 0, len(suggestions))
	for _, suggestion := range suggestions {
		title, err := planner.NormalizeTitle("title", suggestion.Title)
		if err != nil {
			continue
		}
		key := strings.ToLower(title)
		if seen[key] {
			continue
		}
		seen[key] = true
		valid = append(valid, SuggestedTask{Title: title})
	}

	if len(valid) == 0 {
		return nil, ErrAINoValidTasks
	}
	return valid, nil
}
