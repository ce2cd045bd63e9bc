package services

import (
	"fmt"
	"time"

	apierrors "github.com/yukikurage/daily-planner-api/internal/errors"
	"github.com/yukikurage/daily-planner-api/internal/models"
	"github.com/yukikurage/daily-planner-api/internal/planner"
	"github.com/yukikurage/daily-planner-api/internal/repository"
)

// DailyTaskService handles daily tasks, both templated and adhoc
type DailyTaskService struct {
	taskRepo repository.DailyTaskRepository
	location *time.Location
	now      func() time.Time
}

// NewDailyTaskService creates a new DailyTaskService. loc is used to
// interpret calendar dates of completion filters.
func NewDailyTaskService(taskRepo repository.DailyTaskRepository, loc *time.Location) *DailyTaskService {
	if loc == nil {
		loc = time.Local
	}
	return &DailyTaskService{
		taskRepo: taskRepo,
		location: loc,
		now:      time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (s *DailyTaskService) WithClock(now func() time.Time) *DailyTaskService {
	s.now = now
	return s
}

// UpdateDailyTaskInput represents input for updating a daily task. Nil fields
// are left unchanged.
type UpdateDailyTaskInput struct {
	Title     *string
	Order     *int
	DueDate   *time.Time
	Completed *bool
	LabelIDs  *[]string
}

// GetTask returns a daily task of the user
func (s *DailyTaskService) GetTask(userID, taskID uint64) (*models.DailyTask, error) {
	task, err := s.taskRepo.FindByID(userID, taskID)
	if err != nil {
		return nil, storageError(err, "Daily task", "find daily task")
	}
	return task, nil
}

// UpdateTask applies input to a daily task. A completed change goes through
// the completion transitions.
func (s *DailyTaskService) UpdateTask(userID, taskID uint64, input UpdateDailyTaskInput) (*models.DailyTask, error) {
	patch := repository.DailyTaskPatch{
		Order:     input.Order,
		DueDate:   input.DueDate,
		Completed: input.Completed,
		LabelIDs:  input.LabelIDs,
		Now:       s.now(),
	}

	if input.Title != nil {
		title, err := planner.NormalizeTitle("title", *input.Title)
		if err != nil {
			return nil, err
		}
		patch.Title = &title
	}
	if input.Order != nil && *input.Order < 0 {
		return nil, apierrors.NewValidationError("order", "Order must not be negative")
	}

	task, err := s.taskRepo.Update(userID, taskID, patch)
	if err != nil {
		return nil, storageError(err, "Daily task", "update daily task")
	}
	return task, nil
}

// CompleteTask marks a daily task done. Adhoc tasks leave the open queue.
func (s *DailyTaskService) CompleteTask(userID, taskID uint64) (*models.DailyTask, error) {
	completed := true
	return s.UpdateTask(userID, taskID, UpdateDailyTaskInput{Completed: &completed})
}

// ReopenTask marks a daily task open again. Adhoc tasks rejoin the open
// queue at its end.
func (s *DailyTaskService) ReopenTask(userID, taskID uint64) (*models.DailyTask, error) {
	completed := false
	return s.UpdateTask(userID, taskID, UpdateDailyTaskInput{Completed: &completed})
}

// DeleteTask removes a daily task
func (s *DailyTaskService) DeleteTask(userID, taskID uint64) error {
	if err := s.taskRepo.Delete(userID, taskID); err != nil {
		return storageError(err, "Daily task", "delete daily task")
	}
	return nil
}

// CreateAdhocInput represents input for creating an adhoc task
type CreateAdhocInput struct {
	UserID   uint64
	Title    string
	DueDate  time.Time
	LabelIDs []string
}

// CreateAdhoc appends a new adhoc task to the user's open queue
func (s *DailyTaskService) CreateAdhoc(input CreateAdhocInput) (*models.DailyTask, error) {
	title, err := planner.NormalizeTitle("title", input.Title)
	if err != nil {
		return nil, err
	}
	if input.DueDate.IsZero() {
		return nil, apierrors.NewValidationError("due_date", "Due date is required")
	}

	task := &models.DailyTask{
		UserID:  input.UserID,
		Title:   title,
		DueDate: input.DueDate,
	}
	if err := s.taskRepo.CreateAdhoc(task, input.LabelIDs); err != nil {
		return nil, storageError(err, "Daily task", "create adhoc task")
	}

	return s.GetTask(input.UserID, task.ID)
}

// ListAdhocInput represents filters for listing adhoc tasks
type ListAdhocInput struct {
	UserID    uint64
	Completed bool
	// Date restricts completed tasks to those completed on that calendar
	// date. It is ignored for open tasks.
	Date *time.Time
}

// ListAdhoc lists open adhoc tasks in queue order, or completed ones most
// recently completed first
func (s *DailyTaskService) ListAdhoc(input ListAdhocInput) ([]models.DailyTask, error) {
	filter := repository.AdhocFilter{
		UserID:    input.UserID,
		Completed: input.Completed,
	}
	if input.Completed && input.Date != nil {
		y, m, d := input.Date.Date()
		from := time.Date(y, m, d, 0, 0, 0, 0, s.location)
		before := from.AddDate(0, 0, 1)
		filter.CompletedFrom = &from
		filter.CompletedBefore = &before
	}

	tasks, err := s.taskRepo.ListAdhoc(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list adhoc tasks: %w", err)
	}
	return tasks, nil
}
