package services

import (
	"errors"
	"fmt"
	"time"

	apierrors "github.com/yukikurage/daily-planner-api/internal/errors"
	"github.com/yukikurage/daily-planner-api/internal/models"
	"github.com/yukikurage/daily-planner-api/internal/planner"
	"github.com/yukikurage/daily-planner-api/internal/repository"
	"github.com/yukikurage/daily-planner-api/internal/utils"
	"gorm.io/gorm"
)

// ScheduleService materializes templates into daily task lists and reads
// them back
type ScheduleService struct {
	listRepo     repository.DailyTaskListRepository
	templateRepo repository.TemplateRepository
	location     *time.Location
	now          func() time.Time
}

// NewScheduleService creates a new ScheduleService. loc decides which
// calendar date "today" is.
func NewScheduleService(listRepo repository.DailyTaskListRepository, templateRepo repository.TemplateRepository, loc *time.Location) *ScheduleService {
	if loc == nil {
		loc = time.Local
	}
	return &ScheduleService{
		listRepo:     listRepo,
		templateRepo: templateRepo,
		location:     loc,
		now:          time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (s *ScheduleService) WithClock(now func() time.Time) *ScheduleService {
	s.now = now
	return s
}

// Today returns the current calendar date in the service location.
func (s *ScheduleService) Today() time.Time {
	return utils.DateOnly(s.now().In(s.location))
}

// MaterializeInput represents input for creating a daily task list
type MaterializeInput struct {
	UserID uint64
	Date   time.Time
	// TemplateID selects the template; when nil the template assigned to
	// the date's weekday is used
	TemplateID *uint64
}

// Materialize creates the user's list for a date from a template. The list
// is a one-time copy; later template edits do not change it.
func (s *ScheduleService) Materialize(input MaterializeInput) (*models.DailyTaskList, error) {
	date := utils.DateOnly(input.Date)

	template, err := s.resolveTemplate(input.UserID, date, input.TemplateID)
	if err != nil {
		return nil, err
	}
	if err := planner.ValidateMaterialization(*template, input.UserID); err != nil {
		return nil, err
	}

	if _, err := s.listRepo.FindByDate(input.UserID, date); err == nil {
		return nil, &apierrors.ConflictError{
			Message: fmt.Sprintf("Daily task list already exists for %s", utils.FormatDate(date)),
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check daily task list: %w", err)
	}

	list := &models.DailyTaskList{
		UserID:     input.UserID,
		Date:       date,
		TemplateID: template.ID,
	}
	if err := s.listRepo.Materialize(list); err != nil {
		return nil, storageError(err, "Template", "materialize daily task list")
	}

	return s.GetList(input.UserID, list.ID)
}

func (s *ScheduleService) resolveTemplate(userID uint64, date time.Time, templateID *uint64) (*models.Template, error) {
	if templateID != nil {
		template, err := s.templateRepo.FindByID(userID, *templateID)
		if err != nil {
			return nil, storageError(err, "Template", "find template")
		}
		return template, nil
	}

	templates, err := s.templateRepo.List(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	day := models.WeekdayOf(date)
	template, ok := planner.TemplateForWeekday(templates, day)
	if !ok {
		return nil, apierrors.NewValidationError("template_id",
			fmt.Sprintf("No template is assigned to %s; choose a template", day))
	}
	return &template, nil
}

// MaterializeToday creates today's list from the template assigned to
// today's weekday.
func (s *ScheduleService) MaterializeToday(userID uint64) (*models.DailyTaskList, error) {
	return s.Materialize(MaterializeInput{UserID: userID, Date: s.Today()})
}

// GetList returns a list of the user with its ordered tasks
func (s *ScheduleService) GetList(userID, listID uint64) (*models.DailyTaskList, error) {
	list, err := s.listRepo.FindByID(userID, listID)
	if err != nil {
		return nil, storageError(err, "Daily task list", "find daily task list")
	}
	return list, nil
}

// GetListByDate returns the user's list for a calendar date
func (s *ScheduleService) GetListByDate(userID uint64, date time.Time) (*models.DailyTaskList, error) {
	list, err := s.listRepo.FindByDate(userID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apierrors.NotFoundError{
				Resource: "Daily task list",
				Message:  fmt.Sprintf("No task list created for %s", utils.FormatDate(date)),
			}
		}
		return nil, fmt.Errorf("failed to find daily task list: %w", err)
	}
	return list, nil
}

// GetTodayList returns the user's list for today
func (s *ScheduleService) GetTodayList(userID uint64) (*models.DailyTaskList, error) {
	today := s.Today()
	list, err := s.GetListByDate(userID, today)
	var notFound *apierrors.NotFoundError
	if errors.As(err, &notFound) {
		notFound.Message = fmt.Sprintf("No task list created for today (%s)", utils.FormatDate(today))
	}
	return list, err
}

// ListInput represents filters for listing daily task lists
type ListInput struct {
	UserID    uint64
	StartDate *time.Time
	EndDate   *time.Time
	Params    utils.PaginationParams
}

// ListLists returns the user's lists, newest date first
func (s *ScheduleService) ListLists(input ListInput) ([]models.DailyTaskList, int64, error) {
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return nil, 0, apierrors.NewValidationError("end_date", "end_date must not be before start_date")
	}

	lists, total, err := s.listRepo.List(repository.DailyTaskListFilter{
		UserID:    input.UserID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Params:    input.Params,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list daily task lists: %w", err)
	}
	return lists, total, nil
}

// DeleteList removes a list and its daily tasks
func (s *ScheduleService) DeleteList(userID, listID uint64) error {
	if err := s.listRepo.Delete(userID, listID); err != nil {
		return storageError(err, "Daily task list", "delete daily task list")
	}
	return nil
}
