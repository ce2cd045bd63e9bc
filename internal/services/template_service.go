package services

import (
	"fmt"

	"github.com/lib/pq"
	"github.com/yukikurage/daily-planner-api/internal/models"
	"github.com/yukikurage/daily-planner-api/internal/planner"
	"github.com/yukikurage/daily-planner-api/internal/repository"
)

// TemplateService handles templates and their weekday assignment
type TemplateService struct {
	templateRepo repository.TemplateRepository
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(templateRepo repository.TemplateRepository) *TemplateService {
	return &TemplateService{templateRepo: templateRepo}
}

// CreateTemplateInput represents input for creating a template
type CreateTemplateInput struct {
	UserID   uint64
	Title    string
	Weekdays []string
	Tasks    []planner.TemplateTaskInput
}

// UpdateTemplateInput represents input for updating a template. Nil fields
// are left unchanged; a non-nil empty Tasks removes every task.
type UpdateTemplateInput struct {
	Title    *string
	Weekdays *[]string
	Tasks    *[]planner.TemplateTaskInput
}

// ListTemplates returns the user's templates ordered by title
func (s *TemplateService) ListTemplates(userID uint64) ([]models.Template, error) {
	templates, err := s.templateRepo.List(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

// GetTemplate returns a template of the user with its ordered tasks
func (s *TemplateService) GetTemplate(userID, templateID uint64) (*models.Template, error) {
	template, err := s.templateRepo.FindByID(userID, templateID)
	if err != nil {
		return nil, storageError(err, "Template", "find template")
	}
	return template, nil
}

// CreateTemplate validates and stores a template. Weekday exclusivity is
// checked here and again inside the write transaction.
func (s *TemplateService) CreateTemplate(input CreateTemplateInput) (*models.Template, error) {
	title, err := planner.NormalizeTitle("title", input.Title)
	if err != nil {
		return nil, err
	}
	weekdays, err := planner.ParseWeekdays(input.Weekdays)
	if err != nil {
		return nil, err
	}
	if err := planner.ValidateTemplateTasks(input.Tasks); err != nil {
		return nil, err
	}
	if err := s.checkWeekdays(input.UserID, weekdays, 0); err != nil {
		return nil, err
	}

	template := &models.Template{
		UserID:   input.UserID,
		Title:    title,
		Weekdays: weekdayArray(weekdays),
	}
	if err := s.templateRepo.Create(template, templateTasks(input.Tasks)); err != nil {
		return nil, storageError(err, "Template", "create template")
	}

	return s.GetTemplate(input.UserID, template.ID)
}

// UpdateTemplate applies input to a template of the user
func (s *TemplateService) UpdateTemplate(userID, templateID uint64, input UpdateTemplateInput) (*models.Template, error) {
	template, err := s.templateRepo.FindByID(userID, templateID)
	if err != nil {
		return nil, storageError(err, "Template", "find template")
	}

	if input.Title != nil {
		title, err := planner.NormalizeTitle("title", *input.Title)
		if err != nil {
			return nil, err
		}
		template.Title = title
	}

	if input.Weekdays != nil {
		weekdays, err := planner.ParseWeekdays(*input.Weekdays)
		if err != nil {
			return nil, err
		}
		if err := s.checkWeekdays(userID, weekdays, templateID); err != nil {
			return nil, err
		}
		template.Weekdays = weekdayArray(weekdays)
	}

	var tasks []models.TemplateTask
	if input.Tasks != nil {
		if err := planner.ValidateTemplateTasks(*input.Tasks); err != nil {
			return nil, err
		}
		tasks = templateTasks(*input.Tasks)
	}

	template.TemplateTasks = nil
	if err := s.templateRepo.Update(template, tasks); err != nil {
		return nil, storageError(err, "Template", "update template")
	}

	return s.GetTemplate(userID, templateID)
}

// DeleteTemplate removes a template that no daily task list was created from
func (s *TemplateService) DeleteTemplate(userID, templateID uint64) error {
	if err := s.templateRepo.Delete(userID, templateID); err != nil {
		return storageError(err, "Template", "delete template")
	}
	return nil
}

// AvailableWeekdays lists the weekdays not used by the user's templates,
// ignoring excludeTemplateID so an edited template can keep its own days.
func (s *TemplateService) AvailableWeekdays(userID, excludeTemplateID uint64) ([]models.Weekday, error) {
	templates, err := s.templateRepo.List(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return planner.AvailableWeekdays(templates, excludeTemplateID), nil
}

func (s *TemplateService) checkWeekdays(userID uint64, weekdays []models.Weekday, templateID uint64) error {
	if len(weekdays) == 0 {
		return nil
	}
	templates, err := s.templateRepo.List(userID)
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}
	return planner.CheckWeekdayExclusivity(weekdays, templates, templateID)
}

func weekdayArray(days []models.Weekday) pq.StringArray {
	values := make(pq.StringArray, len(days))
	for i, day := range days {
		values[i] = string(day)
	}
	return values
}

// templateTasks converts input to memberships. The result is never nil so
// an empty input clears the template.
func templateTasks(inputs []planner.TemplateTaskInput) []models.TemplateTask {
	tasks := make([]models.TemplateTask, len(inputs))
	for i, in := range inputs {
		tasks[i] = models.TemplateTask{TaskID: in.TaskID, Order: in.Order}
	}
	return tasks
}
