package repository

import (
	"fmt"

	apierrors "github.com/yukikurage/daily-planner-api/internal/errors"
	"github.com/yukikurage/daily-planner-api/internal/models"
	"github.com/yukikurage/daily-planner-api/internal/planner"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTemplateRepository is a GORM implementation of TemplateRepository
type GormTemplateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new TemplateRepository
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &GormTemplateRepository{db: db}
}

func orderedTemplateTasks(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC, id ASC")
}

// Create stores a template and its tasks. Weekday exclusivity and task
// ownership are checked again under the user lock.
func (r *GormTemplateRepository) Create(template *models.Template, tasks []models.TemplateTask) error {
	return withUserLock(r.db, template.UserID, func(tx *gorm.DB) error {
		if err := checkExclusivity(tx, template); err != nil {
			return err
		}
		if err := checkTaskOwnership(tx, template.UserID, tasks); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(template).Error; err != nil {
			return err
		}

		for i := range tasks {
			tasks[i].TemplateID = template.ID
		}
		if len(tasks) > 0 {
			if err := tx.Omit(clause.Associations).Create(&tasks).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Update saves title and weekdays and, when tasks is not nil, replaces the
// task membership. Memberships are matched by task id: kept tasks keep their
// row and only change order, so daily tasks stay attributed to them.
func (r *GormTemplateRepository) Update(template *models.Template, tasks []models.TemplateTask) error {
	return withUserLock(r.db, template.UserID, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Template{}).
			Where("id = ? AND user_id = ?", template.ID, template.UserID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return &apierrors.NotFoundError{Resource: "Template"}
		}

		if err := checkExclusivity(tx, template); err != nil {
			return err
		}

		if err := tx.Model(template).Select("title", "weekdays", "updated_at").Updates(template).Error; err != nil {
			return err
		}

		if tasks == nil {
			return nil
		}
		if err := checkTaskOwnership(tx, template.UserID, tasks); err != nil {
			return err
		}
		return syncTemplateTasks(tx, template.ID, tasks)
	})
}

func syncTemplateTasks(tx *gorm.DB, templateID uint64, tasks []models.TemplateTask) error {
	var existing []models.TemplateTask
	if err := tx.Where("template_id = ?", templateID).Find(&existing).Error; err != nil {
		return err
	}

	byTask := make(map[uint64]models.TemplateTask, len(existing))
	for _, tt := range existing {
		byTask[tt.TaskID] = tt
	}

	var created []models.TemplateTask
	kept := make(map[uint64]bool, len(tasks))
	for _, tt := range tasks {
		kept[tt.TaskID] = true
		current, ok := byTask[tt.TaskID]
		if !ok {
			created = append(created, models.TemplateTask{TemplateID: templateID, TaskID: tt.TaskID, Order: tt.Order})
			continue
		}
		if current.Order != tt.Order {
			if err := tx.Model(&models.TemplateTask{}).
				Where("id = ?", current.ID).
				Update("sort_order", tt.Order).Error; err != nil {
				return err
			}
		}
	}

	var removed []uint64
	for _, tt := range existing {
		if !kept[tt.TaskID] {
			removed = append(removed, tt.ID)
		}
	}
	if len(removed) > 0 {
		if err := detachTemplateTasks(tx, removed); err != nil {
			return err
		}
		if err := tx.Where("id IN ?", removed).Delete(&models.TemplateTask{}).Error; err != nil {
			return err
		}
	}

	if len(created) > 0 {
		if err := tx.Omit(clause.Associations).Create(&created).Error; err != nil {
			return err
		}
	}
	return nil
}

// FindByID finds a template owned by the user with its ordered tasks
func (r *GormTemplateRepository) FindByID(userID, id uint64) (*models.Template, error) {
	var template models.Template
	err := r.db.
		Where("user_id = ?", userID).
		Preload("TemplateTasks", orderedTemplateTasks).
		Preload("TemplateTasks.Task").
		First(&template, id).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// List returns the user's templates ordered by title with their ordered tasks
func (r *GormTemplateRepository) List(userID uint64) ([]models.Template, error) {
	var templates []models.Template
	err := r.db.
		Where("user_id = ?", userID).
		Preload("TemplateTasks", orderedTemplateTasks).
		Preload("TemplateTasks.Task").
		Order("title ASC, id ASC").
		Find(&templates).Error
	if err != nil {
		return nil, err
	}
	return templates, nil
}

// ListWithWeekday returns every template, of any user, assigned to day.
// Weekday names never contain one another, so a substring match on the
// stored array is exact.
func (r *GormTemplateRepository) ListWithWeekday(day models.Weekday) ([]models.Template, error) {
	var candidates []models.Template
	if err := r.db.Where("weekdays LIKE ?", "%"+string(day)+"%").Order("user_id ASC").Find(&candidates).Error; err != nil {
		return nil, err
	}

	templates := make([]models.Template, 0, len(candidates))
	for _, t := range candidates {
		if t.HasWeekday(day) {
			templates = append(templates, t)
		}
	}
	return templates, nil
}

// Delete removes a template and its task memberships. Templates that daily
// task lists were materialized from are protected.
func (r *GormTemplateRepository) Delete(userID, id uint64) error {
	return withUserLock(r.db, userID, func(tx *gorm.DB) error {
		var template models.Template
		if err := tx.Where("user_id = ?", userID).First(&template, id).Error; err != nil {
			return err
		}

		var lists int64
		if err := tx.Model(&models.DailyTaskList{}).Where("template_id = ?", id).Count(&lists).Error; err != nil {
			return err
		}
		if lists > 0 {
			return &apierrors.ConflictError{
				Message: fmt.Sprintf("Template is used by %d daily task list(s) and cannot be deleted", lists),
			}
		}

		var templateTaskIDs []uint64
		if err := tx.Model(&models.TemplateTask{}).Where("template_id = ?", id).Pluck("id", &templateTaskIDs).Error; err != nil {
			return err
		}
		if err := detachTemplateTasks(tx, templateTaskIDs); err != nil {
			return err
		}
		if err := tx.Where("template_id = ?", id).Delete(&models.TemplateTask{}).Error; err != nil {
			return err
		}
		return tx.Delete(&template).Error
	})
}

func checkExclusivity(tx *gorm.DB, template *models.Template) error {
	var others []models.Template
	if err := tx.Where("user_id = ?", template.UserID).Find(&others).Error; err != nil {
		return err
	}
	return planner.CheckWeekdayExclusivity(template.WeekdaySet(), others, template.ID)
}

func checkTaskOwnership(tx *gorm.DB, userID uint64, tasks []models.TemplateTask) error {
	if len(tasks) == 0 {
		return nil
	}

	ids := make([]uint64, len(tasks))
	for i, tt := range tasks {
		ids[i] = tt.TaskID
	}

	var count int64
	if err := tx.Model(&models.Task{}).Where("user_id = ? AND id IN ?", userID, ids).Count(&count).Error; err != nil {
		return err
	}
	if int(count) != len(ids) {
		return &apierrors.NotFoundError{Resource: "Task"}
	}
	return nil
}
