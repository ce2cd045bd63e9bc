package repository

import (
	"github.com/yukikurage/daily-planner-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Omit(clause.Associations).Create(task).Error
}

// FindByID finds a task owned by the user
func (r *GormTaskRepository) FindByID(userID, id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("user_id = ?", userID).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List returns the user's tasks ordered by title, with the templates using them
func (r *GormTaskRepository) List(userID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("user_id = ?", userID).
		Preload("TemplateTasks").
		Preload("TemplateTasks.Template").
		Order("title ASC, id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update saves the title of a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Model(task).Select("title", "updated_at").Updates(task).Error
}

// Delete removes a task and its template memberships, detaching daily tasks
// created from them. Daily tasks keep their copied titles.
func (r *GormTaskRepository) Delete(userID, id uint64) (int64, error) {
	var removedFrom int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.Where("user_id = ?", userID).First(&task, id).Error; err != nil {
			return err
		}

		var templateTaskIDs []uint64
		if err := tx.Model(&models.TemplateTask{}).Where("task_id = ?", id).Pluck("id", &templateTaskIDs).Error; err != nil {
			return err
		}

		if err := detachTemplateTasks(tx, templateTaskIDs); err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.TemplateTask{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&task).Error; err != nil {
			return err
		}

		removedFrom = int64(len(templateTaskIDs))
		return nil
	})
	return removedFrom, err
}
