package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/daily-planner-api/internal/database"
	apierrors "github.com/yukikurage/daily-planner-api/internal/errors"
	"github.com/yukikurage/daily-planner-api/internal/models"
	"github.com/yukikurage/daily-planner-api/internal/planner"
	"github.com/yukikurage/daily-planner-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDailyTaskListRepository is a GORM implementation of DailyTaskListRepository
type GormDailyTaskListRepository struct {
	db *gorm.DB
}

// NewDailyTaskListRepository creates a new DailyTaskListRepository
func NewDailyTaskListRepository(db *gorm.DB) DailyTaskListRepository {
	return &GormDailyTaskListRepository{db: db}
}

func orderedDailyTasks(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC, id ASC")
}

// Materialize creates list and one daily task per template task, all or
// nothing. The template is read under the user lock, so the tasks reflect
// the template as of this transaction. list.Tasks holds the created tasks.
func (r *GormDailyTaskListRepository) Materialize(list *models.DailyTaskList) error {
	list.Date = utils.DateOnly(list.Date)

	err := withUserLock(r.db, list.UserID, func(tx *gorm.DB) error {
		var template models.Template
		err := tx.Where("user_id = ?", list.UserID).
			Preload("TemplateTasks", orderedTemplateTasks).
			Preload("TemplateTasks.Task").
			First(&template, list.TemplateID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apierrors.NotFoundError{Resource: "Template"}
			}
			return err
		}
		if err := planner.ValidateMaterialization(template, list.UserID); err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.DailyTaskList{}).
			Where("user_id = ? AND date = ?", list.UserID, list.Date).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return duplicateListError(list.Date)
		}

		if err := tx.Omit(clause.Associations).Create(list).Error; err != nil {
			return err
		}

		tasks := planner.Materialize(*list, template.TemplateTasks)
		if len(tasks) > 0 {
			if err := tx.Omit(clause.Associations).Create(&tasks).Error; err != nil {
				return err
			}
		}
		list.Tasks = tasks
		list.Template = template
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return duplicateListError(list.Date)
	}
	return err
}

func duplicateListError(date time.Time) error {
	return &apierrors.ConflictError{
		Message: fmt.Sprintf("Daily task list already exists for %s", utils.FormatDate(date)),
	}
}

// FindByID finds a list owned by the user with its ordered tasks
func (r *GormDailyTaskListRepository) FindByID(userID, id uint64) (*models.DailyTaskList, error) {
	var list models.DailyTaskList
	err := r.withDetails(r.db).
		Where("user_id = ?", userID).
		First(&list, id).Error
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// FindByDate finds the user's list for a calendar date
func (r *GormDailyTaskListRepository) FindByDate(userID uint64, date time.Time) (*models.DailyTaskList, error) {
	var list models.DailyTaskList
	err := r.withDetails(r.db).
		Where("user_id = ? AND date = ?", userID, utils.DateOnly(date)).
		First(&list).Error
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *GormDailyTaskListRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Template").
		Preload("Tasks", orderedDailyTasks).
		Preload("Tasks.Labels")
}

// List retrieves lists with filtering and pagination, newest date first
func (r *GormDailyTaskListRepository) List(filter DailyTaskListFilter) ([]models.DailyTaskList, int64, error) {
	query := r.db.Model(&models.DailyTaskList{}).
		Scopes(database.OwnedBy(filter.UserID), database.DateBetween("date", filter.StartDate, filter.EndDate)).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var lists []models.DailyTaskList
	err := r.withDetails(query).
		Scopes(database.Paginate(filter.Params)).
		Order("date DESC").
		Find(&lists).Error
	if err != nil {
		return nil, 0, err
	}
	return lists, total, nil
}

// Delete removes a list together with its daily tasks and their label links
func (r *GormDailyTaskListRepository) Delete(userID, id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var list models.DailyTaskList
		if err := tx.Where("user_id = ?", userID).First(&list, id).Error; err != nil {
			return err
		}

		taskIDs := tx.Model(&models.DailyTask{}).Select("id").Where("daily_task_list_id = ?", id)
		if err := tx.Where("daily_task_id IN (?)", taskIDs).Delete(&models.DailyTaskLabel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("daily_task_list_id = ?", id).Delete(&models.DailyTask{}).Error; err != nil {
			return err
		}
		return tx.Delete(&list).Error
	})
}
