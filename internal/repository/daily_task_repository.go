package repository

import (
	"database/sql"

	"github.com/yukikurage/daily-planner-api/internal/models"
	"github.com/yukikurage/daily-planner-api/internal/planner"
	"github.com/yukikurage/daily-planner-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDailyTaskRepository is a GORM implementation of DailyTaskRepository
type GormDailyTaskRepository struct {
	db *gorm.DB
}

// NewDailyTaskRepository creates a new DailyTaskRepository
func NewDailyTaskRepository(db *gorm.DB) DailyTaskRepository {
	return &GormDailyTaskRepository{db: db}
}

// FindByID finds a daily task owned by the user with its labels, its list and
// the template task it was created from
func (r *GormDailyTaskRepository) FindByID(userID, id uint64) (*models.DailyTask, error) {
	var task models.DailyTask
	err := r.db.
		Where("user_id = ?", userID).
		Preload("Labels", labelsByName).
		Preload("DailyTaskList").
		Preload("TemplateTask.Task").
		Preload("TemplateTask.Template").
		First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func labelsByName(db *gorm.DB) *gorm.DB {
	return db.Order("labels.name ASC")
}

// Update applies patch under the user lock. Field edits are applied first,
// then the completion transition, so reopening an adhoc task always moves it
// to the back of the open queue.
func (r *GormDailyTaskRepository) Update(userID, id uint64, patch DailyTaskPatch) (*models.DailyTask, error) {
	err := withUserLock(r.db, userID, func(tx *gorm.DB) error {
		var task models.DailyTask
		if err := tx.Where("user_id = ?", userID).First(&task, id).Error; err != nil {
			return err
		}

		if patch.Title != nil {
			task.Title = *patch.Title
		}
		if patch.Order != nil {
			task.Order = *patch.Order
		}
		if patch.DueDate != nil {
			task.DueDate = utils.DateOnly(*patch.DueDate)
		}

		if patch.Completed != nil {
			state := planner.StateOf(task)
			if *patch.Completed {
				state = planner.Complete(state, patch.Now.UTC())
			} else if state.Completed {
				tail, err := openAdhocTail(tx, userID, task.ID)
				if err != nil {
					return err
				}
				state = planner.Reopen(state, tail)
			}
			state.ApplyTo(&task)
		}

		err := tx.Model(&task).
			Select("title", "sort_order", "due_date", "completed", "completed_at", "updated_at").
			Updates(&task).Error
		if err != nil {
			return err
		}

		if patch.LabelIDs != nil {
			return replaceLabelLinks(tx, userID, task.ID, *patch.LabelIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(userID, id)
}

// openAdhocTail finds the highest order among the user's open adhoc tasks,
// ignoring excludeID.
func openAdhocTail(tx *gorm.DB, userID, excludeID uint64) (planner.QueueTail, error) {
	var maxOrder sql.NullInt64
	query := tx.Model(&models.DailyTask{}).
		Select("MAX(sort_order)").
		Where("user_id = ? AND is_adhoc = ? AND completed = ?", userID, true, false)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Row().Scan(&maxOrder); err != nil {
		return planner.QueueTail{}, err
	}
	return planner.QueueTail{Order: int(maxOrder.Int64), Exists: maxOrder.Valid}, nil
}

// Delete removes a daily task and its label links
func (r *GormDailyTaskRepository) Delete(userID, id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var task models.DailyTask
		if err := tx.Where("user_id = ?", userID).First(&task, id).Error; err != nil {
			return err
		}
		if err := tx.Where("daily_task_id = ?", id).Delete(&models.DailyTaskLabel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&task).Error
	})
}

// CreateAdhoc appends an adhoc task to the end of the user's open queue.
// Order is computed and written under the user lock.
func (r *GormDailyTaskRepository) CreateAdhoc(task *models.DailyTask, labelIDs []string) error {
	task.IsAdhoc = true
	task.Completed = false
	task.CompletedAt = nil
	task.DailyTaskListID = nil
	task.TemplateTaskID = nil
	task.DueDate = utils.DateOnly(task.DueDate)

	return withUserLock(r.db, task.UserID, func(tx *gorm.DB) error {
		tail, err := openAdhocTail(tx, task.UserID, 0)
		if err != nil {
			return err
		}
		task.Order = planner.NextOrder(tail)

		if err := tx.Omit(clause.Associations).Create(task).Error; err != nil {
			return err
		}
		if len(labelIDs) > 0 {
			if err := replaceLabelLinks(tx, task.UserID, task.ID, labelIDs); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListAdhoc lists open adhoc tasks by order, or completed ones most recently
// completed first.
func (r *GormDailyTaskRepository) ListAdhoc(filter AdhocFilter) ([]models.DailyTask, error) {
	query := r.db.
		Where("user_id = ? AND is_adhoc = ? AND completed = ?", filter.UserID, true, filter.Completed).
		Preload("Labels", labelsByName)

	if filter.Completed {
		if filter.CompletedFrom != nil {
			query = query.Where("completed_at >= ?", filter.CompletedFrom.UTC())
		}
		if filter.CompletedBefore != nil {
			query = query.Where("completed_at < ?", filter.CompletedBefore.UTC())
		}
		query = query.Order("completed_at DESC, id DESC")
	} else {
		query = query.Order("sort_order ASC, id ASC")
	}

	var tasks []models.DailyTask
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}
