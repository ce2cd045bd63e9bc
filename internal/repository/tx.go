package repository

import (
	"errors"

	"github.com/yukikurage/daily-planner-api/internal/database"
	apierrors "github.com/yukikurage/daily-planner-api/internal/errors"
	"github.com/yukikurage/daily-planner-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// withUserLock runs fn in a transaction that first locks the user's row, so
// compound writes of one user run one at a time. SQLite ignores the locking
// clause; its transactions are serialized anyway.
func withUserLock(db *gorm.DB, userID uint64, fn func(tx *gorm.DB) error) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&user, userID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apierrors.NotFoundError{Resource: "User"}
			}
			return err
		}
		return fn(tx)
	}, database.TxOptions(db))
}

// countOwnedLabels counts how many of ids are labels of the user.
func countOwnedLabels(tx *gorm.DB, userID uint64, ids []string) (int64, error) {
	var count int64
	err := tx.Model(&models.Label{}).
		Where("user_id = ? AND id IN ?", userID, ids).
		Count(&count).Error
	return count, err
}

// replaceLabelLinks points a daily task at exactly labelIDs.
func replaceLabelLinks(tx *gorm.DB, userID, dailyTaskID uint64, labelIDs []string) error {
	ids := uniqueStrings(labelIDs)
	if len(ids) > 0 {
		count, err := countOwnedLabels(tx, userID, ids)
		if err != nil {
			return err
		}
		if int(count) != len(ids) {
			return apierrors.NewValidationError("label_ids", "One or more labels do not exist")
		}
	}

	if err := tx.Where("daily_task_id = ?", dailyTaskID).Delete(&models.DailyTaskLabel{}).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	links := make([]models.DailyTaskLabel, len(ids))
	for i, id := range ids {
		links[i] = models.DailyTaskLabel{DailyTaskID: dailyTaskID, LabelID: id}
	}
	return tx.Create(&links).Error
}

// detachTemplateTasks nulls the back reference of daily tasks created from
// the given template tasks.
func detachTemplateTasks(tx *gorm.DB, templateTaskIDs []uint64) error {
	if len(templateTaskIDs) == 0 {
		return nil
	}
	return tx.Model(&models.DailyTask{}).
		Where("template_task_id IN ?", templateTaskIDs).
		Update("template_task_id", nil).Error
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
