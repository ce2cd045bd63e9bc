package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AddIndexes adds the composite indexes used by the ordering and analytics
// queries that the gorm tags cannot express.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Max-order lookups over a user's open adhoc tasks
		{"daily_tasks", "idx_daily_tasks_user_adhoc_open", "user_id, is_adhoc, completed, sort_order"},
		// Completed adhoc listing by completion time
		{"daily_tasks", "idx_daily_tasks_user_completed_at", "user_id, completed_at"},
		// Template task ordering
		{"template_tasks", "idx_template_tasks_template_order", "template_id, sort_order"},
		// Label links by label
		{"daily_task_labels", "idx_daily_task_labels_label_id", "label_id"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
			zap.L().Debug("Index already exists, skipping", zap.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		zap.L().Debug("Created index",
			zap.String("index", idx.name),
			zap.String("table", idx.table),
			zap.String("columns", idx.columns))
	}

	return nil
}
