package repository

import (
	"gorm.io/gorm"
)

// GormAnalyticsRepository is a GORM implementation of AnalyticsRepository
type GormAnalyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new AnalyticsRepository
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &GormAnalyticsRepository{db: db}
}

// CompletionStats counts daily tasks per template task of the user's
// templates, ordered by template title and then template order. Template
// tasks with no daily tasks report zero instances.
func (r *GormAnalyticsRepository) CompletionStats(userID uint64) ([]CompletionStatRow, error) {
	var rows []CompletionStatRow
	err := r.db.Table("template_tasks").
		Select(`templates.id AS template_id,
			templates.title AS template_title,
			template_tasks.id AS template_task_id,
			template_tasks.sort_order AS template_order,
			tasks.id AS task_id,
			tasks.title AS task_title,
			COUNT(daily_tasks.id) AS total_instances,
			COALESCE(SUM(CASE WHEN daily_tasks.completed = ? THEN 1 ELSE 0 END), 0) AS completed_instances`, true).
		Joins("JOIN templates ON templates.id = template_tasks.template_id").
		Joins("JOIN tasks ON tasks.id = template_tasks.task_id").
		Joins("LEFT JOIN daily_tasks ON daily_tasks.template_task_id = template_tasks.id").
		Where("templates.user_id = ?", userID).
		Group("templates.id, templates.title, template_tasks.id, template_tasks.sort_order, tasks.id, tasks.title").
		Order("templates.title ASC, templates.id ASC, template_tasks.sort_order ASC, template_tasks.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
