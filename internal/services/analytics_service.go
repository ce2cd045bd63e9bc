package services

import (
	"fmt"

	"github.com/yukikurage/daily-planner-api/internal/planner"
	"github.com/yukikurage/daily-planner-api/internal/repository"
)

// AnalyticsService reports how often template tasks get done
type AnalyticsService struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(analyticsRepo repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{analyticsRepo: analyticsRepo}
}

// CompletionStat is the completion record of one template task
type CompletionStat struct {
	TemplateID         uint64
	TemplateTitle      string
	TemplateTaskID     uint64
	TaskID             uint64
	TaskTitle          string
	TotalInstances     int64
	CompletedInstances int64
	CompletionRate     float64
}

// CompletionStats returns one row per template task of the user, ordered by
// template title and then template order
func (s *AnalyticsService) CompletionStats(userID uint64) ([]CompletionStat, error) {
	rows, err := s.analyticsRepo.CompletionStats(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute completion stats: %w", err)
	}

	stats := make([]CompletionStat, len(rows))
	for i, row := range rows {
		stats[i] = CompletionStat{
			TemplateID:         row.TemplateID,
			TemplateTitle:      row.TemplateTitle,
			TemplateTaskID:     row.TemplateTaskID,
			TaskID:             row.TaskID,
			TaskTitle:          row.TaskTitle,
			TotalInstances:     row.TotalInstances,
			CompletedInstances: row.CompletedInstances,
			CompletionRate:     planner.CompletionRate(row.CompletedInstances, row.TotalInstances),
		}
	}
	return stats, nil
}
