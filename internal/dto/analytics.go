package dto

import "github.com/yukikurage/daily-planner-api/internal/services"

// CompletionStatDTO is one row of the completion report
type CompletionStatDTO struct {
	TemplateID         uint64  `json:"template_id"`
	Template           string  `json:"template"`
	TemplateTaskID     uint64  `json:"template_task_id"`
	TaskID             uint64  `json:"task_id"`
	Task               string  `json:"task"`
	TotalInstances     int64   `json:"total_instances"`
	CompletedInstances int64   `json:"completed_instances"`
	CompletionRate     float64 `json:"completion_rate"`
}

// CompletionStatsResponse wraps the completion report
type CompletionStatsResponse struct {
	Stats []CompletionStatDTO `json:"stats"`
}

func ToCompletionStatsResponse(stats []services.CompletionStat) CompletionStatsResponse {
	rows := make([]CompletionStatDTO, len(stats))
	for i, s := range stats {
		rows[i] = CompletionStatDTO{
			TemplateID:         s.TemplateID,
			Template:           s.TemplateTitle,
			TemplateTaskID:     s.TemplateTaskID,
			TaskID:             s.TaskID,
			Task:               s.TaskTitle,
			TotalInstances:     s.TotalInstances,
			CompletedInstances: s.CompletedInstances,
			CompletionRate:     s.CompletionRate,
		}
	}
	return CompletionStatsResponse{Stats: rows}
}
