package planner

import (
	"sort"

	apierrors "github.com/yukikurage/daily-planner-api/internal/errors"
	"github.com/yukikurage/daily-planner-api/internal/models"
)

// ValidateMaterialization checks that the template may be expanded into a
// schedule owned by userID.
func ValidateMaterialization(template models.Template, userID uint64) error {
	if template.ID == 0 {
		return apierrors.NewValidationError("template_id", "Template is required to create a daily task list")
	}
	if template.UserID != userID {
		return apierrors.NewValidationError("template_id", "Cannot use a template from another user")
	}
	return nil
}

// Materialize builds the daily tasks of list from the template tasks, in
// ascending template order. Each template task needs its Task loaded.
// The tasks are returned unsaved and without a list id when list is unsaved.
func Materialize(list models.DailyTaskList, templateTasks []models.TemplateTask) []models.DailyTask {
	sorted := make([]models.TemplateTask, len(templateTasks))
	copy(sorted, templateTasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Order != sorted[j].Order {
			return sorted[i].Order < sorted[j].Order
		}
		return sorted[i].ID < sorted[j].ID
	})

	tasks := make([]models.DailyTask, 0, len(sorted))
	for _, tt := range sorted {
		templateTaskID := tt.ID
		task := models.DailyTask{
			UserID:         list.UserID,
			TemplateTaskID: &templateTaskID,
			Title:          tt.Task.Title,
			DueDate:        list.Date,
			Completed:      false,
			Order:          MaterializedOrder(tt.Order),
			IsAdhoc:        false,
		}
		if list.ID != 0 {
			listID := list.ID
			task.DailyTaskListID = &listID
		}
		tasks = append(tasks, task)
	}
	return tasks
}
