package repository

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/daily-planner-api/internal/models"
	"gorm.io/gorm"
)

var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func createTask(t *testing.T, db *gorm.DB, userID uint64, title string) *models.Task {
	t.Helper()
	task := &models.Task{UserID: userID, Title: title}
	require.NoError(t, NewTaskRepository(db).Create(task))
	return task
}

// createTemplate stores a template with tasks at orders 1, 2, ... in the
// given sequence.
func createTemplate(t *testing.T, db *gorm.DB, userID uint64, title string, weekdays []string, tasks ...*models.Task) *models.Template {
	t.Helper()
	template := &models.Template{UserID: userID, Title: title, Weekdays: pq.StringArray(weekdays)}
	memberships := make([]models.TemplateTask, len(tasks))
	for i, task := range tasks {
		memberships[i] = models.TemplateTask{TaskID: task.ID, Order: i + 1}
	}
	require.NoError(t, NewTemplateRepository(db).Create(template, memberships))
	return template
}

func createLabel(t *testing.T, db *gorm.DB, userID uint64, name string) *models.Label {
	t.Helper()
	label := &models.Label{UserID: userID, Name: name, Color: "#112233"}
	require.NoError(t, NewLabelRepository(db).Create(label))
	return label
}

func materialize(t *testing.T, db *gorm.DB, userID, templateID uint64, date time.Time) *models.DailyTaskList {
	t.Helper()
	list := &models.DailyTaskList{UserID: userID, TemplateID: templateID, Date: date}
	require.NoError(t, NewDailyTaskListRepository(db).Materialize(list))
	return list
}

func createAdhoc(t *testing.T, db *gorm.DB, userID uint64, title string, labelIDs ...string) *models.DailyTask {
	t.Helper()
	task := &models.DailyTask{UserID: userID, Title: title, DueDate: monday}
	require.NoError(t, NewDailyTaskRepository(db).CreateAdhoc(task, labelIDs))
	return task
}

func boolPtr(v bool) *bool { return &v }
