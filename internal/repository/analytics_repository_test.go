package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/daily-planner-api/internal/testutil"
)

func TestAnalyticsRepository_CompletionStats(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "alice@example.com")
	meditate := createTask(t, db, user.ID, "Meditate")
	stretch := createTask(t, db, user.ID, "Stretch")
	template := createTemplate(t, db, user.ID, "Morning", []string{"Monday"}, meditate)
	createTemplate(t, db, user.ID, "Evening", []string{"Tuesday"}, stretch)

	repo := NewDailyTaskRepository(db)
	now := time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		list := materialize(t, db, user.ID, template.ID, monday.AddDate(0, 0, 7*i))
		if i < 2 {
			_, err := repo.Update(user.ID, list.Tasks[0].ID, DailyTaskPatch{Completed: boolPtr(true), Now: now})
			require.NoError(t, err)
		}
	}
	createAdhoc(t, db, user.ID, "Not counted")

	rows, err := NewAnalyticsRepository(db).CompletionStats(user.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Evening", rows[0].TemplateTitle)
	assert.Equal(t, "Stretch", rows[0].TaskTitle)
	assert.Zero(t, rows[0].TotalInstances)
	assert.Zero(t, rows[0].CompletedInstances)

	assert.Equal(t, "Morning", rows[1].TemplateTitle)
	assert.Equal(t, meditate.ID, rows[1].TaskID)
	assert.Equal(t, int64(5), rows[1].TotalInstances)
	assert.Equal(t, int64(2), rows[1].CompletedInstances)
}
