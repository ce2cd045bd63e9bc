package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/daily-planner-api/internal/planner"
	"github.com/yukikurage/daily-planner-api/internal/testutil"
)

func TestAnalyticsService_CompletionStats(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "alice@example.com")
	svc := newTestServices(t, db, monday)

	read, err := svc.tasks.CreateTask(user.ID, "Read")
	require.NoError(t, err)
	walk, err := svc.tasks.CreateTask(user.ID, "Walk")
	require.NoError(t, err)
	template, err := svc.templates.CreateTemplate(CreateTemplateInput{
		UserID:   user.ID,
		Title:    "Weekdays",
		Weekdays: []string{"Monday", "Tuesday"},
		Tasks: []planner.TemplateTaskInput{
			{TaskID: read.ID, Order: 1},
			{TaskID: walk.ID, Order: 2},
		},
	})
	require.NoError(t, err)

	for _, date := range []struct{ day int }{{0}, {1}, {7}} {
		list, err := svc.schedules.Materialize(MaterializeInput{
			UserID:     user.ID,
			Date:       monday.AddDate(0, 0, date.day),
			TemplateID: uint64Ptr(template.ID),
		})
		require.NoError(t, err)
		require.Len(t, list.Tasks, 2)
		if date.day != 7 {
			_, err = svc.daily.CompleteTask(user.ID, list.Tasks[0].ID)
			require.NoError(t, err)
		}
	}

	stats, err := svc.analytics.CompletionStats(user.ID)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, "Read", stats[0].TaskTitle)
	assert.Equal(t, int64(3), stats[0].TotalInstances)
	assert.Equal(t, int64(2), stats[0].CompletedInstances)
	assert.Equal(t, 66.67, stats[0].CompletionRate)

	assert.Equal(t, "Walk", stats[1].TaskTitle)
	assert.Equal(t, int64(0), stats[1].CompletedInstances)
	assert.Equal(t, 0.0, stats[1].CompletionRate)
}

func TestAnalyticsService_NoTemplates(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "alice@example.com")
	svc := newTestServices(t, db, monday)

	stats, err := svc.analytics.CompletionStats(user.ID)
	require.NoError(t, err)
	assert.Empty(t, stats)
}
