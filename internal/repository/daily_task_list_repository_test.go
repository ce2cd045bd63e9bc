package repository

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "github.com/yukikurage/daily-planner-api/internal/errors"
	"github.com/yukikurage/daily-planner-api/internal/models"
	"github.com/yukikurage/daily-planner-api/internal/testutil"
	"github.com/yukikurage/daily-planner-api/internal/utils"
)

func TestDailyTaskListRepository_Materialize(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "alice@example.com")
	meditate := createTask(t, db, user.ID, "Meditate")
	stretch := createTask(t, db, user.ID, "Stretch")
	template := createTemplate(t, db, user.ID, "Morning", []string{"Monday"}, meditate, stretch)

	list := materialize(t, db, user.ID, template.ID, monday.Add(15*time.Hour))

	assert.Equal(t, monday, list.Date)
	require.Len(t, list.Tasks, 2)

	stored, err := NewDailyTaskListRepository(db).FindByDate(user.ID, monday)
	require.NoError(t, err)
	assert.Equal(t, list.ID, stored.ID)
	assert.Equal(t, "Morning", stored.Template.Title)
	require.Len(t, stored.Tasks, 2)

	for i, want := range []struct {
		title string
		order int
	}{{"Meditate", 10}, {"Stretch", 20}} {
		task := stored.Tasks[i]
		assert.Equal(t, want.title, task.Title)
		assert.Equal(t, want.order, task.Order)
		assert.False(t, task.IsAdhoc)
		assert.False(t, task.Completed)
		assert.Nil(t, task.CompletedAt)
		assert.Equal(t, user.ID, task.UserID)
		require.NotNil(t, task.DailyTaskListID)
		assert.Equal(t, list.ID, *task.DailyTaskListID)
		require.NotNil(t, task.TemplateTaskID)
		assert.Equal(t, "2025-03-10", utils.FormatDate(task.DueDate))
	}
}

func TestDailyTaskListRepository_MaterializeTwiceConflicts(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "alice@example.com")
	meditate := createTask(t, db, user.ID, "Meditate")
	template := createTemplate(t, db, user.ID, "Morning", []string{"Monday"}, meditate)
	materialize(t, db, user.ID, template.ID, monday)

	err := NewDailyTaskListRepository(db).Materialize(&models.DailyTaskList{
		UserID: user.ID, TemplateID: template.ID, Date: monday,
	})

	var conflict *apierrors.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "Daily task list already exists for 2025-03-10", conflict.Message)

	var lists, tasks int64
	require.NoError(t, db.Model(&models.DailyTaskList{}).Count(&lists).Error)
	require.NoError(t, db.Model(&models.DailyTask{}).Count(&tasks).Error)
	assert.Equal(t, int64(1), lists)
	assert.Equal(t, int64(1), tasks)
}

func TestDailyTaskListRepository_MaterializeConcurrently(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "alice@example.com")
	meditate := createTask(t, db, user.ID, "Meditate")
	template := createTemplate(t, db, user.ID, "Morning", []string{"Monday"}, meditate)
	repo := NewDailyTaskListRepository(db)

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Materialize(&models.DailyTaskList{UserID: user.ID, TemplateID: template.ID, Date: monday})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var conflict *apierrors.ConflictError
		assert.True(t, errors.As(err, &conflict), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)

	var tasks int64
	require.NoError(t, db.Model(&models.DailyTask{}).Count(&tasks).Error)
	assert.Equal(t, int64(1), tasks)
}

func TestDailyTaskListRepository_MaterializeForeignTemplate(t *testing.T) {
	db := testutil.NewTestDB(t)
	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")
	template := createTemplate(t, db, bob.ID, "Morning", []string{"Monday"})

	err := NewDailyTaskListRepository(db).Materialize(&models.DailyTaskList{
		UserID: alice.ID, TemplateID: template.ID, Date: monday,
	})

	var nf *apierrors.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestDailyTaskListRepository_ListFiltersAndPaginates(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "alice@example.com")
	template := createTemplate(t, db, user.ID, "Daily", []string{"Monday"})
	for i := 0; i < 5; i++ {
		materialize(t, db, user.ID, template.ID, monday.AddDate(0, 0, i))
	}

	from := monday.AddDate(0, 0, 1)
	to := monday.AddDate(0, 0, 3)
	lists, total, err := NewDailyTaskListRepository(db).List(DailyTaskListFilter{
		UserID:    user.ID,
		StartDate: &from,
		EndDate:   &to,
		Params:    utils.NewPaginationParams(1, 2),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, lists, 2)
	assert.Equal(t, "2025-03-13", utils.FormatDate(lists[0].Date))
	assert.Equal(t, "2025-03-12", utils.FormatDate(lists[1].Date))
}

func TestDailyTaskListRepository_DeleteCascades(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "alice@example.com")
	meditate := createTask(t, db, user.ID, "Meditate")
	template := createTemplate(t, db, user.ID, "Morning", []string{"Monday"}, meditate)
	list := materialize(t, db, user.ID, template.ID, monday)
	label := createLabel(t, db, user.ID, "Focus")

	labelIDs := []string{label.ID}
	_, err := NewDailyTaskRepository(db).Update(user.ID, list.Tasks[0].ID, DailyTaskPatch{LabelIDs: &labelIDs})
	require.NoError(t, err)

	require.NoError(t, NewDailyTaskListRepository(db).Delete(user.ID, list.ID))

	var tasks, links int64
	require.NoError(t, db.Model(&models.DailyTask{}).Count(&tasks).Error)
	require.NoError(t, db.Model(&models.DailyTaskLabel{}).Count(&links).Error)
	assert.Zero(t, tasks)
	assert.Zero(t, links)

	_, err = NewLabelRepository(db).FindByID(user.ID, label.ID)
	assert.NoError(t, err, "labels survive their daily tasks")
}
