package repository

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "github.com/yukikurage/daily-planner-api/internal/errors"
	"github.com/yukikurage/daily-planner-api/internal/models"
	"github.com/yukikurage/daily-planner-api/internal/testutil"
)

func TestTemplateRepository_CreateAndFind(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "alice@example.com")
	meditate := createTask(t, db, user.ID, "Meditate")
	stretch := createTask(t, db, user.ID, "Stretch")

	template := createTemplate(t, db, user.ID, "Morning", []string{"Monday", "Wednesday"}, stretch, meditate)

	found, err := NewTemplateRepository(db).FindByID(user.ID, template.ID)
	require.NoError(t, err)
	assert.Equal(t, pq.StringArray{"Monday", "Wednesday"}, found.Weekdays)
	require.Len(t, found.TemplateTasks, 2)
	assert.Equal(t, "Stretch", found.TemplateTasks[0].Task.Title)
	assert.Equal(t, "Meditate", found.TemplateTasks[1].Task.Title)
}

func TestTemplateRepository_CreateRejectsWeekdayOverlap(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "alice@example.com")
	createTemplate(t, db, user.ID, "Morning", []string{"Monday", "Tuesday"})

	err := NewTemplateRepository(db).Create(&models.Template{
		UserID:   user.ID,
		Title:    "Evening",
		Weekdays: pq.StringArray{"Tuesday", "Friday"},
	}, nil)

	var verr *apierrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields["weekdays"], "Tuesday")

	var count int64
	require.NoError(t, db.Model(&models.Template{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestTemplateRepository_WeekdaysAreScopedPerUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")

	createTemplate(t, db, alice.ID, "Morning", []string{"Monday"})
	createTemplate(t, db, bob.ID, "Morning", []string{"Monday"})
}

func TestTemplateRepository_CreateRejectsForeignTask(t *testing.T) {
	db := testutil.NewTestDB(t)
	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")
	bobsTask := createTask(t, db, bob.ID, "Bob's")

	err := NewTemplateRepository(db).Create(&models.Template{UserID: alice.ID, Title: "Morning"},
		[]models.TemplateTask{{TaskID: bobsTask.ID, Order: 1}})

	var nf *apierrors.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestTemplateRepository_UpdateDiffsTaskMembership(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "alice@example.com")
	meditate := createTask(t, db, user.ID, "Meditate")
	stretch := createTask(t, db, user.ID, "Stretch")
	journal := createTask(t, db, user.ID, "Journal")
	template := createTemplate(t, db, user.ID, "Morning", []string{"Monday"}, meditate, stretch)
	list := materialize(t, db, user.ID, template.ID, monday)

	repo := NewTemplateRepository(db)
	before, err := repo.FindByID(user.ID, template.ID)
	require.NoError(t, err)
	keptID := before.TemplateTasks[0].ID
	removedID := before.TemplateTasks[1].ID

	template.Title = "Mornings"
	template.Weekdays = pq.StringArray{"Monday", "Thursday"}
	err = repo.Update(template, []models.TemplateTask{
		{TaskID: journal.ID, Order: 1},
		{TaskID: meditate.ID, Order: 2},
	})
	require.NoError(t, err)

	after, err := repo.FindByID(user.ID, template.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mornings", after.Title)
	require.Len(t, after.TemplateTasks, 2)
	assert.Equal(t, "Journal", after.TemplateTasks[0].Task.Title)
	assert.Equal(t, keptID, after.TemplateTasks[1].ID, "kept membership keeps its row")
	assert.Equal(t, 2, after.TemplateTasks[1].Order)

	var detached models.DailyTask
	require.NoError(t, db.Where("daily_task_list_id = ? AND title = ?", list.ID, "Stretch").First(&detached).Error)
	assert.Nil(t, detached.TemplateTaskID)

	var gone int64
	require.NoError(t, db.Model(&models.TemplateTask{}).Where("id = ?", removedID).Count(&gone).Error)
	assert.Zero(t, gone)
}

func TestTemplateRepository_UpdateWithoutTasksKeepsMembership(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "alice@example.com")
	meditate := createTask(t, db, user.ID, "Meditate")
	template := createTemplate(t, db, user.ID, "Morning", []string{"Monday"}, meditate)

	template.Weekdays = pq.StringArray{}
	require.NoError(t, NewTemplateRepository(db).Update(template, nil))

	after, err := NewTemplateRepository(db).FindByID(user.ID, template.ID)
	require.NoError(t, err)
	assert.Empty(t, after.Weekdays)
	assert.Len(t, after.TemplateTasks, 1)
}

func TestTemplateRepository_DeleteProtectedWhileReferenced(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "alice@example.com")
	meditate := createTask(t, db, user.ID, "Meditate")
	template := createTemplate(t, db, user.ID, "Morning", []string{"Monday"}, meditate)
	list := materialize(t, db, user.ID, template.ID, monday)

	repo := NewTemplateRepository(db)
	err := repo.Delete(user.ID, template.ID)
	var conflict *apierrors.ConflictError
	require.True(t, errors.As(err, &conflict))

	_, err = repo.FindByID(user.ID, template.ID)
	require.NoError(t, err)

	require.NoError(t, NewDailyTaskListRepository(db).Delete(user.ID, list.ID))
	require.NoError(t, repo.Delete(user.ID, template.ID))

	var memberships int64
	require.NoError(t, db.Model(&models.TemplateTask{}).Count(&memberships).Error)
	assert.Zero(t, memberships)
}

func TestTemplateRepository_ListWithWeekday(t *testing.T) {
	db := testutil.NewTestDB(t)
	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")
	createTemplate(t, db, alice.ID, "Morning", []string{"Monday", "Friday"})
	createTemplate(t, db, bob.ID, "Workday", []string{"Friday"})
	createTemplate(t, db, bob.ID, "Weekend", []string{"Saturday", "Sunday"})

	templates, err := NewTemplateRepository(db).ListWithWeekday(models.Friday)
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, alice.ID, templates[0].UserID)
	assert.Equal(t, "Workday", templates[1].Title)
}
