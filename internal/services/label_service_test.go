package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/daily-planner-api/internal/constants"
	apierrors "github.com/yukikurage/daily-planner-api/internal/errors"
	"github.com/yukikurage/daily-planner-api/internal/testutil"
)

func TestLabelService_CreateAndUpdate(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "alice@example.com")
	svc := newTestServices(t, db, monday)

	home, err := svc.labels.CreateLabel(user.ID, LabelInput{Name: strPtr(" Home ")})
	require.NoError(t, err)
	assert.Equal(t, "Home", home.Name)
	assert.Equal(t, constants.DefaultLabelColor, home.Color)
	assert.NotEmpty(t, home.ID)

	_, err = svc.labels.CreateLabel(user.ID, LabelInput{Name: strPtr("Home"), Color: strPtr("#FF0000")})
	var conflict *apierrors.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, `Label "Home" already exists`, conflict.Message)

	_, err = svc.labels.CreateLabel(user.ID, LabelInput{Name: strPtr("Work"), Color: strPtr("red")})
	var verr *apierrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "color")

	updated, err := svc.labels.UpdateLabel(user.ID, home.ID, LabelInput{Color: strPtr("#10B981")})
	require.NoError(t, err)
	assert.Equal(t, "Home", updated.Name)
	assert.Equal(t, "#10B981", updated.Color)

	other := testutil.CreateUser(t, db, "bob@example.com")
	_, err = svc.labels.GetLabel(other.ID, home.ID)
	var nf *apierrors.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestLabelService_DeleteDetachesFromTasks(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "alice@example.com")
	svc := newTestServices(t, db, monday)

	label, err := svc.labels.CreateLabel(user.ID, LabelInput{Name: strPtr("Errand")})
	require.NoError(t, err)
	task, err := svc.daily.CreateAdhoc(CreateAdhocInput{UserID: user.ID, Title: "Post office", DueDate: monday, LabelIDs: []string{label.ID}})
	require.NoError(t, err)
	require.Len(t, task.Labels, 1)

	require.NoError(t, svc.labels.DeleteLabel(user.ID, label.ID))

	reloaded, err := svc.daily.GetTask(user.ID, task.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Labels)

	labels, err := svc.labels.ListLabels(user.ID)
	require.NoError(t, err)
	assert.Empty(t, labels)
}
