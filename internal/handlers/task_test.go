package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/daily-planner-api/internal/dto"
	apierrors "github.com/yukikurage/daily-planner-api/internal/errors"
	"github.com/yukikurage/daily-planner-api/internal/services"
)

type fakeSuggester struct {
	titles []string
}

func (f fakeSuggester) SuggestTasks(_ context.Context, _ string) ([]services.SuggestedTask, error) {
	tasks := make([]services.SuggestedTask, len(f.titles))
	for i, title := range f.titles {
		tasks[i] = services.SuggestedTask{Title: title}
	}
	return tasks, nil
}

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	env     *apiEnv
	cookies []*http.Cookie
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	suite.env = newAPIEnv(suite.T(), nil)
	suite.cookies = suite.env.login(suite.T(), "alice@example.com")
}

func (suite *TaskHandlerTestSuite) createTask(title string) dto.TaskDTO {
	w := suite.env.do(suite.T(), http.MethodPost, "/api/tasks", map[string]string{"title": title}, suite.cookies)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return decode[dto.TaskDTO](suite.T(), w)
}

func (suite *TaskHandlerTestSuite) createTemplate(title string, weekdays []string, taskIDs ...uint64) dto.TemplateDTO {
	tasks := make([]map[string]interface{}, len(taskIDs))
	for i, id := range taskIDs {
		tasks[i] = map[string]interface{}{"task_id": id, "order": i + 1}
	}
	w := suite.env.do(suite.T(), http.MethodPost, "/api/templates", map[string]interface{}{
		"title":    title,
		"weekdays": weekdays,
		"tasks":    tasks,
	}, suite.cookies)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return decode[dto.TemplateDTO](suite.T(), w)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	task := suite.createTask("  Meditate ")
	suite.Equal("Meditate", task.Title)
	suite.NotZero(task.ID)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_EmptyTitle() {
	w := suite.env.do(suite.T(), http.MethodPost, "/api/tasks", map[string]string{"title": "   "}, suite.cookies)

	suite.Equal(http.StatusBadRequest, w.Code)
	response := decodeError(suite.T(), w)
	suite.Equal(apierrors.ErrCodeValidationFailed, response.Code)
}

func (suite *TaskHandlerTestSuite) TestListTasks_IncludesTemplates() {
	stretch := suite.createTask("Stretch")
	suite.createTask("Journal")
	suite.createTemplate("Morning", []string{"Monday"}, stretch.ID)
	suite.createTemplate("Evening", []string{"Tuesday"}, stretch.ID)

	w := suite.env.do(suite.T(), http.MethodGet, "/api/tasks", nil, suite.cookies)
	suite.Require().Equal(http.StatusOK, w.Code)

	response := decode[dto.TaskListResponse](suite.T(), w)
	suite.Require().Len(response.Tasks, 2)
	suite.Equal("Journal", response.Tasks[0].Title)
	suite.Equal(0, response.Tasks[0].TemplateCount)
	suite.Equal([]string{}, response.Tasks[0].TemplateNames)
	suite.Equal(2, response.Tasks[1].TemplateCount)
	suite.Equal([]string{"Evening", "Morning"}, response.Tasks[1].TemplateNames)
}

func (suite *TaskHandlerTestSuite) TestGetTask_OtherUser() {
	task := suite.createTask("Private")
	other := suite.env.login(suite.T(), "bob@example.com")

	w := suite.env.do(suite.T(), http.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), nil, other)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.env.do(suite.T(), http.MethodGet, "/api/tasks/abc", nil, suite.cookies)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask() {
	task := suite.createTask("Read")

	w := suite.env.do(suite.T(), http.MethodPut, fmt.Sprintf("/api/tasks/%d", task.ID), map[string]string{"title": "Read 20 pages"}, suite.cookies)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal("Read 20 pages", decode[dto.TaskDTO](suite.T(), w).Title)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_ReportsTemplateCount() {
	task := suite.createTask("Stretch")
	suite.createTemplate("Morning", []string{"Monday"}, task.ID)

	w := suite.env.do(suite.T(), http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), nil, suite.cookies)
	suite.Require().Equal(http.StatusOK, w.Code)

	response := decode[dto.TaskDeleteResponse](suite.T(), w)
	suite.Equal(int64(1), response.TemplateCount)
	suite.Equal("Task deleted. Removed from 1 template(s).", response.Message)

	w = suite.env.do(suite.T(), http.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), nil, suite.cookies)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestGenerateTasks_NotConfigured() {
	w := suite.env.do(suite.T(), http.MethodPost, "/api/tasks/generate", map[string]string{"text": "walk the dog"}, suite.cookies)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.Equal(apierrors.ErrCodeServiceUnavailable, decodeError(suite.T(), w).Code)
}

func (suite *TaskHandlerTestSuite) TestGenerateTasks_MissingText() {
	w := suite.env.do(suite.T(), http.MethodPost, "/api/tasks/generate", map[string]string{}, suite.cookies)
	suite.Equal(http.StatusBadRequest, w.Code)
}

// TestTaskHandlerTestSuite runs the test suite
func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}

func TestGenerateTasks_WithSuggester(t *testing.T) {
	env := newAPIEnv(t, fakeSuggester{titles: []string{"Walk the dog", "walk the dog", "Water plants"}})
	cookies := env.login(t, "alice@example.com")

	w := env.do(t, http.MethodPost, "/api/tasks/generate", map[string]string{"text": "dog and plants"}, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	response := decode[struct {
		Tasks []dto.SuggestedTaskDTO `json:"tasks"`
	}](t, w)
	if len(response.Tasks) != 2 {
		t.Fatalf("expected 2 deduplicated suggestions, got %+v", response.Tasks)
	}
}
