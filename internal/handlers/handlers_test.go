package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/daily-planner-api/internal/constants"
	apierrors "github.com/yukikurage/daily-planner-api/internal/errors"
	"github.com/yukikurage/daily-planner-api/internal/repository"
	"github.com/yukikurage/daily-planner-api/internal/services"
	"github.com/yukikurage/daily-planner-api/internal/testutil"
	"gorm.io/gorm"
)

// 2025-03-10 is a Monday.
var monday = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

type apiEnv struct {
	db     *gorm.DB
	router *gin.Engine
	auth   *services.AuthService
}

func newAPIEnv(t *testing.T, suggester services.TaskSuggester) *apiEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewTestDB(t)
	clock := func() time.Time { return monday }

	templateRepo := repository.NewTemplateRepository(db)
	authService := services.NewAuthService(repository.NewUserRepository(db))
	h := Handlers{
		Auth:      NewAuthHandler(authService),
		Tasks:     NewTaskHandler(services.NewTaskService(repository.NewTaskRepository(db), suggester)),
		Templates: NewTemplateHandler(services.NewTemplateService(templateRepo)),
		Schedules: NewScheduleHandler(services.NewScheduleService(repository.NewDailyTaskListRepository(db), templateRepo, time.UTC).WithClock(clock)),
		DailyTask: NewDailyTaskHandler(services.NewDailyTaskService(repository.NewDailyTaskRepository(db), time.UTC).WithClock(clock)),
		Labels:    NewLabelHandler(services.NewLabelService(repository.NewLabelRepository(db))),
		Analytics: NewAnalyticsHandler(services.NewAnalyticsService(repository.NewAnalyticsRepository(db))),
	}

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("test-secret"))))
	RegisterRoutes(r, h)

	return &apiEnv{db: db, router: r, auth: authService}
}

// do sends a JSON request. body may be nil.
func (e *apiEnv) do(t *testing.T, method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// login signs up a user and returns the session cookies of a fresh login.
func (e *apiEnv) login(t *testing.T, email string) []*http.Cookie {
	t.Helper()

	_, err := e.auth.Signup(services.SignupInput{Email: email, Password: "supersecret"})
	require.NoError(t, err)

	w := e.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": "supersecret",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
	return cookies
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apierrors.APIError {
	t.Helper()
	return decode[apierrors.APIError](t, w)
}
