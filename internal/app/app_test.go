package app

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/dashboard/api/transport"
	"github.com/fastygo/dashboard/domain"
	"github.com/fastygo/dashboard/internal/config"
	"github.com/fastygo/dashboard/internal/metrics"
	"github.com/fastygo/dashboard/repository/memory"
)

var testNow = time.Date(2026, 3, 8, 15, 0, 0, 0, time.UTC)

type testServer struct {
	t       *testing.T
	handler fasthttp.RequestHandler
	store   *memory.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := &config.Config{
		JWT:       config.JWTConfig{Secret: "test-secret", Issuer: "dashboard", TTL: time.Hour},
		Auth:      config.AuthConfig{BcryptCost: 4},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
		Analytics: config.AnalyticsConfig{Timezone: "UTC"},
		Context:   config.ContextConfig{RequestTimeout: 5 * time.Second},
	}
	store := memory.NewStore()
	repos := Repositories{
		Users:     store.Users(),
		Sessions:  store.Sessions(),
		Tasks:     store.Tasks(),
		Habits:    store.Habits(),
		Goals:     store.Goals(),
		Layouts:   store.Layouts(),
		Analytics: store.Analytics(),
	}
	opts := Options{
		Clock:   func() time.Time { return testNow },
		Metrics: metrics.NewHTTP(),
	}
	return &testServer{t: t, handler: NewHandler(cfg, repos, opts, nil), store: store}
}

func (s *testServer) do(method, path, token string, body interface{}) (int, []byte) {
	s.t.Helper()
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	switch b := body.(type) {
	case nil:
	case string:
		ctx.Request.SetBodyString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		ctx.Request.SetBody(raw)
	}
	if token != "" {
		ctx.Request.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+token)
	}
	s.handler(&ctx)
	return ctx.Response.StatusCode(), append([]byte(nil), ctx.Response.Body()...)
}

func (s *testServer) decode(raw []byte, dst interface{}) {
	s.t.Helper()
	require.NoError(s.t, json.Unmarshal(raw, dst), string(raw))
}

func (s *testServer) register(name, email string) domain.AuthResult {
	s.t.Helper()
	status, raw := s.do("POST", "/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "secret1",
	})
	require.Equal(s.t, fasthttp.StatusOK, status, string(raw))
	var result domain.AuthResult
	s.decode(raw, &result)
	return result
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)
	ada := s.register("Ada", "ada@example.com")
	require.NotEmpty(t, ada.Token)

	status, raw := s.do("POST", "/auth/register", "", map[string]string{
		"name": "Ada", "email": "ada@example.com", "password": "secret1",
	})
	assert.Equal(t, fasthttp.StatusConflict, status)
	var conflict transport.ErrorBody
	s.decode(raw, &conflict)
	assert.Equal(t, "CONFLICT", conflict.Code)

	status, raw = s.do("POST", "/auth/register", "", map[string]string{"name": "A", "email": "nope", "password": "1"})
	assert.Equal(t, fasthttp.StatusBadRequest, status)
	var invalid transport.ErrorBody
	s.decode(raw, &invalid)
	assert.Len(t, invalid.Fields, 3)

	status, wrongPassword := s.do("POST", "/auth/login", "", map[string]string{"email": "ada@example.com", "password": "wrong-pass"})
	assert.Equal(t, fasthttp.StatusUnauthorized, status)
	status, unknownEmail := s.do("POST", "/auth/login", "", map[string]string{"email": "eve@example.com", "password": "secret1"})
	assert.Equal(t, fasthttp.StatusUnauthorized, status)
	assert.JSONEq(t, string(wrongPassword), string(unknownEmail))

	status, raw = s.do("POST", "/auth/login", "", map[string]string{"email": "ada@example.com", "password": "secret1"})
	require.Equal(t, fasthttp.StatusOK, status)
	var login domain.AuthResult
	s.decode(raw, &login)

	status, raw = s.do("GET", "/me", login.Token, nil)
	require.Equal(t, fasthttp.StatusOK, status)
	assert.NotContains(t, string(raw), "password")
	var me domain.User
	s.decode(raw, &me)
	assert.Equal(t, ada.User.ID, me.ID)

	status, _ = s.do("GET", "/me", "", nil)
	assert.Equal(t, fasthttp.StatusUnauthorized, status)

	status, raw = s.do("POST", "/auth/refresh", login.Token, nil)
	require.Equal(t, fasthttp.StatusOK, status)
	var refreshed domain.AuthResult
	s.decode(raw, &refreshed)

	status, _ = s.do("POST", "/auth/logout", refreshed.Token, nil)
	assert.Equal(t, fasthttp.StatusNoContent, status)
	status, _ = s.do("GET", "/me", login.Token, nil)
	assert.Equal(t, fasthttp.StatusUnauthorized, status)

	// Another session of the same user is unaffected.
	status, _ = s.do("GET", "/me", ada.Token, nil)
	assert.Equal(t, fasthttp.StatusOK, status)
}

func TestMeForDeletedAccountIsDegraded(t *testing.T) {
	s := newTestServer(t)
	ada := s.register("Ada", "ada@example.com")
	s.store.DeleteUser(ada.User.ID)

	status, raw := s.do("GET", "/me", ada.Token, nil)
	assert.Equal(t, fasthttp.StatusOK, status)
	assert.JSONEq(t, `{"message":"user not found"}`, string(raw))
}

func TestTaskEndpoints(t *testing.T) {
	s := newTestServer(t)
	ada := s.register("Ada", "ada@example.com")
	eve := s.register("Eve", "eve@example.com")

	var firstID string
	for i := 0; i < 15; i++ {
		status, raw := s.do("POST", "/tasks", ada.Token, map[string]string{
			"title": fmt.Sprintf("task %02d", i), "status": "TODO", "priority": "LOW",
		})
		require.Equal(t, fasthttp.StatusOK, status, string(raw))
		if i == 0 {
			var task domain.Task
			s.decode(raw, &task)
			firstID = task.ID
		}
	}

	status, raw := s.do("GET", "/tasks?page=2&pageSize=10", ada.Token, nil)
	require.Equal(t, fasthttp.StatusOK, status)
	var page domain.Page[domain.Task]
	s.decode(raw, &page)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, 15, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.PageSize)

	status, raw = s.do("GET", "/tasks?pageSize=500", ada.Token, nil)
	require.Equal(t, fasthttp.StatusOK, status)
	s.decode(raw, &page)
	assert.Equal(t, domain.MaxPageSize, page.PageSize)

	status, raw = s.do("GET", "/tasks?page=4611686018427387904&pageSize=4", ada.Token, nil)
	require.Equal(t, fasthttp.StatusOK, status, string(raw))
	s.decode(raw, &page)
	assert.Empty(t, page.Items)
	assert.Equal(t, 15, page.Total)
	assert.Equal(t, domain.MaxPage, page.Page)

	status, _ = s.do("GET", "/tasks?status=LATER", ada.Token, nil)
	assert.Equal(t, fasthttp.StatusBadRequest, status)

	status, raw = s.do("GET", "/tasks", eve.Token, nil)
	require.Equal(t, fasthttp.StatusOK, status)
	s.decode(raw, &page)
	assert.Equal(t, 0, page.Total)
	assert.NotNil(t, page.Items)

	status, _ = s.do("GET", "/tasks/"+firstID, eve.Token, nil)
	assert.Equal(t, fasthttp.StatusNotFound, status)
	status, _ = s.do("PUT", "/tasks/"+firstID, eve.Token, map[string]string{"title": "stolen", "status": "DONE", "priority": "LOW"})
	assert.Equal(t, fasthttp.StatusNotFound, status)
	status, _ = s.do("DELETE", "/tasks/"+firstID, eve.Token, nil)
	assert.Equal(t, fasthttp.StatusNotFound, status)

	status, raw = s.do("PUT", "/tasks/"+firstID, ada.Token, map[string]string{"title": "task 00", "status": "DONE", "priority": "HIGH"})
	require.Equal(t, fasthttp.StatusOK, status)
	var done domain.Task
	s.decode(raw, &done)
	require.NotNil(t, done.CompletedAt)
	assert.True(t, testNow.Equal(*done.CompletedAt))

	status, _ = s.do("POST", "/tasks", ada.Token, map[string]string{"title": "x", "status": "TODO", "priority": "LOW"})
	assert.Equal(t, fasthttp.StatusBadRequest, status)
	status, _ = s.do("POST", "/tasks", ada.Token, `{"title":`)
	assert.Equal(t, fasthttp.StatusBadRequest, status)
	status, _ = s.do("POST", "/tasks", ada.Token, map[string]string{"title": "due", "status": "TODO", "priority": "LOW", "dueDate": "tomorrow"})
	assert.Equal(t, fasthttp.StatusBadRequest, status)

	status, _ = s.do("DELETE", "/tasks/"+firstID, ada.Token, nil)
	assert.Equal(t, fasthttp.StatusNoContent, status)
	status, _ = s.do("GET", "/tasks/"+firstID, ada.Token, nil)
	assert.Equal(t, fasthttp.StatusNotFound, status)
}

func TestHabitLogAndAnalytics(t *testing.T) {
	s := newTestServer(t)
	ada := s.register("Ada", "ada@example.com")
	eve := s.register("Eve", "eve@example.com")

	status, raw := s.do("POST", "/habits", ada.Token, map[string]interface{}{"name": "Read", "frequency": "DAILY", "targetPerWeek": 5})
	require.Equal(t, fasthttp.StatusOK, status, string(raw))
	var habit domain.Habit
	s.decode(raw, &habit)

	logPath := "/habits/" + habit.ID + "/logs"
	status, _ = s.do("POST", logPath, ada.Token, map[string]interface{}{"date": "2026-03-06", "count": 2})
	require.Equal(t, fasthttp.StatusOK, status)
	status, raw = s.do("POST", logPath, ada.Token, map[string]interface{}{"date": "2026-03-06T18:00:00Z", "count": 5})
	require.Equal(t, fasthttp.StatusOK, status)
	var logged domain.HabitLog
	s.decode(raw, &logged)
	assert.Equal(t, 5, logged.Count)

	status, _ = s.do("POST", logPath, eve.Token, map[string]interface{}{"date": "2026-03-06"})
	assert.Equal(t, fasthttp.StatusNotFound, status)
	status, _ = s.do("POST", logPath, ada.Token, map[string]interface{}{"date": "someday"})
	assert.Equal(t, fasthttp.StatusBadRequest, status)
	status, _ = s.do("POST", logPath, ada.Token, map[string]interface{}{"date": "2026-03-06", "count": 0})
	assert.Equal(t, fasthttp.StatusBadRequest, status)

	status, _ = s.do("POST", "/tasks", ada.Token, map[string]string{"title": "finished", "status": "DONE", "priority": "LOW"})
	require.Equal(t, fasthttp.StatusOK, status)

	status, raw = s.do("GET", "/analytics/weekly", ada.Token, nil)
	require.Equal(t, fasthttp.StatusOK, status)
	var weekly domain.WeeklyAnalytics
	s.decode(raw, &weekly)
	require.Len(t, weekly.Days, 7)
	assert.Equal(t, "2026-03-06", weekly.Days[4].ISODate)
	assert.Equal(t, 5, weekly.Days[4].HabitCount)
	assert.Equal(t, 1, weekly.Days[6].TasksDone)

	status, raw = s.do("GET", "/analytics/weekly", eve.Token, nil)
	require.Equal(t, fasthttp.StatusOK, status)
	s.decode(raw, &weekly)
	for _, day := range weekly.Days {
		assert.Zero(t, day.TasksDone)
		assert.Zero(t, day.HabitCount)
	}

	status, _ = s.do("DELETE", "/habits/"+habit.ID, ada.Token, nil)
	assert.Equal(t, fasthttp.StatusNoContent, status)
	assert.Empty(t, s.store.HabitLogs(habit.ID))
}

func TestGoalEndpoints(t *testing.T) {
	s := newTestServer(t)
	ada := s.register("Ada", "ada@example.com")

	status, raw := s.do("POST", "/goals", ada.Token, map[string]interface{}{
		"title": "Run", "targetValue": 20, "unit": "km", "weekStart": "2026-03-02", "status": "ACTIVE",
	})
	require.Equal(t, fasthttp.StatusOK, status, string(raw))
	var goal domain.Goal
	s.decode(raw, &goal)
	assert.Equal(t, 0, goal.CurrentValue)

	status, raw = s.do("PUT", "/goals/"+goal.ID, ada.Token, map[string]interface{}{
		"title": "Run", "targetValue": 20, "currentValue": 25, "unit": "km", "weekStart": "2026-03-02", "status": "ACTIVE",
	})
	require.Equal(t, fasthttp.StatusOK, status)
	s.decode(raw, &goal)
	assert.Equal(t, domain.GoalActive, goal.Status)

	status, _ = s.do("POST", "/goals", ada.Token, map[string]interface{}{
		"title": "Run", "targetValue": 20, "unit": "km", "weekStart": "", "status": "ACTIVE",
	})
	assert.Equal(t, fasthttp.StatusBadRequest, status)

	status, raw = s.do("GET", "/goals?search=ru", ada.Token, nil)
	require.Equal(t, fasthttp.StatusOK, status)
	var page domain.Page[domain.Goal]
	s.decode(raw, &page)
	assert.Equal(t, 1, page.Total)
}

func TestLayoutEndpoints(t *testing.T) {
	s := newTestServer(t)
	ada := s.register("Ada", "ada@example.com")

	status, raw := s.do("GET", "/layout", ada.Token, nil)
	require.Equal(t, fasthttp.StatusOK, status)
	assert.JSONEq(t, `{"cards":["summary","tasks","habits","goals","analytics"]}`, string(raw))

	status, _ = s.do("PUT", "/layout", ada.Token, map[string]interface{}{"cards": []string{"goals", "tasks"}})
	require.Equal(t, fasthttp.StatusOK, status)
	status, raw = s.do("GET", "/layout", ada.Token, nil)
	require.Equal(t, fasthttp.StatusOK, status)
	assert.JSONEq(t, `{"cards":["goals","tasks"]}`, string(raw))

	status, _ = s.do("PUT", "/layout", ada.Token, map[string]interface{}{"cards": []string{"weather"}})
	assert.Equal(t, fasthttp.StatusBadRequest, status)
}

func TestOperationalEndpoints(t *testing.T) {
	s := newTestServer(t)

	status, raw := s.do("GET", "/health", "", nil)
	require.Equal(t, fasthttp.StatusOK, status)
	var health transport.HealthBody
	s.decode(raw, &health)
	assert.Equal(t, "ok", health.Status)

	status, raw = s.do("GET", "/metrics", "", nil)
	require.Equal(t, fasthttp.StatusOK, status)
	assert.Contains(t, string(raw), "dashboard_http_requests_total")

	status, _ = s.do("GET", "/nowhere", "", nil)
	assert.Equal(t, fasthttp.StatusNotFound, status)
}
