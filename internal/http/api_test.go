package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"task-dashboard.com/task-dashboard/internal/auth"
	config "task-dashboard.com/task-dashboard/internal/configs"
	middleware "task-dashboard.com/task-dashboard/internal/http/middlewares"
	repository "task-dashboard.com/task-dashboard/internal/repositories"
	"task-dashboard.com/task-dashboard/internal/services"
)

type response struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message"`
	Token   string                     `json:"token"`
	Task    map[string]any             `json:"task"`
	Tasks   []map[string]any           `json:"tasks"`
	User    map[string]any             `json:"user"`
	Data    map[string]json.RawMessage `json:"data"`
	Details json.RawMessage            `json:"details"`
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := config.NewDatabaseClient(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)

	taskRepo := repository.NewTaskRepository(db)
	tokens := auth.NewTokenService(auth.TokenConfig{SecretKey: "test-secret", Issuer: "test", TTL: time.Hour})
	handler := NewHandler(
		services.NewTaskService(taskRepo),
		services.NewAuthService(repository.NewUserRepository(db), tokens, auth.NewPasswordHasher(bcrypt.MinCost)),
		services.NewDashboardService(taskRepo),
	)

	e := echo.New()
	Register(e, handler, tokens, middleware.RateLimiter(1000, time.Minute))
	return e
}

func call(t *testing.T, e *echo.Echo, method, path, token, body string) (int, response) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var out response
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec.Code, out
}

func register(t *testing.T, e *echo.Echo, email string) string {
	t.Helper()
	status, out := call(t, e, http.MethodPost, "/users/register", "",
		fmt.Sprintf(`{"email":%q,"password":"secret1","name":"Tester"}`, email))
	require.Equal(t, http.StatusCreated, status, out.Message)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func overview(t *testing.T, e *echo.Echo, token string) map[string]float64 {
	t.Helper()
	status, out := call(t, e, http.MethodGet, "/dashboard/stats", token, "")
	require.Equal(t, http.StatusOK, status)
	var data map[string]float64
	raw, err := json.Marshal(out.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &data))
	return data
}

func TestWriteReportScenario(t *testing.T) {
	e := newTestServer(t)
	token := register(t, e, "a@example.com")

	start := time.Now().UTC().Add(-2 * time.Hour)
	body := fmt.Sprintf(`{"title":"Write report","startTime":%q,"endTime":%q,"priority":"HIGH"}`,
		start.Format(time.RFC3339), start.Add(2*time.Hour).Format(time.RFC3339))
	status, created := call(t, e, http.MethodPost, "/tasks", token, body)
	require.Equal(t, http.StatusCreated, status, created.Message)
	assert.Equal(t, "PENDING", created.Task["status"])
	id := created.Task["id"].(string)

	before := overview(t, e, token)
	assert.Equal(t, 1.0, before["totalTasks"])
	assert.Equal(t, 1.0, before["pendingTasks"])

	status, updated := call(t, e, http.MethodPatch, "/tasks/"+id, token, `{"status":"FINISHED"}`)
	require.Equal(t, http.StatusOK, status, updated.Message)
	assert.Equal(t, "FINISHED", updated.Task["status"])

	after := overview(t, e, token)
	assert.Equal(t, before["totalTasks"], after["totalTasks"])
	assert.Equal(t, before["completedTasks"]+1, after["completedTasks"])
	assert.InDelta(t, 2.0, after["averageCompletionTimeHours"], 0.05)
	assert.Equal(t, 100.0, after["percentCompleted"])
}

func TestForeignUserIsForbidden(t *testing.T) {
	e := newTestServer(t)
	tokenA := register(t, e, "a@example.com")
	tokenB := register(t, e, "b@example.com")

	status, created := call(t, e, http.MethodPost, "/tasks", tokenA,
		`{"title":"Write report","startTime":"2025-03-10T09:00:00Z","endTime":"2025-03-10T11:00:00Z","priority":"HIGH"}`)
	require.Equal(t, http.StatusCreated, status)
	id := created.Task["id"].(string)

	status, out := call(t, e, http.MethodPatch, "/tasks/"+id, tokenB, `{"priority":"NOT-A-PRIORITY"}`)
	assert.Equal(t, http.StatusForbidden, status)
	assert.False(t, out.Success)
	assert.Equal(t, "Not authorized", out.Message)

	status, _ = call(t, e, http.MethodDelete, "/tasks/"+id, tokenB, "")
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = call(t, e, http.MethodDelete, "/tasks/does-not-exist", tokenA, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, out = call(t, e, http.MethodDelete, "/tasks/"+id, tokenA, "")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, out.Success)
}

func TestDuplicateEmail(t *testing.T) {
	e := newTestServer(t)
	register(t, e, "dup@example.com")

	status, out := call(t, e, http.MethodPost, "/users/register", "",
		`{"email":"dup@example.com","password":"secret1","name":"Again"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "User already exists", out.Message)
}

func TestMissingAndInvalidToken(t *testing.T) {
	e := newTestServer(t)

	for _, path := range []string{"/tasks", "/dashboard/stats", "/dashboard/priority", "/dashboard", "/users/me"} {
		status, out := call(t, e, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, status, path)
		assert.Equal(t, "No token provided", out.Message, path)
	}

	status, out := call(t, e, http.MethodGet, "/tasks", "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid token", out.Message)
}

func TestEmptyAggregates(t *testing.T) {
	e := newTestServer(t)
	token := register(t, e, "empty@example.com")

	data := overview(t, e, token)
	assert.Zero(t, data["totalTasks"])
	assert.Zero(t, data["percentCompleted"])
	assert.Zero(t, data["percentPending"])

	status, out := call(t, e, http.MethodGet, "/dashboard/priority", token, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(out.Data["priorityStats"]))

	status, out = call(t, e, http.MethodGet, "/tasks", token, "")
	require.Equal(t, http.StatusOK, status)
	assert.NotNil(t, out.Tasks)
	assert.Empty(t, out.Tasks)
}

func TestValidationEnvelope(t *testing.T) {
	e := newTestServer(t)
	token := register(t, e, "v@example.com")

	status, out := call(t, e, http.MethodPost, "/tasks", token, `{"title":5,"priority":"HIGH"}`)
	require.Equal(t, http.StatusBadRequest, status)
	assert.False(t, out.Success)

	var details []struct {
		Field string `json:"field"`
		Code  string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(out.Details, &details))
	codes := map[string]string{}
	for _, d := range details {
		codes[d.Field] = d.Code
	}
	assert.Equal(t, "InvalidType", codes["title"])
	assert.Equal(t, "MissingRequiredField", codes["startTime"])

	status, out = call(t, e, http.MethodPost, "/tasks", token, `{"title":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid JSON payload", out.Message)

	var detail string
	require.NoError(t, json.Unmarshal(out.Details, &detail))
	assert.NotEmpty(t, detail)
}

func TestLoginAndProfile(t *testing.T) {
	e := newTestServer(t)
	register(t, e, "me@example.com")

	status, out := call(t, e, http.MethodPost, "/users/login", "", `{"email":"me@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Authentication failed", out.Message)

	status, out = call(t, e, http.MethodPost, "/users/login", "", `{"email":"me@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, status)
	_, hasHash := out.User["passwordHash"]
	assert.False(t, hasHash)

	status, out = call(t, e, http.MethodGet, "/users/me", out.Token, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "me@example.com", out.User["email"])
}

func TestHealthAndMetrics(t *testing.T) {
	e := newTestServer(t)

	status, _ := call(t, e, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, status)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "task_dashboard_http_requests_total")
}
