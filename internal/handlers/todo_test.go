package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Mieeelll/Taskflow-To-Do-App/internal/auth"
	"github.com/Mieeelll/Taskflow-To-Do-App/internal/dto"
	"github.com/Mieeelll/Taskflow-To-Do-App/internal/handlers"
	"github.com/Mieeelll/Taskflow-To-Do-App/internal/repo"
	"github.com/Mieeelll/Taskflow-To-Do-App/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testAPI wires the real router stack over in-memory repositories.
type testAPI struct {
	router *gin.Engine
	creds  *auth.Credentials
}

func newTestAPI() *testAPI {
	gin.SetMode(gin.TestMode)
	creds := auth.NewCredentials("test-secret", time.Hour)

	userSvc := service.NewUserService(repo.NewMemoryUserRepo(), creds)
	todoSvc := service.NewTodoService(repo.NewMemoryTodoRepo())
	authHandler := handlers.NewAuthHandler(userSvc)
	todoHandler := handlers.NewTodoHandler(todoSvc)

	r := gin.New()
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)
	todos := r.Group("/todos", auth.RequireToken(creds))
	todos.GET("", todoHandler.List)
	todos.POST("", todoHandler.Create)
	todos.PUT("/:id", todoHandler.Update)
	todos.PATCH("/:id/toggle-complete", todoHandler.ToggleComplete)
	todos.DELETE("/:id", todoHandler.Delete)

	return &testAPI{router: r, creds: creds}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// tokenFor mints a valid token for a fresh user identity.
func (a *testAPI) tokenFor(t *testing.T) string {
	t.Helper()
	token, err := a.creds.IssueToken(uuid.New().String())
	require.NoError(t, err)
	return token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestCreateTodoDefaults(t *testing.T) {
	api := newTestAPI()
	token := api.tokenFor(t)

	w := api.do(t, http.MethodPost, "/todos", token, gin.H{"title": "Buy milk"})
	require.Equal(t, http.StatusCreated, w.Code)

	got := decode[dto.TodoResponse](t, w)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "", got.Description)
	assert.Equal(t, "medium", got.Priority)
	assert.Equal(t, "Uncategorized", got.Category)
	assert.False(t, got.Completed)
	assert.Nil(t, got.DueDate)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
	// due_date must serialize as JSON null, not an empty string.
	assert.Contains(t, w.Body.String(), `"due_date":null`)
}

func TestCreateTodoEmptyTitle(t *testing.T) {
	api := newTestAPI()
	token := api.tokenFor(t)

	w := api.do(t, http.MethodPost, "/todos", token, gin.H{"title": "", "description": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodPost, "/todos", token, gin.H{"title": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Title is required")
}

func TestCreateTodoBadDueDate(t *testing.T) {
	api := newTestAPI()
	token := api.tokenFor(t)

	w := api.do(t, http.MethodPost, "/todos", token, gin.H{"title": "x", "due_date": "next tuesday"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ISO 8601")
}

func TestTodosRequireAuth(t *testing.T) {
	api := newTestAPI()

	w := api.do(t, http.MethodGet, "/todos", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	got := decode[dto.ErrorResponse](t, w)
	assert.Equal(t, http.StatusUnauthorized, got.Status)
	assert.NotEmpty(t, got.Error)
}

func TestListPaginationOverHTTP(t *testing.T) {
	api := newTestAPI()
	token := api.tokenFor(t)

	for i := 0; i < 5; i++ {
		w := api.do(t, http.MethodPost, "/todos", token, gin.H{"title": fmt.Sprintf("task %d", i)})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := api.do(t, http.MethodGet, "/todos?skip=0&limit=2", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[dto.ListTodosResponse](t, w)
	assert.Len(t, page.Todos, 2)
	assert.EqualValues(t, 5, page.Total)

	w = api.do(t, http.MethodGet, "/todos?skip=4&limit=2", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	page = decode[dto.ListTodosResponse](t, w)
	assert.Len(t, page.Todos, 1)
	assert.EqualValues(t, 5, page.Total)
}

func TestListRejectsBadPagination(t *testing.T) {
	api := newTestAPI()
	token := api.tokenFor(t)

	for _, q := range []string{"skip=-1", "limit=0", "limit=101"} {
		w := api.do(t, http.MethodGet, "/todos?"+q, token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestListFiltersOverHTTP(t *testing.T) {
	api := newTestAPI()
	token := api.tokenFor(t)

	w := api.do(t, http.MethodPost, "/todos", token, gin.H{"title": "Buy milk", "priority": "high"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = api.do(t, http.MethodPost, "/todos", token, gin.H{"title": "Ship release", "completed": true})
	require.Equal(t, http.StatusCreated, w.Code)

	w = api.do(t, http.MethodGet, "/todos?completed=true", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[dto.ListTodosResponse](t, w)
	require.Len(t, page.Todos, 1)
	assert.Equal(t, "Ship release", page.Todos[0].Title)

	w = api.do(t, http.MethodGet, "/todos?search=milk", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	page = decode[dto.ListTodosResponse](t, w)
	require.Len(t, page.Todos, 1)
	assert.Equal(t, "Buy milk", page.Todos[0].Title)
}

func TestPartialUpdateOverHTTP(t *testing.T) {
	api := newTestAPI()
	token := api.tokenFor(t)

	w := api.do(t, http.MethodPost, "/todos", token, gin.H{"title": "original", "category": "Work"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[dto.TodoResponse](t, w)

	w = api.do(t, http.MethodPut, "/todos/"+created.ID, token, gin.H{"priority": "high"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[dto.TodoResponse](t, w)
	assert.Equal(t, "high", updated.Priority)
	assert.Equal(t, "original", updated.Title)
	assert.Equal(t, "Work", updated.Category)

	// Explicitly clearing the title is rejected.
	w = api.do(t, http.MethodPut, "/todos/"+created.ID, token, gin.H{"title": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Title cannot be empty")
}

func TestUpdateMalformedIDIsNotFound(t *testing.T) {
	api := newTestAPI()
	token := api.tokenFor(t)

	w := api.do(t, http.MethodPut, "/todos/not-a-uuid", token, gin.H{"priority": "high"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Todo not found")
}

func TestToggleCompleteOverHTTP(t *testing.T) {
	api := newTestAPI()
	token := api.tokenFor(t)

	w := api.do(t, http.MethodPost, "/todos", token, gin.H{"title": "toggle me"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[dto.TodoResponse](t, w)

	w = api.do(t, http.MethodPatch, "/todos/"+created.ID+"/toggle-complete", token, gin.H{"completed": true})
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[dto.ToggleCompleteResponse](t, w)
	assert.Equal(t, created.ID, got.ID)
	assert.True(t, got.Completed)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestToggleCompleteSomeoneElses(t *testing.T) {
	api := newTestAPI()
	owner := api.tokenFor(t)
	intruder := api.tokenFor(t)

	w := api.do(t, http.MethodPost, "/todos", owner, gin.H{"title": "mine"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[dto.TodoResponse](t, w)

	w = api.do(t, http.MethodPatch, "/todos/"+created.ID+"/toggle-complete", intruder, gin.H{"completed": true})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleCompleteMissingBody(t *testing.T) {
	api := newTestAPI()
	token := api.tokenFor(t)

	w := api.do(t, http.MethodPost, "/todos", token, gin.H{"title": "x"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[dto.TodoResponse](t, w)

	w = api.do(t, http.MethodPatch, "/todos/"+created.ID+"/toggle-complete", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteThenGone(t *testing.T) {
	api := newTestAPI()
	token := api.tokenFor(t)

	w := api.do(t, http.MethodPost, "/todos", token, gin.H{"title": "doomed"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[dto.TodoResponse](t, w)

	w = api.do(t, http.MethodDelete, "/todos/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[dto.DeleteResponse](t, w).Success)

	// Soft delete is terminal: a second delete is a 404.
	w = api.do(t, http.MethodDelete, "/todos/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(t, http.MethodGet, "/todos", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decode[dto.ListTodosResponse](t, w).Total)
}

func TestCrossUserListIsolation(t *testing.T) {
	api := newTestAPI()
	alice := api.tokenFor(t)
	bob := api.tokenFor(t)

	w := api.do(t, http.MethodPost, "/todos", alice, gin.H{"title": "alice's secret"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = api.do(t, http.MethodGet, "/todos", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[dto.ListTodosResponse](t, w)
	assert.Empty(t, page.Todos)
	assert.EqualValues(t, 0, page.Total)
}
