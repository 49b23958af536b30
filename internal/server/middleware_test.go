package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/solostack/mentordesk/internal/config"
	taskdomain "github.com/solostack/mentordesk/internal/task/domain"
)

type fakeTaskService struct {
	toggleCalls int
	lastID      string
	toggleErr   error
}

func (f *fakeTaskService) Create(ctx context.Context, req taskdomain.CreateTaskRequest) (taskdomain.Task, error) {
	_ = ctx
	return taskdomain.Task{ID: snowflake.ID(1), Title: req.Title, Priority: taskdomain.PriorityMedium}, nil
}

func (f *fakeTaskService) List(ctx context.Context, req taskdomain.ListTaskRequest) ([]taskdomain.Task, error) {
	_ = ctx
	_ = req
	return []taskdomain.Task{}, nil
}

func (f *fakeTaskService) Update(ctx context.Context, id string, req taskdomain.UpdateTaskRequest) (taskdomain.Task, error) {
	_ = ctx
	_ = req
	_ = id
	return taskdomain.Task{}, nil
}

func (f *fakeTaskService) Delete(ctx context.Context, id string) error {
	_ = ctx
	_ = id
	return nil
}

func (f *fakeTaskService) Toggle(ctx context.Context, id string) (taskdomain.Task, error) {
	f.toggleCalls++
	f.lastID = id
	_ = ctx
	if f.toggleErr != nil {
		return taskdomain.Task{}, f.toggleErr
	}
	return taskdomain.Task{ID: snowflake.ID(42), Title: "follow up", Done: true}, nil
}

func newTaskRouter(token string, svc taskdomain.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)

	srv := &Server{
		cfg:     config.Config{APIToken: token},
		taskSvc: svc,
	}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	api := router.Group("/api", srv.AuthRequired())
	api.GET("/tasks", srv.ListTasks)
	api.POST("/tasks", srv.CreateTask)
	api.POST("/tasks/:id/toggle", srv.ToggleTask)
	return router
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) errorResponse {
	t.Helper()

	var body errorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func TestAuthRequiredRejectsMissingBearer(t *testing.T) {
	router := newTaskRouter("secret", &fakeTaskService{})

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
	if body := decodeError(t, resp); body.Error.Type != "auth_error" {
		t.Fatalf("error type = %q, want auth_error", body.Error.Type)
	}
}

func TestAuthRequiredRejectsWrongToken(t *testing.T) {
	router := newTaskRouter("secret", &fakeTaskService{})

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer nope")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestAuthRequiredRejectsWhenTokenUnset(t *testing.T) {
	router := newTaskRouter("", &fakeTaskService{})

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer anything")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 with no token configured, got %d", resp.Code)
	}
}

func TestAuthRequiredAcceptsValidToken(t *testing.T) {
	router := newTaskRouter("secret", &fakeTaskService{})

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer secret")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestToggleTaskHandler(t *testing.T) {
	svc := &fakeTaskService{}
	router := newTaskRouter("secret", svc)

	req := httptest.NewRequest(http.MethodPost, "/api/tasks/42/toggle", nil)
	req.Header.Set("Authorization", "Bearer secret")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.toggleCalls != 1 || svc.lastID != "42" {
		t.Fatalf("toggle calls = %d, last id = %q", svc.toggleCalls, svc.lastID)
	}
}

func TestToggleTaskHandlerNotFound(t *testing.T) {
	svc := &fakeTaskService{toggleErr: taskdomain.ErrNotFound}
	router := newTaskRouter("secret", svc)

	req := httptest.NewRequest(http.MethodPost, "/api/tasks/42/toggle", nil)
	req.Header.Set("Authorization", "Bearer secret")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
	if body := decodeError(t, resp); body.Error.Type != "not_found" {
		t.Fatalf("error type = %q, want not_found", body.Error.Type)
	}
}

func TestCreateTaskHandlerRejectsMalformedBody(t *testing.T) {
	router := newTaskRouter("secret", &fakeTaskService{})

	req := httptest.NewRequest(http.MethodPost, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer secret")
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	body := decodeError(t, resp)
	if body.Error.Type != "validation_error" {
		t.Fatalf("error type = %q, want validation_error", body.Error.Type)
	}
	if len(body.Error.Errors) != 1 || body.Error.Errors[0].Code != "invalid_request" {
		t.Fatalf("unexpected validation details: %+v", body.Error.Errors)
	}
}
