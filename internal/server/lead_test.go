package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/solostack/mentordesk/internal/config"
	leaddomain "github.com/solostack/mentordesk/internal/lead/domain"
)

type fakeLeadService struct {
	moveCalls int
	lastID    string
	lastMove  leaddomain.MoveLeadRequest
	moveErr   error
}

func (f *fakeLeadService) Create(ctx context.Context, req leaddomain.CreateLeadRequest) (leaddomain.Lead, error) {
	_ = ctx
	return leaddomain.Lead{ID: snowflake.ID(1), Name: req.Name, Stage: leaddomain.StageNew}, nil
}

func (f *fakeLeadService) List(ctx context.Context, req leaddomain.ListLeadRequest) ([]leaddomain.Lead, error) {
	_ = ctx
	_ = req
	return []leaddomain.Lead{}, nil
}

func (f *fakeLeadService) GetByID(ctx context.Context, id string) (leaddomain.Lead, error) {
	_ = ctx
	_ = id
	return leaddomain.Lead{}, nil
}

func (f *fakeLeadService) Update(ctx context.Context, id string, req leaddomain.UpdateLeadRequest) (leaddomain.Lead, error) {
	_ = ctx
	_ = id
	_ = req
	return leaddomain.Lead{}, nil
}

func (f *fakeLeadService) Delete(ctx context.Context, id string) error {
	_ = ctx
	_ = id
	return nil
}

func (f *fakeLeadService) Move(ctx context.Context, id string, req leaddomain.MoveLeadRequest) (leaddomain.Lead, error) {
	f.moveCalls++
	f.lastID = id
	f.lastMove = req
	_ = ctx
	if f.moveErr != nil {
		return leaddomain.Lead{}, f.moveErr
	}
	return leaddomain.Lead{ID: snowflake.ID(7), Name: "Acme", Stage: req.Stage, Position: req.Position}, nil
}

func newLeadRouter(svc leaddomain.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)

	srv := &Server{
		cfg:     config.Config{APIToken: "secret"},
		leadSvc: svc,
	}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	api := router.Group("/api", srv.AuthRequired())
	api.POST("/leads/:id/move", srv.MoveLead)
	return router
}

func postMove(router *gin.Engine, id, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/leads/"+id+"/move", bytes.NewBufferString(body))
	req.Header.Set("Authorization", "Bearer secret")
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestMoveLeadHandler(t *testing.T) {
	svc := &fakeLeadService{}
	router := newLeadRouter(svc)

	resp := postMove(router, "7", `{"stage":"qualified","position":2}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.moveCalls != 1 || svc.lastID != "7" {
		t.Fatalf("move calls = %d, last id = %q", svc.moveCalls, svc.lastID)
	}
	if svc.lastMove.Stage != leaddomain.StageQualified || svc.lastMove.Position != 2 {
		t.Fatalf("unexpected move request: %+v", svc.lastMove)
	}
}

func TestMoveLeadHandlerInvalidStage(t *testing.T) {
	svc := &fakeLeadService{moveErr: leaddomain.ErrInvalidStage}
	router := newLeadRouter(svc)

	resp := postMove(router, "7", `{"stage":"archived"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if body := decodeError(t, resp); body.Error.Type != "validation_error" {
		t.Fatalf("error type = %q, want validation_error", body.Error.Type)
	}
}

func TestMoveLeadHandlerNotFound(t *testing.T) {
	svc := &fakeLeadService{moveErr: leaddomain.ErrNotFound}
	router := newLeadRouter(svc)

	resp := postMove(router, "7", `{"stage":"won"}`)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}
