package server

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	assistantdomain "github.com/solostack/mentordesk/internal/assistant/domain"
	"github.com/solostack/mentordesk/internal/config"
)

type fakeAssistantService struct {
	chatCalls int
	lastReq   assistantdomain.ChatRequest
	chatErr   error
}

func (f *fakeAssistantService) Chat(ctx context.Context, req assistantdomain.ChatRequest) (assistantdomain.ChatResponse, error) {
	f.chatCalls++
	f.lastReq = req
	_ = ctx
	if f.chatErr != nil {
		return assistantdomain.ChatResponse{}, f.chatErr
	}
	return assistantdomain.ChatResponse{Reply: "revenue is on track"}, nil
}

func (f *fakeAssistantService) History(ctx context.Context, limit int) ([]assistantdomain.ChatMessage, error) {
	_ = ctx
	_ = limit
	return []assistantdomain.ChatMessage{}, nil
}

func newAssistantRouter(svc assistantdomain.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)

	srv := &Server{
		cfg:          config.Config{APIToken: "secret"},
		assistantSvc: svc,
	}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	api := router.Group("/api", srv.AuthRequired())
	api.POST("/assistant/chat", srv.AssistantRateLimit(), srv.AssistantChat)
	api.GET("/assistant/history", srv.AssistantHistory)
	return router
}

func postChat(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/assistant/chat", bytes.NewBufferString(body))
	req.Header.Set("Authorization", "Bearer secret")
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestAssistantChatHandler(t *testing.T) {
	svc := &fakeAssistantService{}
	router := newAssistantRouter(svc)

	resp := postChat(router, `{"messages":[{"role":"user","content":"how is this month going?"}]}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.chatCalls != 1 {
		t.Fatalf("chat calls = %d, want 1", svc.chatCalls)
	}
	if len(svc.lastReq.Messages) != 1 || svc.lastReq.Messages[0].Content != "how is this month going?" {
		t.Fatalf("unexpected request passed to service: %+v", svc.lastReq)
	}
}

// A nil limiter means no Redis was configured; the middleware must not block.
func TestAssistantChatPassesWithoutLimiter(t *testing.T) {
	router := newAssistantRouter(&fakeAssistantService{})

	resp := postChat(router, `{"messages":[{"role":"user","content":"hi"}]}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 with nil limiter, got %d", resp.Code)
	}
}

func TestAssistantChatNotConfiguredMapsToBadGateway(t *testing.T) {
	svc := &fakeAssistantService{chatErr: assistantdomain.ErrNotConfigured}
	router := newAssistantRouter(svc)

	resp := postChat(router, `{"messages":[{"role":"user","content":"hi"}]}`)
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", resp.Code)
	}
	if body := decodeError(t, resp); body.Error.Type != "upstream_error" {
		t.Fatalf("error type = %q, want upstream_error", body.Error.Type)
	}
}

func TestAssistantChatProviderFailureMapsToBadGateway(t *testing.T) {
	svc := &fakeAssistantService{
		chatErr: fmt.Errorf("%w: request failed (status 500)", assistantdomain.ErrUpstream),
	}
	router := newAssistantRouter(svc)

	resp := postChat(router, `{"messages":[{"role":"user","content":"hi"}]}`)
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d: %s", resp.Code, resp.Body.String())
	}
	if body := decodeError(t, resp); body.Error.Type != "upstream_error" {
		t.Fatalf("error type = %q, want upstream_error", body.Error.Type)
	}
}

func TestAssistantChatEmptyConversationIsValidationError(t *testing.T) {
	svc := &fakeAssistantService{chatErr: assistantdomain.ErrEmptyConversation}
	router := newAssistantRouter(svc)

	resp := postChat(router, `{"messages":[]}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}
}
