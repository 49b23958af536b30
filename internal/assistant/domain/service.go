package domain

import (
	"context"
	"errors"
)

type TurnMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Messages []TurnMessage `json:"messages" binding:"required"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type Service interface {
	// Chat sends the conversation plus a dashboard-state system prompt to the
	// model and persists the final user turn and the reply.
	Chat(context.Context, ChatRequest) (ChatResponse, error)
	History(ctx context.Context, limit int) ([]ChatMessage, error)
}

var (
	ErrEmptyConversation = errors.New("empty_conversation")
	ErrInvalidRole       = errors.New("invalid_role")
	ErrNotConfigured     = errors.New("assistant_not_configured")
	ErrUpstream          = errors.New("assistant_upstream_error")
)
