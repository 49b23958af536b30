package chat

import (
	"context"
	"errors"
)

// Message is one role-tagged turn in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Provider wraps a hosted chat-completion API: an ordered list of messages
// in, a single text reply out.
type Provider interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

var ErrNotConfigured = errors.New("chat provider not configured")

// NoOpProvider is installed when no API endpoint is configured.
type NoOpProvider struct{}

func (p *NoOpProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	return "", ErrNotConfigured
}
