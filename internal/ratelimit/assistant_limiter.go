package ratelimit

import (
	"context"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/solostack/mentordesk/internal/config"
)

const keyAssistantChat = "assistant:chat"

const (
	// Model calls are slow and priced per token; one bucket covers the
	// single-user deployment.
	assistantRate  = 0.2
	assistantBurst = 5
)

// AssistantLimiter throttles assistant chat calls. Without a redis address
// configured the limiter is disabled and every call passes.
type AssistantLimiter struct {
	bucket *TokenBucket
}

func NewAssistantLimiter(cfg config.Config) *AssistantLimiter {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return &AssistantLimiter{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(cfg.RedisPassword),
	})
	return &AssistantLimiter{bucket: NewTokenBucket(client)}
}

func (l *AssistantLimiter) Enabled() bool {
	return l != nil && l.bucket != nil
}

func (l *AssistantLimiter) Allow(ctx context.Context) (Result, error) {
	if !l.Enabled() {
		return Result{Allowed: true}, nil
	}
	return l.bucket.Allow(ctx, keyAssistantChat, assistantRate, assistantBurst)
}
