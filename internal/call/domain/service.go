package domain

import (
	"context"
	"errors"
)

type CreateCallRequest struct {
	StudentID   string `json:"student_id"`
	Title       string `json:"title" binding:"required"`
	ScheduledAt string `json:"scheduled_at" binding:"required"`
	DurationMin int    `json:"duration_min"`
	Notes       string `json:"notes"`
}

type UpdateCallRequest struct {
	Title       *string `json:"title"`
	ScheduledAt *string `json:"scheduled_at"`
	DurationMin *int    `json:"duration_min"`
	Completed   *bool   `json:"completed"`
	Notes       *string `json:"notes"`
}

type ListCallRequest struct {
	StudentID string
	// Upcoming keeps only calls scheduled at or after now.
	Upcoming bool
}

type Service interface {
	Create(context.Context, CreateCallRequest) (Call, error)
	List(context.Context, ListCallRequest) ([]Call, error)
	Update(ctx context.Context, id string, req UpdateCallRequest) (Call, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidTitle       = errors.New("invalid_title")
	ErrInvalidScheduledAt = errors.New("invalid_scheduled_at")
	ErrInvalidDuration    = errors.New("invalid_duration")
	ErrNotFound           = errors.New("not_found")
)
