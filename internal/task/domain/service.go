package domain

import (
	"context"
	"errors"
)

type CreateTaskRequest struct {
	Title    string   `json:"title" binding:"required"`
	DueDate  string   `json:"due_date"`
	Priority Priority `json:"priority"`
}

type UpdateTaskRequest struct {
	Title    *string   `json:"title"`
	DueDate  *string   `json:"due_date"`
	Priority *Priority `json:"priority"`
	Done     *bool     `json:"done"`
}

type ListTaskRequest struct {
	// Done filters by completion when set.
	Done *bool
}

type Service interface {
	Create(context.Context, CreateTaskRequest) (Task, error)
	List(context.Context, ListTaskRequest) ([]Task, error)
	Update(ctx context.Context, id string, req UpdateTaskRequest) (Task, error)
	Delete(ctx context.Context, id string) error
	Toggle(ctx context.Context, id string) (Task, error)
}

var (
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidTitle    = errors.New("invalid_title")
	ErrInvalidDueDate  = errors.New("invalid_due_date")
	ErrInvalidPriority = errors.New("invalid_priority")
	ErrNotFound        = errors.New("not_found")
)
