package domain

import (
	"context"
	"errors"
)

type CreateNoteRequest struct {
	Title  string `json:"title" binding:"required"`
	Body   string `json:"body"`
	Pinned bool   `json:"pinned"`
}

type UpdateNoteRequest struct {
	Title  *string `json:"title"`
	Body   *string `json:"body"`
	Pinned *bool   `json:"pinned"`
}

type Service interface {
	Create(context.Context, CreateNoteRequest) (Note, error)
	List(ctx context.Context) ([]Note, error)
	GetByID(ctx context.Context, id string) (Note, error)
	Update(ctx context.Context, id string, req UpdateNoteRequest) (Note, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID    = errors.New("invalid_id")
	ErrInvalidTitle = errors.New("invalid_title")
	ErrNotFound     = errors.New("not_found")
)
