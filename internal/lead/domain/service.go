package domain

import (
	"context"
	"errors"

	"gorm.io/datatypes"
)

type CreateLeadRequest struct {
	Name     string            `json:"name" binding:"required"`
	Email    string            `json:"email"`
	Company  string            `json:"company"`
	Stage    Stage             `json:"stage"`
	Value    int64             `json:"value"`
	Source   string            `json:"source"`
	Notes    string            `json:"notes"`
	Metadata datatypes.JSONMap `json:"metadata"`
}

type UpdateLeadRequest struct {
	Name     *string            `json:"name"`
	Email    *string            `json:"email"`
	Company  *string            `json:"company"`
	Value    *int64             `json:"value"`
	Source   *string            `json:"source"`
	Notes    *string            `json:"notes"`
	Metadata *datatypes.JSONMap `json:"metadata"`
}

// MoveLeadRequest repositions a lead on the board. Position is clamped to the
// target stage's card count.
type MoveLeadRequest struct {
	Stage    Stage `json:"stage" binding:"required"`
	Position int   `json:"position"`
}

type ListLeadRequest struct {
	Stage Stage
}

type Service interface {
	Create(context.Context, CreateLeadRequest) (Lead, error)
	List(context.Context, ListLeadRequest) ([]Lead, error)
	GetByID(ctx context.Context, id string) (Lead, error)
	Update(ctx context.Context, id string, req UpdateLeadRequest) (Lead, error)
	Delete(ctx context.Context, id string) error
	Move(ctx context.Context, id string, req MoveLeadRequest) (Lead, error)
}

var (
	ErrInvalidID    = errors.New("invalid_id")
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidStage = errors.New("invalid_stage")
	ErrNotFound     = errors.New("not_found")
)
