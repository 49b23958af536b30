package domain

import (
	"context"
	"errors"
)

type UpdateSettingsRequest struct {
	MonthlyGoal           *int64
	CommunityMonthlyCount *int
}

type Service interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, req UpdateSettingsRequest) (Settings, error)
}

var ErrInvalidValue = errors.New("invalid_value")
