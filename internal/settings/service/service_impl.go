package service

import (
	"context"

	"github.com/solostack/mentordesk/internal/clock"
	"github.com/solostack/mentordesk/internal/settings/domain"
	"github.com/solostack/mentordesk/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	repo  repository.Repository[domain.Settings]
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("settings.service"),
		clock: p.Clock,
		repo:  repository.ProvideStore[domain.Settings](p.DB),
	}
}

// Get returns the settings row, creating the default row on first access.
func (s *Service) Get(ctx context.Context) (domain.Settings, error) {
	existing, err := s.repo.FindOne(ctx, &domain.Settings{ID: domain.SingletonID})
	if err != nil {
		return domain.Settings{}, err
	}
	if existing != nil {
		return *existing, nil
	}

	settings := domain.Settings{
		ID:        domain.SingletonID,
		UpdatedAt: s.clock.Now(),
	}
	if err := s.repo.Create(ctx, &settings); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateSettingsRequest) (domain.Settings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return domain.Settings{}, err
	}

	if req.MonthlyGoal != nil {
		if *req.MonthlyGoal < 0 {
			return domain.Settings{}, domain.ErrInvalidValue
		}
		settings.MonthlyGoal = *req.MonthlyGoal
	}
	if req.CommunityMonthlyCount != nil {
		if *req.CommunityMonthlyCount < 0 {
			return domain.Settings{}, domain.ErrInvalidValue
		}
		settings.CommunityMonthlyCount = *req.CommunityMonthlyCount
	}
	settings.UpdatedAt = s.clock.Now()

	err = s.db.WithContext(ctx).Save(&settings).Error
	if err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}
