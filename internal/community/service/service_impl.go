package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/solostack/mentordesk/internal/clock"
	"github.com/solostack/mentordesk/internal/community/domain"
	"github.com/solostack/mentordesk/pkg/db/option"
	"github.com/solostack/mentordesk/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  repository.Repository[domain.AnnualMember]
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("community.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  repository.ProvideStore[domain.AnnualMember](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateAnnualMemberRequest) (domain.AnnualMember, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.AnnualMember{}, domain.ErrInvalidName
	}
	if req.AmountPaid <= 0 {
		return domain.AnnualMember{}, domain.ErrInvalidAmount
	}

	joinedAt := s.clock.Now()
	if raw := strings.TrimSpace(req.JoinedAt); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return domain.AnnualMember{}, domain.ErrInvalidDate
		}
		joinedAt = parsed
	}

	member := domain.AnnualMember{
		ID:         s.genID.Generate(),
		Name:       name,
		AmountPaid: req.AmountPaid,
		Source:     strings.TrimSpace(req.Source),
		CreatedAt:  joinedAt,
	}

	if err := s.repo.Create(ctx, &member); err != nil {
		return domain.AnnualMember{}, err
	}
	return member, nil
}

func (s *Service) List(ctx context.Context) ([]domain.AnnualMember, error) {
	items, err := s.repo.Find(ctx, &domain.AnnualMember{}, option.WithOrder("created_at desc, id desc"))
	if err != nil {
		return nil, err
	}

	members := make([]domain.AnnualMember, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		members = append(members, *item)
	}
	return members, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := snowflake.ParseString(strings.TrimSpace(rawID))
	if err != nil || id == 0 {
		return domain.ErrInvalidID
	}

	existing, err := s.repo.FindOne(ctx, &domain.AnnualMember{ID: id})
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, id.String())
}
