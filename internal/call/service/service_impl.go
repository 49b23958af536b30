package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/solostack/mentordesk/internal/call/domain"
	"github.com/solostack/mentordesk/internal/clock"
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
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  repository.Repository[domain.Call]
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("call.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  repository.ProvideStore[domain.Call](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCallRequest) (domain.Call, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Call{}, domain.ErrInvalidTitle
	}
	if req.DurationMin < 0 {
		return domain.Call{}, domain.ErrInvalidDuration
	}

	scheduledAt, err := parseScheduledAt(req.ScheduledAt)
	if err != nil {
		return domain.Call{}, err
	}

	var studentID *snowflake.ID
	if raw := strings.TrimSpace(req.StudentID); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil || id == 0 {
			return domain.Call{}, domain.ErrInvalidID
		}
		studentID = &id
	}

	now := s.clock.Now()
	call := domain.Call{
		ID:          s.genID.Generate(),
		StudentID:   studentID,
		Title:       title,
		ScheduledAt: scheduledAt,
		DurationMin: req.DurationMin,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, &call); err != nil {
		return domain.Call{}, err
	}
	return call, nil
}

func (s *Service) List(ctx context.Context, req domain.ListCallRequest) ([]domain.Call, error) {
	opts := []option.QueryOption{option.WithOrder("scheduled_at asc")}

	query := &domain.Call{}
	if raw := strings.TrimSpace(req.StudentID); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil || id == 0 {
			return nil, domain.ErrInvalidID
		}
		query.StudentID = &id
	}
	if req.Upcoming {
		opts = append(opts, option.WithWhere("scheduled_at >= ?", s.clock.Now()))
	}

	items, err := s.repo.Find(ctx, query, opts...)
	if err != nil {
		return nil, err
	}

	calls := make([]domain.Call, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		calls = append(calls, *item)
	}
	return calls, nil
}

func (s *Service) Update(ctx context.Context, rawID string, req domain.UpdateCallRequest) (domain.Call, error) {
	id, err := parseID(rawID)
	if err != nil {
		return domain.Call{}, err
	}

	existing, err := s.repo.FindOne(ctx, &domain.Call{ID: id})
	if err != nil {
		return domain.Call{}, err
	}
	if existing == nil {
		return domain.Call{}, domain.ErrNotFound
	}

	fields := map[string]any{"updated_at": s.clock.Now()}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.Call{}, domain.ErrInvalidTitle
		}
		fields["title"] = title
	}
	if req.ScheduledAt != nil {
		scheduledAt, err := parseScheduledAt(*req.ScheduledAt)
		if err != nil {
			return domain.Call{}, err
		}
		fields["scheduled_at"] = scheduledAt
	}
	if req.DurationMin != nil {
		if *req.DurationMin < 0 {
			return domain.Call{}, domain.ErrInvalidDuration
		}
		fields["duration_min"] = *req.DurationMin
	}
	if req.Completed != nil {
		fields["completed"] = *req.Completed
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	if err := s.repo.Update(ctx, id.String(), fields); err != nil {
		return domain.Call{}, err
	}

	updated, err := s.repo.FindOne(ctx, &domain.Call{ID: id})
	if err != nil {
		return domain.Call{}, err
	}
	if updated == nil {
		return domain.Call{}, domain.ErrNotFound
	}
	return *updated, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindOne(ctx, &domain.Call{ID: id})
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, id.String())
}

func parseScheduledAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, domain.ErrInvalidScheduledAt
	}
	return parsed, nil
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
