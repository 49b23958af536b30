package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/solostack/mentordesk/internal/clock"
	"github.com/solostack/mentordesk/internal/note/domain"
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
	repo  repository.Repository[domain.Note]
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("note.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  repository.ProvideStore[domain.Note](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateNoteRequest) (domain.Note, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Note{}, domain.ErrInvalidTitle
	}

	now := s.clock.Now()
	note := domain.Note{
		ID:        s.genID.Generate(),
		Title:     title,
		Body:      req.Body,
		Pinned:    req.Pinned,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, &note); err != nil {
		return domain.Note{}, err
	}
	return note, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Note, error) {
	items, err := s.repo.Find(ctx, &domain.Note{}, option.WithOrder("pinned desc, updated_at desc"))
	if err != nil {
		return nil, err
	}

	notes := make([]domain.Note, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		notes = append(notes, *item)
	}
	return notes, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.Note, error) {
	id, err := parseID(rawID)
	if err != nil {
		return domain.Note{}, err
	}
	return s.get(ctx, id)
}

func (s *Service) Update(ctx context.Context, rawID string, req domain.UpdateNoteRequest) (domain.Note, error) {
	id, err := parseID(rawID)
	if err != nil {
		return domain.Note{}, err
	}

	existing, err := s.repo.FindOne(ctx, &domain.Note{ID: id})
	if err != nil {
		return domain.Note{}, err
	}
	if existing == nil {
		return domain.Note{}, domain.ErrNotFound
	}

	fields := map[string]any{"updated_at": s.clock.Now()}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.Note{}, domain.ErrInvalidTitle
		}
		fields["title"] = title
	}
	if req.Body != nil {
		fields["body"] = *req.Body
	}
	if req.Pinned != nil {
		fields["pinned"] = *req.Pinned
	}

	if err := s.repo.Update(ctx, id.String(), fields); err != nil {
		return domain.Note{}, err
	}
	return s.get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindOne(ctx, &domain.Note{ID: id})
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, id.String())
}

func (s *Service) get(ctx context.Context, id snowflake.ID) (domain.Note, error) {
	note, err := s.repo.FindOne(ctx, &domain.Note{ID: id})
	if err != nil {
		return domain.Note{}, err
	}
	if note == nil {
		return domain.Note{}, domain.ErrNotFound
	}
	return *note, nil
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
