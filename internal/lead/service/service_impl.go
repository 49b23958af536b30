package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/solostack/mentordesk/internal/clock"
	"github.com/solostack/mentordesk/internal/lead/domain"
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
	repo  repository.Repository[domain.Lead]
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("lead.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  repository.ProvideStore[domain.Lead](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateLeadRequest) (domain.Lead, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Lead{}, domain.ErrInvalidName
	}

	stage := req.Stage
	if stage == "" {
		stage = domain.StageNew
	}
	if !stage.Valid() {
		return domain.Lead{}, domain.ErrInvalidStage
	}

	now := s.clock.Now()
	lead := domain.Lead{
		ID:        s.genID.Generate(),
		Name:      name,
		Email:     strings.TrimSpace(req.Email),
		Company:   strings.TrimSpace(req.Company),
		Stage:     stage,
		Value:     req.Value,
		Source:    strings.TrimSpace(req.Source),
		Notes:     req.Notes,
		Metadata:  req.Metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// New cards land at the bottom of their stage.
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Lead{}).Where("stage = ?", stage).Count(&count).Error; err != nil {
			return err
		}
		lead.Position = int(count)
		return tx.Create(&lead).Error
	})
	if err != nil {
		return domain.Lead{}, err
	}
	return lead, nil
}

func (s *Service) List(ctx context.Context, req domain.ListLeadRequest) ([]domain.Lead, error) {
	query := &domain.Lead{}
	if req.Stage != "" {
		if !req.Stage.Valid() {
			return nil, domain.ErrInvalidStage
		}
		query.Stage = req.Stage
	}

	items, err := s.repo.Find(ctx, query, option.WithOrder("stage asc, position asc"))
	if err != nil {
		return nil, err
	}

	leads := make([]domain.Lead, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		leads = append(leads, *item)
	}
	return leads, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.Lead, error) {
	id, err := parseID(rawID)
	if err != nil {
		return domain.Lead{}, err
	}

	lead, err := s.repo.FindOne(ctx, &domain.Lead{ID: id})
	if err != nil {
		return domain.Lead{}, err
	}
	if lead == nil {
		return domain.Lead{}, domain.ErrNotFound
	}
	return *lead, nil
}

func (s *Service) Update(ctx context.Context, rawID string, req domain.UpdateLeadRequest) (domain.Lead, error) {
	id, err := parseID(rawID)
	if err != nil {
		return domain.Lead{}, err
	}

	existing, err := s.repo.FindOne(ctx, &domain.Lead{ID: id})
	if err != nil {
		return domain.Lead{}, err
	}
	if existing == nil {
		return domain.Lead{}, domain.ErrNotFound
	}

	fields := map[string]any{"updated_at": s.clock.Now()}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Lead{}, domain.ErrInvalidName
		}
		fields["name"] = name
	}
	if req.Email != nil {
		fields["email"] = strings.TrimSpace(*req.Email)
	}
	if req.Company != nil {
		fields["company"] = strings.TrimSpace(*req.Company)
	}
	if req.Value != nil {
		fields["value"] = *req.Value
	}
	if req.Source != nil {
		fields["source"] = strings.TrimSpace(*req.Source)
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	if req.Metadata != nil {
		fields["metadata"] = *req.Metadata
	}

	if err := s.repo.Update(ctx, id.String(), fields); err != nil {
		return domain.Lead{}, err
	}
	return s.GetByID(ctx, rawID)
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	// Close the position gap the removed card leaves behind.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lead domain.Lead
		if err := tx.Where("id = ?", id).First(&lead).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrNotFound
			}
			return err
		}
		if err := tx.Delete(&domain.Lead{}, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Lead{}).
			Where("stage = ? AND position > ?", lead.Stage, lead.Position).
			UpdateColumn("position", gorm.Expr("position - 1")).Error
	})
}

// Move reassigns a card's stage and position atomically, keeping positions in
// both affected stages contiguous.
func (s *Service) Move(ctx context.Context, rawID string, req domain.MoveLeadRequest) (domain.Lead, error) {
	id, err := parseID(rawID)
	if err != nil {
		return domain.Lead{}, err
	}
	if !req.Stage.Valid() {
		return domain.Lead{}, domain.ErrInvalidStage
	}

	var moved domain.Lead
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lead domain.Lead
		if err := tx.Where("id = ?", id).First(&lead).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrNotFound
			}
			return err
		}

		if err := tx.Model(&domain.Lead{}).
			Where("stage = ? AND position > ?", lead.Stage, lead.Position).
			UpdateColumn("position", gorm.Expr("position - 1")).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&domain.Lead{}).
			Where("stage = ? AND id <> ?", req.Stage, id).
			Count(&count).Error; err != nil {
			return err
		}
		position := req.Position
		if position < 0 {
			position = 0
		}
		if position > int(count) {
			position = int(count)
		}

		if err := tx.Model(&domain.Lead{}).
			Where("stage = ? AND id <> ? AND position >= ?", req.Stage, id, position).
			UpdateColumn("position", gorm.Expr("position + 1")).Error; err != nil {
			return err
		}

		if err := tx.Model(&domain.Lead{}).Where("id = ?", id).Updates(map[string]any{
			"stage":      req.Stage,
			"position":   position,
			"updated_at": s.clock.Now(),
		}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).First(&moved).Error
	})
	if err != nil {
		return domain.Lead{}, err
	}

	s.log.Info("lead moved",
		zap.String("lead_id", moved.ID.String()),
		zap.String("stage", string(moved.Stage)),
		zap.Int("position", moved.Position),
	)
	return moved, nil
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
