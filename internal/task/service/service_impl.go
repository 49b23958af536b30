package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/solostack/mentordesk/internal/clock"
	"github.com/solostack/mentordesk/internal/task/domain"
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
	repo  repository.Repository[domain.Task]
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("task.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  repository.ProvideStore[domain.Task](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateTaskRequest) (domain.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Task{}, domain.ErrInvalidTitle
	}

	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return domain.Task{}, domain.ErrInvalidPriority
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return domain.Task{}, err
	}

	now := s.clock.Now()
	task := domain.Task{
		ID:        s.genID.Generate(),
		Title:     title,
		DueDate:   dueDate,
		Priority:  priority,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, &task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (s *Service) List(ctx context.Context, req domain.ListTaskRequest) ([]domain.Task, error) {
	opts := []option.QueryOption{option.WithOrder("done asc, due_date asc, created_at desc")}

	var items []*domain.Task
	var err error
	if req.Done != nil {
		// The zero-value query struct cannot express done=false, so filter
		// explicitly.
		items, err = s.repo.Find(ctx, &domain.Task{}, append(opts, option.WithWhere("done = ?", *req.Done))...)
	} else {
		items, err = s.repo.Find(ctx, &domain.Task{}, opts...)
	}
	if err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		tasks = append(tasks, *item)
	}
	return tasks, nil
}

func (s *Service) Update(ctx context.Context, rawID string, req domain.UpdateTaskRequest) (domain.Task, error) {
	id, err := parseID(rawID)
	if err != nil {
		return domain.Task{}, err
	}

	existing, err := s.repo.FindOne(ctx, &domain.Task{ID: id})
	if err != nil {
		return domain.Task{}, err
	}
	if existing == nil {
		return domain.Task{}, domain.ErrNotFound
	}

	fields := map[string]any{"updated_at": s.clock.Now()}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.Task{}, domain.ErrInvalidTitle
		}
		fields["title"] = title
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(*req.DueDate)
		if err != nil {
			return domain.Task{}, err
		}
		fields["due_date"] = dueDate
	}
	if req.Priority != nil {
		if !req.Priority.Valid() {
			return domain.Task{}, domain.ErrInvalidPriority
		}
		fields["priority"] = *req.Priority
	}
	if req.Done != nil {
		fields["done"] = *req.Done
	}

	if err := s.repo.Update(ctx, id.String(), fields); err != nil {
		return domain.Task{}, err
	}
	return s.get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindOne(ctx, &domain.Task{ID: id})
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, id.String())
}

func (s *Service) Toggle(ctx context.Context, rawID string) (domain.Task, error) {
	id, err := parseID(rawID)
	if err != nil {
		return domain.Task{}, err
	}

	existing, err := s.repo.FindOne(ctx, &domain.Task{ID: id})
	if err != nil {
		return domain.Task{}, err
	}
	if existing == nil {
		return domain.Task{}, domain.ErrNotFound
	}

	err = s.repo.Update(ctx, id.String(), map[string]any{
		"done":       !existing.Done,
		"updated_at": s.clock.Now(),
	})
	if err != nil {
		return domain.Task{}, err
	}
	return s.get(ctx, id)
}

func (s *Service) get(ctx context.Context, id snowflake.ID) (domain.Task, error) {
	task, err := s.repo.FindOne(ctx, &domain.Task{ID: id})
	if err != nil {
		return domain.Task{}, err
	}
	if task == nil {
		return domain.Task{}, domain.ErrNotFound
	}
	return *task, nil
}

func parseDueDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, domain.ErrInvalidDueDate
	}
	return &parsed, nil
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
