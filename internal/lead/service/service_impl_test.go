package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/solostack/mentordesk/internal/clock"
	"github.com/solostack/mentordesk/internal/lead/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&domain.Lead{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(3)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)),
	})
}

func seedLeads(t *testing.T, svc domain.Service, stage domain.Stage, names ...string) []domain.Lead {
	t.Helper()

	ctx := context.Background()
	leads := make([]domain.Lead, 0, len(names))
	for _, name := range names {
		lead, err := svc.Create(ctx, domain.CreateLeadRequest{Name: name, Stage: stage})
		if err != nil {
			t.Fatalf("create %q: %v", name, err)
		}
		leads = append(leads, lead)
	}
	return leads
}

func boardPositions(t *testing.T, svc domain.Service, stage domain.Stage) []string {
	t.Helper()

	leads, err := svc.List(context.Background(), domain.ListLeadRequest{Stage: stage})
	if err != nil {
		t.Fatalf("list %s: %v", stage, err)
	}
	names := make([]string, len(leads))
	for i, lead := range leads {
		if lead.Position != i {
			t.Fatalf("stage %s position gap: %q at %d, want %d", stage, lead.Name, lead.Position, i)
		}
		names[i] = lead.Name
	}
	return names
}

func TestCreateLeadAppendsToStage(t *testing.T) {
	svc := newTestService(t)
	leads := seedLeads(t, svc, domain.StageNew, "a", "b", "c")

	for i, lead := range leads {
		if lead.Position != i {
			t.Fatalf("lead %q position = %d, want %d", lead.Name, lead.Position, i)
		}
	}
}

func TestCreateLeadDefaultsToNewStage(t *testing.T) {
	svc := newTestService(t)

	lead, err := svc.Create(context.Background(), domain.CreateLeadRequest{Name: "walk-in"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if lead.Stage != domain.StageNew {
		t.Fatalf("stage = %q, want new", lead.Stage)
	}

	if _, err := svc.Create(context.Background(), domain.CreateLeadRequest{Name: "x", Stage: "archived"}); err != domain.ErrInvalidStage {
		t.Fatalf("bad stage: err = %v, want %v", err, domain.ErrInvalidStage)
	}
}

func TestMoveLeadAcrossStagesKeepsPositionsContiguous(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	fresh := seedLeads(t, svc, domain.StageNew, "a", "b", "c")
	seedLeads(t, svc, domain.StageQualified, "x", "y")

	// Move "b" into the middle of qualified.
	moved, err := svc.Move(ctx, fresh[1].ID.String(), domain.MoveLeadRequest{
		Stage:    domain.StageQualified,
		Position: 1,
	})
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if moved.Stage != domain.StageQualified || moved.Position != 1 {
		t.Fatalf("moved to %s/%d, want qualified/1", moved.Stage, moved.Position)
	}

	if got := boardPositions(t, svc, domain.StageNew); len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("new stage order = %v, want [a c]", got)
	}
	if got := boardPositions(t, svc, domain.StageQualified); len(got) != 3 || got[0] != "x" || got[1] != "b" || got[2] != "y" {
		t.Fatalf("qualified order = %v, want [x b y]", got)
	}
}

func TestMoveLeadClampsPosition(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	leads := seedLeads(t, svc, domain.StageNew, "a", "b")

	moved, err := svc.Move(ctx, leads[0].ID.String(), domain.MoveLeadRequest{
		Stage:    domain.StageWon,
		Position: 99,
	})
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if moved.Position != 0 {
		t.Fatalf("position = %d, want clamp to 0 in empty stage", moved.Position)
	}

	moved, err = svc.Move(ctx, leads[1].ID.String(), domain.MoveLeadRequest{
		Stage:    domain.StageWon,
		Position: -5,
	})
	if err != nil {
		t.Fatalf("second move: %v", err)
	}
	if moved.Position != 0 {
		t.Fatalf("position = %d, want clamp to 0", moved.Position)
	}
	if got := boardPositions(t, svc, domain.StageWon); len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Fatalf("won order = %v, want [b a]", got)
	}
}

func TestMoveLeadWithinStage(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	leads := seedLeads(t, svc, domain.StageNew, "a", "b", "c")

	if _, err := svc.Move(ctx, leads[2].ID.String(), domain.MoveLeadRequest{
		Stage:    domain.StageNew,
		Position: 0,
	}); err != nil {
		t.Fatalf("move: %v", err)
	}
	if got := boardPositions(t, svc, domain.StageNew); got[0] != "c" || got[1] != "a" || got[2] != "b" {
		t.Fatalf("order = %v, want [c a b]", got)
	}
}

func TestDeleteLeadClosesGap(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	leads := seedLeads(t, svc, domain.StageNew, "a", "b", "c")

	if err := svc.Delete(ctx, leads[1].ID.String()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := boardPositions(t, svc, domain.StageNew); len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("order = %v, want [a c]", got)
	}

	if err := svc.Delete(ctx, leads[1].ID.String()); err != domain.ErrNotFound {
		t.Fatalf("double delete: err = %v, want %v", err, domain.ErrNotFound)
	}
}
