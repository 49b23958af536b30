package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/solostack/mentordesk/internal/assistant/domain"
	"github.com/solostack/mentordesk/internal/clock"
	overviewdomain "github.com/solostack/mentordesk/internal/overview/domain"
	"github.com/solostack/mentordesk/internal/providers/chat"
	"github.com/solostack/mentordesk/pkg/db/option"
	"github.com/solostack/mentordesk/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultHistoryLimit = 50

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Chat     chat.Provider
	Overview overviewdomain.Service
}

type Service struct {
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	chat     chat.Provider
	overview overviewdomain.Service
	repo     repository.Repository[domain.ChatMessage]
}

func New(p Params) domain.Service {
	return &Service{
		log:      p.Log.Named("assistant.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		chat:     p.Chat,
		overview: p.Overview,
		repo:     repository.ProvideStore[domain.ChatMessage](p.DB),
	}
}

func (s *Service) Chat(ctx context.Context, req domain.ChatRequest) (domain.ChatResponse, error) {
	if len(req.Messages) == 0 {
		return domain.ChatResponse{}, domain.ErrEmptyConversation
	}

	messages := make([]chat.Message, 0, len(req.Messages)+1)
	snapshot, err := s.overview.Get(ctx)
	if err != nil {
		// The assistant stays usable when the snapshot query fails; it just
		// answers without dashboard context.
		s.log.Warn("overview snapshot unavailable", zap.Error(err))
	} else {
		messages = append(messages, chat.Message{Role: chat.RoleSystem, Content: systemPrompt(snapshot)})
	}

	var lastUser string
	for _, turn := range req.Messages {
		if !turn.Role.Valid() {
			return domain.ChatResponse{}, domain.ErrInvalidRole
		}
		content := strings.TrimSpace(turn.Content)
		if content == "" {
			continue
		}
		messages = append(messages, chat.Message{Role: string(turn.Role), Content: content})
		if turn.Role == domain.RoleUser {
			lastUser = content
		}
	}
	if lastUser == "" {
		return domain.ChatResponse{}, domain.ErrEmptyConversation
	}

	reply, err := s.chat.Complete(ctx, messages)
	if err != nil {
		if errors.Is(err, chat.ErrNotConfigured) {
			return domain.ChatResponse{}, domain.ErrNotConfigured
		}
		// Provider failures are the upstream's fault, not ours.
		return domain.ChatResponse{}, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	now := s.clock.Now()
	userMsg := domain.ChatMessage{ID: s.genID.Generate(), Role: domain.RoleUser, Content: lastUser, CreatedAt: now}
	assistantMsg := domain.ChatMessage{ID: s.genID.Generate(), Role: domain.RoleAssistant, Content: reply, CreatedAt: now}
	if err := s.repo.Create(ctx, &userMsg); err != nil {
		s.log.Warn("persist user turn failed", zap.Error(err))
	}
	if err := s.repo.Create(ctx, &assistantMsg); err != nil {
		s.log.Warn("persist assistant turn failed", zap.Error(err))
	}

	return domain.ChatResponse{Reply: reply}, nil
}

func (s *Service) History(ctx context.Context, limit int) ([]domain.ChatMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultHistoryLimit
	}

	items, err := s.repo.Find(ctx, &domain.ChatMessage{},
		option.WithOrder("created_at desc, id desc"),
		option.WithLimit(limit),
	)
	if err != nil {
		return nil, err
	}

	// Stored newest-first, returned oldest-first for rendering.
	history := make([]domain.ChatMessage, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		if items[i] == nil {
			continue
		}
		history = append(history, *items[i])
	}
	return history, nil
}

// systemPrompt renders the dashboard snapshot the model answers against.
func systemPrompt(o overviewdomain.Overview) string {
	var b strings.Builder
	b.WriteString("You are the business assistant for a solo consulting practice. ")
	b.WriteString("Answer using the current dashboard state below. Amounts are in USD.\n\n")

	fmt.Fprintf(&b, "Month %s revenue: total %s of %s goal (%.1f%%).\n",
		o.MonthKey, dollars(o.Revenue.Total), dollars(o.Revenue.Goal), o.Revenue.ProgressPercent)
	fmt.Fprintf(&b, "Breakdown: consulting %s, community %s, agency %s, products %s.\n",
		dollars(o.Revenue.ConsultingRevenue), dollars(o.Revenue.CommunityRevenue),
		dollars(o.Revenue.AgencyRevenue), dollars(o.Revenue.ProductRevenue))
	fmt.Fprintf(&b, "Active students: %d. Months owed across roster: %d.\n",
		o.ActiveStudents, o.TotalMonthsOwed)

	if len(o.OverdueStudents) > 0 {
		b.WriteString("Overdue: ")
		b.WriteString(alertLine(o.OverdueStudents))
		b.WriteString("\n")
	}
	if len(o.UrgentStudents) > 0 {
		b.WriteString("Due soon: ")
		b.WriteString(alertLine(o.UrgentStudents))
		b.WriteString("\n")
	}
	if len(o.StagnantAccounts) > 0 {
		names := make([]string, 0, len(o.StagnantAccounts))
		for _, account := range o.StagnantAccounts {
			names = append(names, fmt.Sprintf("%s (%dd)", account.Name, account.DaysSincePayment))
		}
		fmt.Fprintf(&b, "Stagnant accounts: %s.\n", strings.Join(names, ", "))
	}

	fmt.Fprintf(&b, "Pending tasks: %d. Upcoming calls: %d.\n", o.PendingTasks, o.UpcomingCalls)
	return b.String()
}

func alertLine(alerts []overviewdomain.StudentAlert) string {
	parts := make([]string, 0, len(alerts))
	for _, alert := range alerts {
		parts = append(parts, fmt.Sprintf("%s (due %s, owes %d months)",
			alert.Name, alert.Billing.DueDate.Format("2006-01-02"), alert.Billing.MonthsOwed))
	}
	return strings.Join(parts, "; ")
}

func dollars(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
