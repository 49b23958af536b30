package service

import (
	"context"
	"time"

	"github.com/solostack/mentordesk/internal/billing"
	"github.com/solostack/mentordesk/internal/cache"
	"github.com/solostack/mentordesk/internal/clock"
	"github.com/solostack/mentordesk/internal/config"
	leaddomain "github.com/solostack/mentordesk/internal/lead/domain"
	"github.com/solostack/mentordesk/internal/overview/domain"
	revenuedomain "github.com/solostack/mentordesk/internal/revenue/domain"
	studentdomain "github.com/solostack/mentordesk/internal/student/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const snapshotTTL = 30 * time.Second

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	Billing *config.BillingConfigHolder
	Revenue revenuedomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	clock    clock.Clock
	billing  *config.BillingConfigHolder
	revenue  revenuedomain.Service
	snapshot cache.Cache[string, domain.Overview]
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("overview.service"),
		clock:    p.Clock,
		billing:  p.Billing,
		revenue:  p.Revenue,
		snapshot: cache.NewTTLCache[string, domain.Overview](),
	}
}

// Get assembles the dashboard snapshot. Snapshots are cached briefly; the
// dashboard polls and every section derives from the same instant.
func (s *Service) Get(ctx context.Context) (domain.Overview, error) {
	now := s.clock.Now()
	monthKey := now.UTC().Format("2006-01")

	if cached, ok := s.snapshot.Get(monthKey); ok {
		return cached, nil
	}

	breakdown, err := s.revenue.Breakdown(ctx, monthKey)
	if err != nil {
		return domain.Overview{}, err
	}

	cfg := config.DefaultBillingConfig()
	if s.billing != nil {
		cfg = s.billing.Current()
	}
	rules := billing.Rules{CycleDays: cfg.CycleDays, UrgentWindowDays: cfg.UrgentWindowDays}

	var students []studentdomain.Student
	err = s.db.WithContext(ctx).
		Preload("Payments", func(tx *gorm.DB) *gorm.DB { return tx.Order("paid_at asc") }).
		Where("status = ?", studentdomain.StudentStatusActive).
		Find(&students).Error
	if err != nil {
		return domain.Overview{}, err
	}

	overview := domain.Overview{
		MonthKey:         monthKey,
		Revenue:          breakdown,
		ActiveStudents:   len(students),
		OverdueStudents:  []domain.StudentAlert{},
		UrgentStudents:   []domain.StudentAlert{},
		StagnantAccounts: []domain.StagnantAccount{},
		GeneratedAt:      now,
	}

	for _, student := range students {
		events := make([]billing.PaymentEvent, 0, len(student.Payments))
		for _, payment := range student.Payments {
			events = append(events, billing.PaymentEvent{Amount: payment.Amount, PaidAt: payment.PaidAt})
		}

		status := billing.Compute(billing.Input{
			StartDate:  student.StartDate,
			PaidInFull: student.PaidInFull,
			Payments:   events,
			AsOf:       now,
			Rules:      rules,
		})

		overview.TotalMonthsOwed += status.MonthsOwed
		alert := domain.StudentAlert{ID: student.ID, Name: student.Name, Billing: status}
		switch {
		case status.IsOverdue:
			overview.OverdueStudents = append(overview.OverdueStudents, alert)
		case status.IsUrgent:
			overview.UrgentStudents = append(overview.UrgentStudents, alert)
		}

		if stagnant, ok := stagnantAccount(student, now, cfg.StagnantAfterDays); ok {
			overview.StagnantAccounts = append(overview.StagnantAccounts, stagnant)
		}
	}

	counts, err := s.leadCounts(ctx)
	if err != nil {
		return domain.Overview{}, err
	}
	overview.LeadCounts = counts

	err = s.db.WithContext(ctx).
		Table("tasks").
		Where("done = ?", false).
		Count(&overview.PendingTasks).Error
	if err != nil {
		return domain.Overview{}, err
	}

	err = s.db.WithContext(ctx).
		Table("calls").
		Where("completed = ? AND scheduled_at >= ?", false, now).
		Count(&overview.UpcomingCalls).Error
	if err != nil {
		return domain.Overview{}, err
	}

	s.snapshot.Set(monthKey, overview, snapshotTTL)
	return overview, nil
}

func (s *Service) leadCounts(ctx context.Context) ([]domain.StageCount, error) {
	type row struct {
		Stage leaddomain.Stage
		Count int64
	}

	var rows []row
	err := s.db.WithContext(ctx).
		Table("leads").
		Select("stage, COUNT(*) AS count").
		Group("stage").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byStage := make(map[leaddomain.Stage]int64, len(rows))
	for _, r := range rows {
		byStage[r.Stage] = r.Count
	}

	// Every stage appears, zeroes included, in board order.
	counts := make([]domain.StageCount, 0, len(leaddomain.Stages))
	for _, stage := range leaddomain.Stages {
		counts = append(counts, domain.StageCount{Stage: stage, Count: byStage[stage]})
	}
	return counts, nil
}

func stagnantAccount(student studentdomain.Student, asOf time.Time, afterDays int) (domain.StagnantAccount, bool) {
	if afterDays <= 0 || student.PaidInFull {
		return domain.StagnantAccount{}, false
	}

	var lastPayment *time.Time
	for _, payment := range student.Payments {
		if payment.Amount <= 0 {
			continue
		}
		paidAt := payment.PaidAt
		if lastPayment == nil || paidAt.After(*lastPayment) {
			lastPayment = &paidAt
		}
	}

	anchor := student.StartDate
	if lastPayment != nil {
		anchor = *lastPayment
	}

	days := int(billing.DateOnly(asOf).Sub(billing.DateOnly(anchor)).Hours() / 24)
	if days < afterDays {
		return domain.StagnantAccount{}, false
	}

	return domain.StagnantAccount{
		ID:               student.ID,
		Name:             student.Name,
		LastPaymentAt:    lastPayment,
		DaysSincePayment: days,
	}, true
}
