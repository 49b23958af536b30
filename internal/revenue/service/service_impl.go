package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/solostack/mentordesk/internal/clock"
	"github.com/solostack/mentordesk/internal/config"
	"github.com/solostack/mentordesk/internal/providers/pdf"
	"github.com/solostack/mentordesk/internal/revenue/domain"
	settingsdomain "github.com/solostack/mentordesk/internal/settings/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Billing *config.BillingConfigHolder
	PDF     pdf.Provider
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	billing *config.BillingConfigHolder
	pdf     pdf.Provider
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("revenue.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		billing: p.Billing,
		pdf:     p.PDF,
	}
}

// Breakdown loads the month's inputs and delegates to the pure aggregation.
func (s *Service) Breakdown(ctx context.Context, monthKey string) (domain.Breakdown, error) {
	monthKey = strings.TrimSpace(monthKey)
	if !domain.ValidMonthKey(monthKey) {
		return domain.Breakdown{}, domain.ErrInvalidMonthKey
	}
	start, end, err := domain.MonthBounds(monthKey)
	if err != nil {
		return domain.Breakdown{}, domain.ErrInvalidMonthKey
	}

	var consulting []int64
	err = s.db.WithContext(ctx).Raw(
		`SELECT amount FROM payments WHERE amount > 0 AND paid_at >= ? AND paid_at < ?`,
		start, end,
	).Scan(&consulting).Error
	if err != nil {
		return domain.Breakdown{}, err
	}

	var annual []int64
	err = s.db.WithContext(ctx).Raw(
		`SELECT amount_paid FROM community_annual_members WHERE created_at >= ? AND created_at < ?`,
		start, end,
	).Scan(&annual).Error
	if err != nil {
		return domain.Breakdown{}, err
	}

	var settings settingsdomain.Settings
	err = s.db.WithContext(ctx).Raw(
		`SELECT id, monthly_goal, community_monthly_count FROM user_settings WHERE id = ?`,
		settingsdomain.SingletonID,
	).Scan(&settings).Error
	if err != nil {
		return domain.Breakdown{}, err
	}

	var manual domain.MonthlyRevenue
	err = s.db.WithContext(ctx).Raw(
		`SELECT id, month_key, agency_revenue, gumroad_revenue FROM monthly_revenues WHERE month_key = ?`,
		monthKey,
	).Scan(&manual).Error
	if err != nil {
		return domain.Breakdown{}, err
	}

	unitPrice := config.DefaultBillingConfig().CommunityUnitPrice
	if s.billing != nil {
		unitPrice = s.billing.Current().CommunityUnitPrice
	}

	return domain.Compute(monthKey, domain.Input{
		ConsultingPayments:    consulting,
		AnnualMemberPayments:  annual,
		CommunityMonthlyCount: settings.CommunityMonthlyCount,
		CommunityUnitPrice:    unitPrice,
		AgencyRevenue:         manual.AgencyRevenue,
		GumroadRevenue:        manual.GumroadRevenue,
		Goal:                  settings.MonthlyGoal,
	}), nil
}

func (s *Service) Upsert(ctx context.Context, req domain.UpsertMonthlyRevenueRequest) (domain.MonthlyRevenue, error) {
	monthKey := strings.TrimSpace(req.MonthKey)
	if !domain.ValidMonthKey(monthKey) {
		return domain.MonthlyRevenue{}, domain.ErrInvalidMonthKey
	}
	if req.AgencyRevenue < 0 || req.GumroadRevenue < 0 {
		return domain.MonthlyRevenue{}, domain.ErrInvalidAmount
	}

	now := s.clock.Now()
	var record domain.MonthlyRevenue

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.MonthlyRevenue
		err := tx.Where("month_key = ?", monthKey).First(&existing).Error
		switch {
		case err == nil:
			existing.AgencyRevenue = req.AgencyRevenue
			existing.GumroadRevenue = req.GumroadRevenue
			existing.UpdatedAt = now
			record = existing
			return tx.Save(&existing).Error
		case err == gorm.ErrRecordNotFound:
			record = domain.MonthlyRevenue{
				ID:             s.genID.Generate(),
				MonthKey:       monthKey,
				AgencyRevenue:  req.AgencyRevenue,
				GumroadRevenue: req.GumroadRevenue,
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			return tx.Create(&record).Error
		default:
			return err
		}
	})
	if err != nil {
		return domain.MonthlyRevenue{}, err
	}
	return record, nil
}

func (s *Service) Report(ctx context.Context, monthKey string) (io.Reader, error) {
	breakdown, err := s.Breakdown(ctx, monthKey)
	if err != nil {
		return nil, err
	}

	return s.pdf.RenderRevenueReport(ctx, pdf.ReportData{
		Title:       "Monthly Revenue Report",
		MonthKey:    breakdown.MonthKey,
		GeneratedAt: s.clock.Now().Format("2006-01-02 15:04 MST"),
		Lines: []pdf.ReportLine{
			{Label: "Consulting payments", Amount: formatCents(breakdown.ConsultingRevenue)},
			{Label: "Community memberships", Amount: formatCents(breakdown.CommunityRevenue)},
			{Label: "Agency", Amount: formatCents(breakdown.AgencyRevenue)},
			{Label: "Products", Amount: formatCents(breakdown.ProductRevenue)},
		},
		Total:           formatCents(breakdown.Total),
		Goal:            formatCents(breakdown.Goal),
		ProgressPercent: fmt.Sprintf("%.1f%%", breakdown.ProgressPercent),
	})
}

func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
