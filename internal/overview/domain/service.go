package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/solostack/mentordesk/internal/billing"
	leaddomain "github.com/solostack/mentordesk/internal/lead/domain"
	revenuedomain "github.com/solostack/mentordesk/internal/revenue/domain"
)

// StudentAlert is a student surfaced on the dashboard for attention, with
// the billing status that put them there.
type StudentAlert struct {
	ID      snowflake.ID   `json:"id"`
	Name    string         `json:"name"`
	Billing billing.Status `json:"billing"`
}

// StagnantAccount is an active student with no positive payment inside the
// configured window.
type StagnantAccount struct {
	ID               snowflake.ID `json:"id"`
	Name             string       `json:"name"`
	LastPaymentAt    *time.Time   `json:"last_payment_at,omitempty"`
	DaysSincePayment int          `json:"days_since_payment"`
}

type StageCount struct {
	Stage leaddomain.Stage `json:"stage"`
	Count int64            `json:"count"`
}

// Overview is the dashboard snapshot: this month's revenue against the goal
// plus everything that needs attention.
type Overview struct {
	MonthKey         string                  `json:"month_key"`
	Revenue          revenuedomain.Breakdown `json:"revenue"`
	ActiveStudents   int                     `json:"active_students"`
	OverdueStudents  []StudentAlert          `json:"overdue_students"`
	UrgentStudents   []StudentAlert          `json:"urgent_students"`
	StagnantAccounts []StagnantAccount       `json:"stagnant_accounts"`
	TotalMonthsOwed  int                     `json:"total_months_owed"`
	LeadCounts       []StageCount            `json:"lead_counts"`
	PendingTasks     int64                   `json:"pending_tasks"`
	UpcomingCalls    int64                   `json:"upcoming_calls"`
	GeneratedAt      time.Time               `json:"generated_at"`
}

type Service interface {
	Get(ctx context.Context) (Overview, error)
}
