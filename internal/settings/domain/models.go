package domain

import "time"

// Settings is the single user_settings row backing the dashboard: the global
// monthly revenue goal and the current community monthly-subscription count.
type Settings struct {
	ID                    int64     `gorm:"primaryKey" json:"id"`
	MonthlyGoal           int64     `gorm:"not null;default:0" json:"monthly_goal"`
	CommunityMonthlyCount int       `gorm:"not null;default:0" json:"community_monthly_count"`
	UpdatedAt             time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Settings) TableName() string { return "user_settings" }

// SingletonID is the fixed primary key of the only settings row.
const SingletonID int64 = 1
