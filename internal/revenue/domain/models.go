package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// MonthlyRevenue stores the manually entered revenue figures for one month.
// Consulting and community revenue are derived, never stored.
type MonthlyRevenue struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	MonthKey       string       `gorm:"not null;uniqueIndex" json:"month_key"`
	AgencyRevenue  int64        `gorm:"not null;default:0" json:"agency_revenue"`
	GumroadRevenue int64        `gorm:"not null;default:0" json:"gumroad_revenue"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (MonthlyRevenue) TableName() string { return "monthly_revenues" }
