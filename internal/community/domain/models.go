package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// AnnualMember is a paid annual community membership. CreatedAt doubles as
// the join/payment date used for monthly revenue attribution.
type AnnualMember struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	Name       string       `gorm:"not null" json:"name"`
	AmountPaid int64        `gorm:"not null" json:"amount_paid"`
	Source     string       `gorm:"" json:"source,omitempty"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (AnnualMember) TableName() string { return "community_annual_members" }
