package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Call is a scheduled or completed mentoring call, optionally tied to a
// student.
type Call struct {
	ID          snowflake.ID  `gorm:"primaryKey" json:"id"`
	StudentID   *snowflake.ID `gorm:"index" json:"student_id,omitempty"`
	Title       string        `gorm:"not null" json:"title"`
	ScheduledAt time.Time     `gorm:"not null" json:"scheduled_at"`
	DurationMin int           `gorm:"not null;default:0" json:"duration_min"`
	Completed   bool          `gorm:"not null;default:false" json:"completed"`
	Notes       string        `gorm:"" json:"notes,omitempty"`
	CreatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Call) TableName() string { return "calls" }
