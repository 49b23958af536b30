package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Note struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Title     string       `gorm:"not null" json:"title"`
	Body      string       `gorm:"" json:"body"`
	Pinned    bool         `gorm:"not null;default:false" json:"pinned"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Note) TableName() string { return "notes" }
