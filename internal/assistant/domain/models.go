package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// ChatMessage is one persisted turn of the assistant conversation.
type ChatMessage struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Role      Role         `gorm:"not null" json:"role"`
	Content   string       `gorm:"not null" json:"content"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (ChatMessage) TableName() string { return "chat_messages" }
