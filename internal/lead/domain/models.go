package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Stage string

const (
	StageNew       Stage = "new"
	StageContacted Stage = "contacted"
	StageQualified Stage = "qualified"
	StageProposal  Stage = "proposal"
	StageWon       Stage = "won"
	StageLost      Stage = "lost"
)

func (s Stage) Valid() bool {
	switch s {
	case StageNew, StageContacted, StageQualified, StageProposal, StageWon, StageLost:
		return true
	}
	return false
}

// Stages lists every pipeline stage in board order.
var Stages = []Stage{StageNew, StageContacted, StageQualified, StageProposal, StageWon, StageLost}

// Lead is one card on the pipeline board. Position orders cards within a
// stage, contiguous from zero.
type Lead struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name      string            `gorm:"not null" json:"name"`
	Email     string            `gorm:"" json:"email,omitempty"`
	Company   string            `gorm:"" json:"company,omitempty"`
	Stage     Stage             `gorm:"not null;index" json:"stage"`
	Position  int               `gorm:"not null;default:0" json:"position"`
	Value     int64             `gorm:"not null;default:0" json:"value"`
	Source    string            `gorm:"" json:"source,omitempty"`
	Notes     string            `gorm:"" json:"notes,omitempty"`
	Metadata  datatypes.JSONMap `gorm:"" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Lead) TableName() string { return "leads" }
