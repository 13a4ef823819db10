package model

import (
	"time"

	"gorm.io/datatypes"
)

// AgentCheckpoint persists the full workflow state of a session. Node and
// InterruptType are empty for idle sessions.
type AgentCheckpoint struct {
	SessionId     string         `gorm:"type:text;primaryKey"`
	Node          string         `gorm:"type:text"`
	InterruptType string         `gorm:"type:text"`
	State         datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
}

func (AgentCheckpoint) TableName() string {
	return "agent_checkpoints"
}
