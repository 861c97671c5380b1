package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NarrativeCallLog records one AI narrative attempt per report, successful or
// not. Prompts are not stored; they contain answer data.
type NarrativeCallLog struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ReportID        *uuid.UUID     `gorm:"type:uuid;index" json:"report_id,omitempty"`
	Model           string         `gorm:"column:model;not null" json:"model"`
	Source          string         `gorm:"column:source;not null" json:"source"`
	Success         bool           `gorm:"column:success;not null" json:"success"`
	Error           string         `gorm:"column:error" json:"error"`
	DurationMs      int64          `gorm:"column:duration_ms;not null" json:"duration_ms"`
	EstimatedTokens int            `gorm:"column:estimated_tokens" json:"estimated_tokens"`
	Usage           datatypes.JSON `gorm:"type:jsonb" json:"usage"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (NarrativeCallLog) TableName() string {
	return "narrative_call_log"
}
