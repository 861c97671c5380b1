package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Assessment is one submitted questionnaire. Answers are stored as the raw
// normalized JSON payload; the scoring engine is the only reader of its shape.
type Assessment struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    *uuid.UUID     `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Answers   datatypes.JSON `gorm:"type:jsonb;not null" json:"answers"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Assessment) TableName() string {
	return "assessment"
}
