package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Report is the persisted form of one generated risk report. The top-level
// columns mirror the fields clients filter on; everything else lives in the
// report_data JSONB document.
type Report struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AssessmentID    uuid.UUID      `gorm:"type:uuid;index;not null" json:"assessment_id"`
	UserID          *uuid.UUID     `gorm:"type:uuid;index" json:"user_id,omitempty"`
	RiskScore       int            `gorm:"column:risk_score;not null" json:"risk_score"`
	RiskCategory    string         `gorm:"column:risk_category;not null;index" json:"risk_category"`
	UserProfile     string         `gorm:"column:user_profile;not null" json:"user_profile"`
	RiskFactors     datatypes.JSON `gorm:"type:jsonb" json:"risk_factors"`
	Recommendations datatypes.JSON `gorm:"type:jsonb" json:"recommendations"`
	DailyPlan       datatypes.JSON `gorm:"type:jsonb" json:"daily_plan"`
	ReportData      datatypes.JSON `gorm:"type:jsonb;not null" json:"report_data"`
	NarrativeSource string         `gorm:"column:narrative_source;not null" json:"narrative_source"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Report) TableName() string {
	return "report"
}
