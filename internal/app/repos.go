package app

import (
	"gorm.io/gorm"

	"github.com/verahealth/coach-backend/internal/platform/logger"
	"github.com/verahealth/coach-backend/internal/repos"
)

type Repos struct {
	Assessment       repos.AssessmentRepo
	Report           repos.ReportRepo
	NarrativeCallLog repos.NarrativeCallLogRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Assessment:       repos.NewAssessmentRepo(db, log),
		Report:           repos.NewReportRepo(db, log),
		NarrativeCallLog: repos.NewNarrativeCallLogRepo(db, log),
	}
}
