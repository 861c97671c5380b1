package app

import (
	"gorm.io/gorm"

	"github.com/verahealth/coach-backend/internal/engine"
	"github.com/verahealth/coach-backend/internal/platform/logger"
	"github.com/verahealth/coach-backend/internal/services"
)

type Services struct {
	Engine *engine.Engine
	Report services.ReportService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients) Services {
	log.Info("Wiring services...")

	eng := engine.New(log, clients.AI, engine.Config{
		NarrativeTimeout: cfg.NarrativeTimeout,
	})

	report := services.NewReportService(
		db,
		log,
		eng,
		cfg.OpenAIModel,
		reposet.Assessment,
		reposet.Report,
		reposet.NarrativeCallLog,
		clients.ReportCache,
	)

	return Services{
		Engine: eng,
		Report: report,
	}
}
