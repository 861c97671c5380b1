package app

import (
	httpH "github.com/verahealth/coach-backend/internal/http/handlers"
	httpMW "github.com/verahealth/coach-backend/internal/http/middleware"
	"github.com/verahealth/coach-backend/internal/platform/logger"
)

type Handlers struct {
	Report *httpH.ReportHandler
	Health *httpH.HealthHandler
}

func wireHandlers(serviceset Services) Handlers {
	return Handlers{
		Report: httpH.NewReportHandler(serviceset.Report),
		Health: httpH.NewHealthHandler(),
	}
}

func wireMiddleware(log *logger.Logger, cfg Config) *httpMW.AuthMiddleware {
	return httpMW.NewAuthMiddleware(log, cfg.JWTSecretKey)
}
