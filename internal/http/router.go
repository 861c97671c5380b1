package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/verahealth/coach-backend/internal/http/handlers"
	httpMW "github.com/verahealth/coach-backend/internal/http/middleware"
	"github.com/verahealth/coach-backend/internal/observability"
	"github.com/verahealth/coach-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	AuthMiddleware *httpMW.AuthMiddleware

	ReportHandler *httpH.ReportHandler
	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.AttachRequestContext())
	r.Use(httpMW.CORS())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")

	// Report generation and lookup work for anonymous callers; a valid token
	// only attaches ownership.
	if cfg.ReportHandler != nil {
		open := api.Group("/")
		if cfg.AuthMiddleware != nil {
			open.Use(cfg.AuthMiddleware.OptionalAuth())
		}
		open.POST("/reports", cfg.ReportHandler.Generate)
		open.GET("/reports/:id", cfg.ReportHandler.Get)
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}
		if cfg.ReportHandler != nil {
			protected.GET("/reports", cfg.ReportHandler.ListMine)
		}
	}

	return r
}
