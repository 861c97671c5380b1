package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/verahealth/coach-backend/internal/db"
	httpshell "github.com/verahealth/coach-backend/internal/http"
	"github.com/verahealth/coach-backend/internal/observability"
	"github.com/verahealth/coach-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Clients  Clients
	Repos    Repos
	Services Services
	Metrics  *observability.Metrics
	cancel   context.CancelFunc
}

func New() (*App, error) {
	cfg := LoadConfig()

	log, err := logger.New(cfg.Mode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	metrics := observability.Init(log)
	clientset := wireClients(log)
	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, clientset)
	handlerset := wireHandlers(serviceset)
	authMW := wireMiddleware(log, cfg)

	server := httpshell.NewServer(httpshell.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		AuthMiddleware: authMW,
		ReportHandler:  handlerset.Report,
		HealthHandler:  handlerset.Health,
	})

	return &App{
		Log:      log,
		DB:       theDB,
		Router:   server.Engine,
		Cfg:      cfg,
		Clients:  clientset,
		Repos:    reposet,
		Services: serviceset,
		Metrics:  metrics,
	}, nil
}

// Start launches background listeners. Safe to call once.
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	if a.Metrics != nil {
		a.Metrics.StartServer(ctx, a.Log, a.Cfg.MetricsAddr)
	}
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(a.Cfg.HTTPAddr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.Clients.ReportCache != nil {
		_ = a.Clients.ReportCache.Close()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
