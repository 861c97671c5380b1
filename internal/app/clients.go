package app

import (
	"os"
	"strings"

	"github.com/verahealth/coach-backend/internal/clients/redis"
	"github.com/verahealth/coach-backend/internal/platform/logger"
	"github.com/verahealth/coach-backend/internal/platform/openai"
)

type Clients struct {
	AI          openai.Client
	ReportCache redis.ReportCache
}

// wireClients builds the outbound clients. Both are optional: without an API
// key the engine serves template narratives, and without Redis every read goes
// to Postgres.
func wireClients(log *logger.Logger) Clients {
	var clients Clients

	if strings.TrimSpace(os.Getenv("OPENAI_API_KEY")) != "" {
		ai, err := openai.NewClient(log)
		if err != nil {
			log.Warn("OpenAI client unavailable, narratives will use templates", "error", err.Error())
		} else {
			clients.AI = ai
		}
	} else {
		log.Info("OPENAI_API_KEY not set, narratives will use templates")
	}

	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		cache, err := redis.NewReportCache(log)
		if err != nil {
			log.Warn("Report cache unavailable, reads will hit Postgres", "error", err.Error())
		} else {
			clients.ReportCache = cache
		}
	} else {
		log.Info("REDIS_ADDR not set, report cache disabled")
	}

	return clients
}
