package app

import (
	"time"

	"github.com/verahealth/coach-backend/internal/platform/envutil"
)

type Config struct {
	Mode             string
	HTTPAddr         string
	MetricsAddr      string
	JWTSecretKey     string
	OpenAIModel      string
	NarrativeTimeout time.Duration
}

func LoadConfig() Config {
	return Config{
		Mode:             envutil.String("LOG_MODE", "development"),
		HTTPAddr:         envutil.String("HTTP_ADDR", ":8080"),
		MetricsAddr:      envutil.String("METRICS_ADDR", ":9090"),
		JWTSecretKey:     envutil.String("JWT_SECRET_KEY", "defaultsecret"),
		OpenAIModel:      envutil.String("OPENAI_MODEL", "gpt-4o-mini"),
		NarrativeTimeout: envutil.Seconds("NARRATIVE_TIMEOUT_SECONDS", 15*time.Second),
	}
}
