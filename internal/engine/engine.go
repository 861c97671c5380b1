package engine

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/verahealth/coach-backend/internal/platform/logger"
	"github.com/verahealth/coach-backend/internal/platform/openai"
)

const defaultNarrativeTimeout = 15 * time.Second

// Engine turns one set of questionnaire answers into one report. It holds no
// per-request state: concurrent GenerateReport calls share nothing mutable.
type Engine struct {
	ai               openai.Client
	log              *logger.Logger
	narrativeTimeout time.Duration
}

type Config struct {
	// NarrativeTimeout bounds the single AI narrative attempt. Zero means the
	// default. There are no retries: the template fallback is the retry
	// strategy.
	NarrativeTimeout time.Duration
}

func New(log *logger.Logger, ai openai.Client, cfg Config) *Engine {
	timeout := cfg.NarrativeTimeout
	if timeout <= 0 {
		timeout = defaultNarrativeTimeout
	}
	return &Engine{
		ai:               ai,
		log:              log.With("service", "RiskEngine"),
		narrativeTimeout: timeout,
	}
}

// GenerateReport runs the full pipeline: normalize, aggregate, classify, then
// sections, narratives, and plan off the aggregated scores, then assemble.
// The only caller-visible failure from valid input is a *ValidationError.
func (e *Engine) GenerateReport(ctx context.Context, answers AssessmentAnswers) (Report, error) {
	normalized, err := Normalize(answers)
	if err != nil {
		return Report{}, err
	}

	scores := AggregateRisk(normalized)
	profile := ClassifyProfile(normalized)

	// The three downstream stages read only the aggregator output and each
	// other's nothing; only the narrative stage performs I/O.
	var (
		sections   []SectionBreakdown
		narratives Narratives
		plan       PlanResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sections = AnalyzeSections(normalized, scores)
		return nil
	})
	g.Go(func() error {
		narratives = e.GenerateNarratives(gctx, normalized, scores)
		return nil
	})
	g.Go(func() error {
		plan = BuildPlan(normalized, scores, profile)
		return nil
	})
	_ = g.Wait()

	return AssembleReport(scores, profile, sections, narratives, plan)
}
