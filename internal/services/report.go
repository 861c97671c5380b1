package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/verahealth/coach-backend/internal/clients/redis"
	"github.com/verahealth/coach-backend/internal/engine"
	"github.com/verahealth/coach-backend/internal/observability"
	"github.com/verahealth/coach-backend/internal/platform/apierr"
	"github.com/verahealth/coach-backend/internal/platform/ctxutil"
	"github.com/verahealth/coach-backend/internal/platform/logger"
	"github.com/verahealth/coach-backend/internal/platform/openai"
	"github.com/verahealth/coach-backend/internal/repos"
	"github.com/verahealth/coach-backend/internal/types"
)

// ReportService is the transactional shell around the scoring engine: it
// persists the submitted answers, runs report generation, stores the result,
// and keeps the read path fast through the cache.
type ReportService interface {
	Generate(ctx context.Context, answers engine.AssessmentAnswers) (*types.Report, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Report, error)
	ListMine(ctx context.Context, limit int) ([]*types.Report, error)
}

type reportService struct {
	db             *gorm.DB
	log            *logger.Logger
	eng            *engine.Engine
	model          string
	assessmentRepo repos.AssessmentRepo
	reportRepo     repos.ReportRepo
	callLogRepo    repos.NarrativeCallLogRepo
	cache          redis.ReportCache
}

func NewReportService(
	db *gorm.DB,
	log *logger.Logger,
	eng *engine.Engine,
	model string,
	assessmentRepo repos.AssessmentRepo,
	reportRepo repos.ReportRepo,
	callLogRepo repos.NarrativeCallLogRepo,
	cache redis.ReportCache,
) ReportService {
	return &reportService{
		db:             db,
		log:            log.With("service", "ReportService"),
		eng:            eng,
		model:          model,
		assessmentRepo: assessmentRepo,
		reportRepo:     reportRepo,
		callLogRepo:    callLogRepo,
		cache:          cache,
	}
}

func (s *reportService) Generate(ctx context.Context, answers engine.AssessmentAnswers) (*types.Report, error) {
	start := time.Now()

	generated, err := s.eng.GenerateReport(ctx, answers)
	if err != nil {
		return nil, mapEngineError(err)
	}

	var userID *uuid.UUID
	if rd := ctxutil.GetRequestData(ctx); rd != nil && rd.UserID != uuid.Nil {
		id := rd.UserID
		userID = &id
	}

	record, err := buildReportRecord(generated, answers, userID)
	if err != nil {
		return nil, err
	}
	record.callLog.Model = s.model
	record.callLog.DurationMs = time.Since(start).Milliseconds()

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.assessmentRepo.Create(ctx, tx, []*types.Assessment{record.assessment}); err != nil {
			return fmt.Errorf("persisting assessment: %w", err)
		}
		if _, err := s.reportRepo.Create(ctx, tx, []*types.Report{record.report}); err != nil {
			return fmt.Errorf("persisting report: %w", err)
		}
		if _, err := s.callLogRepo.Create(ctx, tx, []*types.NarrativeCallLog{record.callLog}); err != nil {
			return fmt.Errorf("persisting narrative call log: %w", err)
		}
		return nil
	}); err != nil {
		s.log.Error("Report persistence failed", "error", err.Error())
		return nil, apierr.New(http.StatusInternalServerError, "report_persistence_failed", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, record.report); err != nil {
			s.log.Warn("Report cache write failed", "report_id", record.report.ID.String(), "error", err.Error())
		}
	}

	if m := observability.Current(); m != nil {
		m.ObserveReport(string(generated.RiskCategory), string(generated.NarrativeSource), time.Since(start))
	}

	s.log.Info("Report generated",
		"report_id", record.report.ID.String(),
		"risk_category", record.report.RiskCategory,
		"narrative_source", record.report.NarrativeSource,
		"duration", time.Since(start).String(),
	)
	return record.report, nil
}

func (s *reportService) GetByID(ctx context.Context, id uuid.UUID) (*types.Report, error) {
	if id == uuid.Nil {
		return nil, apierr.New(http.StatusBadRequest, "invalid_report_id", fmt.Errorf("report id required"))
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			s.log.Warn("Report cache read failed", "report_id", id.String(), "error", err.Error())
		}
	}

	found, err := s.reportRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "report_lookup_failed", err)
	}
	if len(found) == 0 {
		return nil, apierr.New(http.StatusNotFound, "report_not_found", fmt.Errorf("report %s not found", id))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, found[0]); err != nil {
			s.log.Warn("Report cache backfill failed", "report_id", id.String(), "error", err.Error())
		}
	}
	return found[0], nil
}

func (s *reportService) ListMine(ctx context.Context, limit int) ([]*types.Report, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthenticated", fmt.Errorf("user id not set in request data"))
	}
	found, err := s.reportRepo.ListByUser(ctx, nil, rd.UserID, limit)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "report_list_failed", err)
	}
	return found, nil
}

type reportRecord struct {
	assessment *types.Assessment
	report     *types.Report
	callLog    *types.NarrativeCallLog
}

// buildReportRecord converts the engine output into its persisted rows. Pure
// except for marshaling, which only fails on unencodable values.
func buildReportRecord(generated engine.Report, answers engine.AssessmentAnswers, userID *uuid.UUID) (*reportRecord, error) {
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("encoding answers: %w", err)
	}
	factorsJSON, err := json.Marshal(generated.RiskFactors)
	if err != nil {
		return nil, fmt.Errorf("encoding risk factors: %w", err)
	}
	recsJSON, err := json.Marshal(generated.Recommendations)
	if err != nil {
		return nil, fmt.Errorf("encoding recommendations: %w", err)
	}
	planJSON, err := json.Marshal(generated.DailyPlan)
	if err != nil {
		return nil, fmt.Errorf("encoding daily plan: %w", err)
	}
	dataJSON, err := json.Marshal(generated.ReportData)
	if err != nil {
		return nil, fmt.Errorf("encoding report data: %w", err)
	}

	assessment := &types.Assessment{
		ID:      uuid.New(),
		UserID:  userID,
		Answers: datatypes.JSON(answersJSON),
	}
	report := &types.Report{
		ID:              generated.ID,
		AssessmentID:    assessment.ID,
		UserID:          userID,
		RiskScore:       generated.RiskScore,
		RiskCategory:    string(generated.RiskCategory),
		UserProfile:     string(generated.UserProfile),
		RiskFactors:     datatypes.JSON(factorsJSON),
		Recommendations: datatypes.JSON(recsJSON),
		DailyPlan:       datatypes.JSON(planJSON),
		ReportData:      datatypes.JSON(dataJSON),
		NarrativeSource: string(generated.NarrativeSource),
		CreatedAt:       generated.CreatedAt,
	}
	return &reportRecord{
		assessment: assessment,
		report:     report,
		callLog:    buildCallLog(generated),
	}, nil
}

func buildCallLog(generated engine.Report) *types.NarrativeCallLog {
	reportID := generated.ID
	var estimated int
	for _, text := range generated.ReportData.SectionAnalysis.SectionSummaries {
		estimated += openai.EstimateTokens(text)
	}
	entry := &types.NarrativeCallLog{
		ID:              uuid.New(),
		ReportID:        &reportID,
		Source:          string(generated.NarrativeSource),
		Success:         generated.NarrativeSource == engine.NarrativeSourceAI,
		EstimatedTokens: estimated,
	}
	if !entry.Success {
		entry.Error = "ai narrative unavailable, template fallback used"
	}
	return entry
}

// mapEngineError translates engine failures into the API error vocabulary.
func mapEngineError(err error) error {
	var ve *engine.ValidationError
	if errors.As(err, &ve) {
		return apierr.New(http.StatusBadRequest, "missing_required_field", ve)
	}
	var iv *engine.InvariantViolation
	if errors.As(err, &iv) {
		return apierr.New(http.StatusInternalServerError, "report_invariant_violation", iv)
	}
	return apierr.New(http.StatusInternalServerError, "report_generation_failed", err)
}
