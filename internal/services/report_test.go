package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/verahealth/coach-backend/internal/engine"
	"github.com/verahealth/coach-backend/internal/platform/apierr"
)

func sampleEngineReport(t *testing.T) engine.Report {
	t.Helper()
	age := 42
	a := engine.AssessmentAnswers{Age: &age}
	scores := engine.AggregateRisk(a)
	profile := engine.ClassifyProfile(a)
	sections := engine.AnalyzeSections(a, scores)
	narratives := engine.Narratives{
		Sections: map[string]string{},
		Source:   engine.NarrativeSourceFallback,
	}
	for _, name := range engine.SectionNames() {
		narratives.Sections[name] = "narrative for " + name
	}
	report, err := engine.AssembleReport(scores, profile, sections, narratives, engine.BuildPlan(a, scores, profile))
	if err != nil {
		t.Fatalf("AssembleReport: %v", err)
	}
	return report
}

func TestBuildReportRecord_RowsLinked(t *testing.T) {
	generated := sampleEngineReport(t)
	age := 42
	userID := uuid.New()

	record, err := buildReportRecord(generated, engine.AssessmentAnswers{Age: &age}, &userID)
	if err != nil {
		t.Fatalf("buildReportRecord: %v", err)
	}
	if record.report.ID != generated.ID {
		t.Fatalf("report row id %s != engine id %s", record.report.ID, generated.ID)
	}
	if record.report.AssessmentID != record.assessment.ID {
		t.Fatalf("report row not linked to assessment row")
	}
	if record.callLog.ReportID == nil || *record.callLog.ReportID != generated.ID {
		t.Fatalf("call log not linked to report")
	}
	if record.report.UserID == nil || *record.report.UserID != userID {
		t.Fatalf("user id not carried onto report row")
	}

	var roundTrip engine.ReportData
	if err := json.Unmarshal(record.report.ReportData, &roundTrip); err != nil {
		t.Fatalf("report_data column not valid JSON: %v", err)
	}
	if roundTrip.Summary != generated.ReportData.Summary {
		t.Fatalf("summary lost in persistence encoding")
	}
}

func TestBuildCallLog_FallbackMarkedUnsuccessful(t *testing.T) {
	generated := sampleEngineReport(t)

	entry := buildCallLog(generated)
	if entry.Success {
		t.Fatalf("fallback narrative logged as successful AI call")
	}
	if entry.Source != string(engine.NarrativeSourceFallback) {
		t.Fatalf("unexpected source %q", entry.Source)
	}
	if entry.Error == "" {
		t.Fatalf("expected error note on fallback entry")
	}
	if entry.EstimatedTokens <= 0 {
		t.Fatalf("expected non-zero token estimate, got %d", entry.EstimatedTokens)
	}
}

func TestBuildCallLog_AISourceSuccessful(t *testing.T) {
	generated := sampleEngineReport(t)
	generated.NarrativeSource = engine.NarrativeSourceAI

	entry := buildCallLog(generated)
	if !entry.Success {
		t.Fatalf("ai narrative logged as failed call")
	}
	if entry.Error != "" {
		t.Fatalf("unexpected error note on ai entry: %q", entry.Error)
	}
}

func TestMapEngineError(t *testing.T) {
	validation := &engine.ValidationError{Field: "age"}
	got := mapEngineError(validation)
	if apierr.StatusOf(got) != http.StatusBadRequest || apierr.CodeOf(got) != "missing_required_field" {
		t.Fatalf("validation error mapped to %d/%s", apierr.StatusOf(got), apierr.CodeOf(got))
	}

	invariant := &engine.InvariantViolation{Msg: "empty section breakdown"}
	got = mapEngineError(invariant)
	if apierr.StatusOf(got) != http.StatusInternalServerError || apierr.CodeOf(got) != "report_invariant_violation" {
		t.Fatalf("invariant violation mapped to %d/%s", apierr.StatusOf(got), apierr.CodeOf(got))
	}

	got = mapEngineError(errors.New("boom"))
	if apierr.StatusOf(got) != http.StatusInternalServerError || apierr.CodeOf(got) != "report_generation_failed" {
		t.Fatalf("generic error mapped to %d/%s", apierr.StatusOf(got), apierr.CodeOf(got))
	}
}
