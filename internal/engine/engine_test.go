package engine

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGenerateReport_FullPipeline(t *testing.T) {
	fake := &fakeNarrativeAI{err: errors.New("model down")}
	e := testEngine(t, fake)

	a := answersWithEverything(60)
	a.Menopause = "Yes, after age 55"
	report, err := e.GenerateReport(context.Background(), a)
	if err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}
	if report.RiskCategory != RiskHigh {
		t.Fatalf("expected high category, got %q", report.RiskCategory)
	}
	if report.UserProfile != ProfilePostmenopausal {
		t.Fatalf("expected postmenopausal profile, got %q", report.UserProfile)
	}
	if report.NarrativeSource != NarrativeSourceFallback {
		t.Fatalf("expected fallback source, got %q", report.NarrativeSource)
	}
	if len(report.ReportData.SectionAnalysis.SectionBreakdown) != len(SectionNames()) {
		t.Fatalf("expected %d sections, got %d", len(SectionNames()), len(report.ReportData.SectionAnalysis.SectionBreakdown))
	}
	if _, ok := report.ReportData.PersonalizedPlan.FollowUpTimeline[TimelineTwoWeeks]; !ok {
		t.Fatalf("expected high-risk timeline entry")
	}
}

func TestGenerateReport_MissingAgeRejected(t *testing.T) {
	e := testEngine(t, &fakeNarrativeAI{resp: goodAIResponse()})

	_, err := e.GenerateReport(context.Background(), AssessmentAnswers{FamilyHistory: "Yes"})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if ve.Field != "age" {
		t.Fatalf("expected field \"age\", got %q", ve.Field)
	}
}

func TestGenerateReport_DeterministicModuloIdentity(t *testing.T) {
	e := testEngine(t, &fakeNarrativeAI{err: errors.New("always down")})
	a := answersWithEverything(60)

	first, err := e.GenerateReport(context.Background(), a)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := e.GenerateReport(context.Background(), a)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	first.ID, second.ID = uuid.Nil, uuid.Nil
	first.CreatedAt, second.CreatedAt = time.Time{}, time.Time{}

	firstJSON, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal first: %v", err)
	}
	secondJSON, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal second: %v", err)
	}
	if string(firstJSON) != string(secondJSON) {
		t.Fatalf("reports differ across identical inputs:\n%s\n%s", firstJSON, secondJSON)
	}
}

func TestGenerateReport_AINarrativesLandInSummaries(t *testing.T) {
	fake := &fakeNarrativeAI{resp: goodAIResponse()}
	e := testEngine(t, fake)

	report, err := e.GenerateReport(context.Background(), AssessmentAnswers{Age: intPtr(42)})
	if err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}
	if report.NarrativeSource != NarrativeSourceAI {
		t.Fatalf("expected ai source, got %q", report.NarrativeSource)
	}
	for _, name := range SectionNames() {
		if report.ReportData.SectionAnalysis.SectionSummaries[name] == "" {
			t.Fatalf("missing narrative for %q", name)
		}
	}
}

func TestGenerateReport_BaselineAnswers(t *testing.T) {
	e := testEngine(t, nil)

	report, err := e.GenerateReport(context.Background(), AssessmentAnswers{Age: intPtr(30), Alcohol: AnswerNo})
	if err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}
	if report.RiskScore != 50 || report.RiskCategory != RiskModerate {
		t.Fatalf("expected baseline 50/moderate, got %d/%q", report.RiskScore, report.RiskCategory)
	}
	if len(report.RiskFactors) != 0 {
		t.Fatalf("expected no factors at baseline, got %v", report.RiskFactors)
	}
	if len(report.Recommendations) != 5 {
		t.Fatalf("expected 5 base recommendations, got %d", len(report.Recommendations))
	}
}
