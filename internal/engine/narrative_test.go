package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/verahealth/coach-backend/internal/platform/logger"
)

type fakeNarrativeAI struct {
	resp       map[string]any
	err        error
	called     bool
	schemaName string
	system     string
	user       string
}

func (f *fakeNarrativeAI) GenerateJSON(ctx context.Context, system string, user string, schemaName string, schema map[string]any) (map[string]any, error) {
	f.called = true
	f.schemaName = schemaName
	f.system = system
	f.user = user
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *fakeNarrativeAI) GenerateText(ctx context.Context, system string, user string) (string, error) {
	return "", errors.New("not implemented")
}

func testEngine(t *testing.T, ai *fakeNarrativeAI) *Engine {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	if ai == nil {
		return New(log, nil, Config{})
	}
	return New(log, ai, Config{})
}

func goodAIResponse() map[string]any {
	return map[string]any{
		"demographics_age":     "Your age places you in a favorable band.",
		"family_history":       "No inherited risk was reported.",
		"lifestyle_factors":    "Your habits look protective overall.",
		"reproductive_history": "Nothing in your reproductive history adds risk.",
	}
}

func TestGenerateNarratives_AISuccessMapsSections(t *testing.T) {
	fake := &fakeNarrativeAI{resp: goodAIResponse()}
	e := testEngine(t, fake)

	a := AssessmentAnswers{Age: intPtr(42)}
	got := e.GenerateNarratives(context.Background(), a, AggregateRisk(a))

	if !fake.called {
		t.Fatalf("expected ai called")
	}
	if fake.schemaName != "section_narratives_v1" {
		t.Fatalf("unexpected schemaName: %q", fake.schemaName)
	}
	if !strings.Contains(fake.user, "ANSWERS_JSON:") || !strings.Contains(fake.user, "RISK_SCORES_JSON:") {
		t.Fatalf("expected answers+scores in user payload")
	}
	if got.Source != NarrativeSourceAI {
		t.Fatalf("expected ai source, got %q", got.Source)
	}
	if got.Sections[SectionDemographics] != "Your age places you in a favorable band." {
		t.Fatalf("unexpected demographics narrative: %q", got.Sections[SectionDemographics])
	}
}

func TestGenerateNarratives_AIFailureFallsBackCompletely(t *testing.T) {
	fake := &fakeNarrativeAI{err: errors.New("upstream 503")}
	e := testEngine(t, fake)

	a := AssessmentAnswers{Age: intPtr(52), Menopause: "Yes, after age 55", Exercise: ExerciseLittle}
	got := e.GenerateNarratives(context.Background(), a, AggregateRisk(a))

	if got.Source != NarrativeSourceFallback {
		t.Fatalf("expected fallback source, got %q", got.Source)
	}
	for _, name := range SectionNames() {
		if strings.TrimSpace(got.Sections[name]) == "" {
			t.Fatalf("fallback narrative empty for %q", name)
		}
	}
}

func TestGenerateNarratives_IncompleteAIResponseFallsBack(t *testing.T) {
	resp := goodAIResponse()
	delete(resp, "lifestyle_factors")
	fake := &fakeNarrativeAI{resp: resp}
	e := testEngine(t, fake)

	a := AssessmentAnswers{Age: intPtr(42)}
	got := e.GenerateNarratives(context.Background(), a, AggregateRisk(a))
	if got.Source != NarrativeSourceFallback {
		t.Fatalf("expected fallback for incomplete response, got %q", got.Source)
	}
}

func TestGenerateNarratives_EmptySectionTextFallsBack(t *testing.T) {
	resp := goodAIResponse()
	resp["family_history"] = "   "
	fake := &fakeNarrativeAI{resp: resp}
	e := testEngine(t, fake)

	a := AssessmentAnswers{Age: intPtr(42)}
	got := e.GenerateNarratives(context.Background(), a, AggregateRisk(a))
	if got.Source != NarrativeSourceFallback {
		t.Fatalf("expected fallback for blank section, got %q", got.Source)
	}
}

func TestGenerateNarratives_NilClientUsesFallback(t *testing.T) {
	e := testEngine(t, nil)
	a := AssessmentAnswers{Age: intPtr(42)}
	got := e.GenerateNarratives(context.Background(), a, AggregateRisk(a))
	if got.Source != NarrativeSourceFallback {
		t.Fatalf("expected fallback with nil ai client, got %q", got.Source)
	}
}

func TestFallbackNarratives_InterpolateUserValues(t *testing.T) {
	a := AssessmentAnswers{
		Age:       intPtr(56),
		BMI:       floatPtr(27.4),
		Alcohol:   "Yes, weekly",
		Exercise:  ExerciseLittle,
		Menopause: "Yes, before age 55",
	}
	got := fallbackNarratives(a, AggregateRisk(a))

	if !strings.Contains(got[SectionDemographics], "56") {
		t.Fatalf("expected age in demographics narrative: %q", got[SectionDemographics])
	}
	if !strings.Contains(got[SectionLifestyle], "27.4") {
		t.Fatalf("expected bmi in lifestyle narrative: %q", got[SectionLifestyle])
	}
	if !strings.Contains(got[SectionReproductive], "menopause") {
		t.Fatalf("expected menopause context in reproductive narrative: %q", got[SectionReproductive])
	}
}
