package engine

import (
	"context"
	"fmt"
	"strings"
)

type NarrativeSource string

const (
	NarrativeSourceAI       NarrativeSource = "ai"
	NarrativeSourceFallback NarrativeSource = "fallback"
)

// Narratives holds one human-readable paragraph per section, plus which
// strategy produced them.
type Narratives struct {
	Sections map[string]string `json:"sections"`
	Source   NarrativeSource   `json:"source"`
}

// GenerateNarratives produces one narrative per section. The AI path is tried
// first under a bounded timeout; on any error, timeout, or malformed response
// it degrades to the deterministic templates. It never returns an error:
// quality, not availability, is the only variable.
func (e *Engine) GenerateNarratives(ctx context.Context, a AssessmentAnswers, scores RiskScores) Narratives {
	if e.ai != nil {
		aiCtx, cancel := context.WithTimeout(ctx, e.narrativeTimeout)
		sections, err := e.aiNarratives(aiCtx, a, scores)
		cancel()
		if err == nil {
			return Narratives{Sections: sections, Source: NarrativeSourceAI}
		}
		e.log.Warn("AI narrative generation failed, using template fallback", "error", err.Error())
	}
	return Narratives{Sections: fallbackNarratives(a, scores), Source: NarrativeSourceFallback}
}

func (e *Engine) aiNarratives(ctx context.Context, a AssessmentAnswers, scores RiskScores) (map[string]string, error) {
	system, user := buildNarrativePrompt(a, scores)
	raw, err := e.ai.GenerateJSON(ctx, system, user, narrativeSchemaName, narrativeSchema())
	if err != nil {
		return nil, err
	}
	return coerceNarrativeResponse(raw)
}

// coerceNarrativeResponse maps the model payload onto the fixed section set.
// A missing or empty section is treated as a failed call, never papered over
// with partial output.
func coerceNarrativeResponse(raw map[string]any) (map[string]string, error) {
	out := make(map[string]string, len(sectionSchemaKeys))
	for key, section := range sectionSchemaKeys {
		val, ok := raw[key]
		if !ok {
			return nil, fmt.Errorf("narrative response missing %q", key)
		}
		text, ok := val.(string)
		text = strings.TrimSpace(text)
		if !ok || text == "" {
			return nil, fmt.Errorf("narrative response empty for %q", key)
		}
		out[section] = text
	}
	return out, nil
}

// fallbackNarratives synthesizes per-section text from the user's own values.
// No network, no failure mode.
func fallbackNarratives(a AssessmentAnswers, scores RiskScores) map[string]string {
	age := 0
	if a.Age != nil {
		age = *a.Age
	}

	demographics := fmt.Sprintf("At age %d your baseline risk is shaped primarily by factors outside your control.", age)
	if age >= 50 {
		demographics += " Being over 50 places you in an age band where screening matters most, so keeping a regular mammogram schedule is the single most effective step."
	} else {
		demographics += " Age is currently working in your favor; this is the time to build habits that keep your controllable risk low."
	}

	family := "You did not report a family history of breast cancer, which keeps your inherited risk near the population baseline."
	if containsFactor(scores.Factors, FactorFamilyHistory) {
		family = "Your reported family history meaningfully raises your inherited risk. Share your family's cancer history with your provider so screening can start earlier and run more often."
	}

	var lifestyle strings.Builder
	lifestyle.WriteString("Your day-to-day habits are the part of this assessment you can change. ")
	if a.Exercise == ExerciseLittle {
		lifestyle.WriteString("You reported little or no regular exercise; working toward 150 minutes of moderate activity per week measurably lowers risk. ")
	} else if a.Exercise != "" {
		lifestyle.WriteString(fmt.Sprintf("Your activity level (%q) is a protective habit worth keeping. ", a.Exercise))
	}
	if a.Alcohol != "" && a.Alcohol != AnswerNo {
		lifestyle.WriteString("Reducing alcohol intake is one of the clearest levers available to you. ")
	}
	if a.BMI != nil {
		lifestyle.WriteString(fmt.Sprintf("Your BMI of %.1f is part of this picture; ", *a.BMI))
		if *a.BMI > 25 {
			lifestyle.WriteString("gradual weight management would reduce your controllable risk.")
		} else {
			lifestyle.WriteString("maintaining it supports your long-term risk profile.")
		}
	} else {
		lifestyle.WriteString("Tracking your weight over time will help keep this picture complete.")
	}

	reproductive := "Your reproductive history does not currently add to your risk profile."
	if menopauseOnset(a.Menopause) {
		reproductive = "Having reached menopause, your cumulative hormonal exposure becomes a relevant factor. Discuss hormone-related risks and bone health with your provider at your next visit."
	}

	return map[string]string{
		SectionDemographics:  demographics,
		SectionFamilyHistory: family,
		SectionLifestyle:     strings.TrimSpace(lifestyle.String()),
		SectionReproductive:  reproductive,
	}
}
