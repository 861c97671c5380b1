package engine

import (
	"encoding/json"
	"fmt"
)

const narrativeSchemaName = "section_narratives_v1"

// sectionSchemaKeys maps the JSON schema property names onto the display
// section names.
var sectionSchemaKeys = map[string]string{
	"demographics_age":     SectionDemographics,
	"family_history":       SectionFamilyHistory,
	"lifestyle_factors":    SectionLifestyle,
	"reproductive_history": SectionReproductive,
}

func narrativeSchema() map[string]any {
	props := map[string]any{}
	required := make([]string, 0, len(sectionSchemaKeys))
	for key := range sectionSchemaKeys {
		props[key] = map[string]any{"type": "string"}
		required = append(required, key)
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

func buildNarrativePrompt(a AssessmentAnswers, scores RiskScores) (system string, user string) {
	system = "You are a supportive health coach writing a breast cancer risk report. " +
		"Write one warm, plain-language paragraph per section. Ground every claim " +
		"in the provided answers and scores. Do not give a diagnosis and do not " +
		"invent values the user did not report."

	user = fmt.Sprintf(
		"ANSWERS_JSON:\n%s\n\nRISK_SCORES_JSON:\n%s\n\nWrite one paragraph for each of: demographics_age, family_history, lifestyle_factors, reproductive_history.",
		mustJSON(a),
		mustJSON(scores),
	)
	return system, user
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
