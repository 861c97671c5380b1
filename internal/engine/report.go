package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type SectionAnalysis struct {
	SectionBreakdown []SectionBreakdown `json:"section_breakdown"`
	SectionSummaries map[string]string  `json:"section_summaries"`
}

type PersonalizedPlan struct {
	DailyPlan        DailyPlan         `json:"daily_plan"`
	CoachingFocus    []string          `json:"coaching_focus"`
	FollowUpTimeline map[string]string `json:"follow_up_timeline"`
}

type ReportData struct {
	Summary          string           `json:"summary"`
	SectionAnalysis  SectionAnalysis  `json:"section_analysis"`
	PersonalizedPlan PersonalizedPlan `json:"personalized_plan"`
}

// Report is the terminal output of one assessment submission. It is built
// once and never mutated; persistence and display are the callers' concern.
type Report struct {
	ID              uuid.UUID       `json:"id"`
	RiskScore       int             `json:"risk_score"`
	RiskCategory    RiskCategory    `json:"risk_category"`
	UserProfile     UserProfile     `json:"user_profile"`
	RiskFactors     []string        `json:"risk_factors"`
	Recommendations []string        `json:"recommendations"`
	DailyPlan       DailyPlan       `json:"daily_plan"`
	ReportData      ReportData      `json:"report_data"`
	NarrativeSource NarrativeSource `json:"narrative_source"`
	CreatedAt       time.Time       `json:"created_at"`
}

// AssembleReport composes the upstream outputs into one Report, stamps id and
// timestamp, and re-checks its own invariants. A returned error here is an
// *InvariantViolation: a bug upstream, not a condition callers handle.
func AssembleReport(scores RiskScores, profile UserProfile, sections []SectionBreakdown, narratives Narratives, plan PlanResult) (Report, error) {
	if scores.TotalScore < 0 || scores.TotalScore > 100 {
		return Report{}, &InvariantViolation{Msg: fmt.Sprintf("risk score %d out of [0,100]", scores.TotalScore)}
	}
	if len(sections) == 0 {
		return Report{}, &InvariantViolation{Msg: "empty section breakdown"}
	}
	for _, s := range sections {
		if narratives.Sections[s.Name] == "" {
			return Report{}, &InvariantViolation{Msg: fmt.Sprintf("missing narrative for section %q", s.Name)}
		}
	}

	return Report{
		ID:              uuid.New(),
		RiskScore:       scores.TotalScore,
		RiskCategory:    scores.Category,
		UserProfile:     profile,
		RiskFactors:     scores.Factors,
		Recommendations: plan.Recommendations,
		DailyPlan:       plan.DailyPlan,
		ReportData: ReportData{
			Summary:         summaryText(scores, profile),
			SectionAnalysis: SectionAnalysis{SectionBreakdown: sections, SectionSummaries: narratives.Sections},
			PersonalizedPlan: PersonalizedPlan{
				DailyPlan:        plan.DailyPlan,
				CoachingFocus:    plan.CoachingFocus,
				FollowUpTimeline: plan.FollowUpTimeline,
			},
		},
		NarrativeSource: narratives.Source,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

func summaryText(scores RiskScores, profile UserProfile) string {
	return fmt.Sprintf(
		"Overall risk score %d/100 (%s risk). Life-stage profile: %s. %d contributing risk factor(s) identified.",
		scores.TotalScore, scores.Category, profile, len(scores.Factors),
	)
}
