package engine

import (
	"math"
	"strings"
)

type RiskCategory string

const (
	RiskLow      RiskCategory = "low"
	RiskModerate RiskCategory = "moderate"
	RiskHigh     RiskCategory = "high"
)

// Factor explanations, in the order the aggregator evaluates them.
const (
	FactorAgeOver50     = "Age over 50 increases breast cancer risk"
	FactorFamilyHistory = "Family history of breast cancer significantly increases risk"
	FactorAlcohol       = "Regular alcohol consumption increases breast cancer risk"
	FactorInactivity    = "Little or no regular exercise increases breast cancer risk"
	FactorObesity       = "Obesity increases breast cancer risk, particularly after menopause"
)

type RiskScores struct {
	TotalScore          int          `json:"total_score"`
	Category            RiskCategory `json:"category"`
	UncontrollableScore int          `json:"uncontrollable_score"`
	ControllableScore   int          `json:"controllable_score"`
	Factors             []string     `json:"factors"`
}

// AggregateRisk applies the multiplicative scoring model over the two risk
// axes. Pure: absent or malformed optional answers contribute no factor, and
// the function cannot fail.
//
// Both multipliers start at a neutral 1.0, so summing them double-counts the
// baseline once; the -1 normalizes a no-factor answer set to a low but
// non-zero score.
func AggregateRisk(a AssessmentAnswers) RiskScores {
	uncontrollable := 1.0
	controllable := 1.0
	factors := make([]string, 0, 5)

	if a.Age != nil && *a.Age >= 50 {
		uncontrollable *= 1.5
		factors = append(factors, FactorAgeOver50)
	}
	if strings.Contains(a.FamilyHistory, "Yes") {
		uncontrollable *= 1.8
		factors = append(factors, FactorFamilyHistory)
	}

	if a.Alcohol != "" && a.Alcohol != AnswerNo {
		controllable *= 1.2
		factors = append(factors, FactorAlcohol)
	}
	if a.Exercise == ExerciseLittle {
		controllable *= 1.3
		factors = append(factors, FactorInactivity)
	}
	if a.Obesity == "Yes" {
		controllable *= 1.4
		factors = append(factors, FactorObesity)
	}

	total := clampScore(int(math.Round(math.Min(100, (uncontrollable+controllable-1)*50))))

	// Asymmetric axis weighting: non-modifiable factors dominate the upper
	// score range.
	return RiskScores{
		TotalScore:          total,
		Category:            CategoryFor(total),
		UncontrollableScore: int(math.Round(uncontrollable * 60)),
		ControllableScore:   int(math.Round(controllable * 40)),
		Factors:             factors,
	}
}

// CategoryFor is the single thresholding rule for both the overall category
// and per-section risk levels.
func CategoryFor(score int) RiskCategory {
	switch {
	case score >= 60:
		return RiskHigh
	case score >= 40:
		return RiskModerate
	default:
		return RiskLow
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
