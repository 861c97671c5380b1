package engine

import "math"

// The four diagnostic sections. The set is closed: reports always carry
// exactly these, in this order.
const (
	SectionDemographics  = "Demographics & Age"
	SectionFamilyHistory = "Family History"
	SectionLifestyle     = "Lifestyle Factors"
	SectionReproductive  = "Reproductive History"
)

func SectionNames() []string {
	return []string{SectionDemographics, SectionFamilyHistory, SectionLifestyle, SectionReproductive}
}

type SectionBreakdown struct {
	Name        string       `json:"name"`
	Score       int          `json:"score"`
	RiskLevel   RiskCategory `json:"risk_level"`
	FactorCount int          `json:"factor_count"`
	RiskFactors []string     `json:"risk_factors"`
}

// AnalyzeSections partitions the aggregated risk into the fixed sections.
// Section scores are diagnostic slices of the axis scores and deliberately do
// not sum to the total score: the decomposition favors explainability over
// arithmetic consistency.
func AnalyzeSections(a AssessmentAnswers, scores RiskScores) []SectionBreakdown {
	out := make([]SectionBreakdown, 0, 4)

	// Demographics & Age: the age slice of the uncontrollable axis, rescaled
	// the same way the total score is.
	ageMult := 1.0
	var demoFactors []string
	if a.Age != nil && *a.Age >= 50 {
		ageMult = 1.5
		demoFactors = append(demoFactors, FactorAgeOver50)
	}
	out = append(out, newSection(SectionDemographics, clampScore(int(math.Round(ageMult*50))), demoFactors))

	// Family History is binary: present or not.
	fhScore := 25
	var fhFactors []string
	if containsFactor(scores.Factors, FactorFamilyHistory) {
		fhScore = 75
		fhFactors = append(fhFactors, FactorFamilyHistory)
	}
	out = append(out, newSection(SectionFamilyHistory, fhScore, fhFactors))

	// Lifestyle Factors mirrors the controllable axis score directly.
	var lifestyleFactors []string
	for _, f := range scores.Factors {
		switch f {
		case FactorAlcohol, FactorInactivity, FactorObesity:
			lifestyleFactors = append(lifestyleFactors, f)
		}
	}
	out = append(out, newSection(SectionLifestyle, clampScore(scores.ControllableScore), lifestyleFactors))

	// Reproductive History: uncontrollable-axis context from menopause
	// status. Its entry is section-local, not part of the overall factor
	// list.
	reproScore := 35
	var reproFactors []string
	if menopauseOnset(a.Menopause) {
		reproScore = 60
		reproFactors = append(reproFactors, "Postmenopausal hormonal exposure extends the risk window")
	}
	out = append(out, newSection(SectionReproductive, reproScore, reproFactors))

	return out
}

func newSection(name string, score int, factors []string) SectionBreakdown {
	if factors == nil {
		factors = []string{}
	}
	return SectionBreakdown{
		Name:        name,
		Score:       score,
		RiskLevel:   CategoryFor(score),
		FactorCount: len(factors),
		RiskFactors: factors,
	}
}

func containsFactor(factors []string, want string) bool {
	for _, f := range factors {
		if f == want {
			return true
		}
	}
	return false
}
