package engine

import "testing"

func answersWithEverything(age int) AssessmentAnswers {
	return AssessmentAnswers{
		Age:           intPtr(age),
		FamilyHistory: "Yes, a first-degree relative",
		Alcohol:       "Yes, weekly",
		Exercise:      ExerciseLittle,
		Obesity:       "Yes",
	}
}

func TestAggregateRisk_NoFactorsBaseline(t *testing.T) {
	scores := AggregateRisk(AssessmentAnswers{Age: intPtr(30)})
	if scores.TotalScore != 50 {
		t.Fatalf("expected baseline total=50 got %d", scores.TotalScore)
	}
	if len(scores.Factors) != 0 {
		t.Fatalf("expected no factors, got %v", scores.Factors)
	}
	if scores.UncontrollableScore != 60 || scores.ControllableScore != 40 {
		t.Fatalf("unexpected axis scores: %d / %d", scores.UncontrollableScore, scores.ControllableScore)
	}
}

func TestAggregateRisk_BoundsHoldForAllAnswerCombinations(t *testing.T) {
	ages := []int{15, 30, 50, 72}
	familyHistory := []string{"", "No known history", "Yes, a first-degree relative"}
	alcohol := []string{"", AnswerNo, "Yes, weekly"}
	exercise := []string{"", "Daily exercise", ExerciseLittle}
	obesity := []string{"", "No", "Yes"}

	for _, age := range ages {
		for _, fh := range familyHistory {
			for _, al := range alcohol {
				for _, ex := range exercise {
					for _, ob := range obesity {
						scores := AggregateRisk(AssessmentAnswers{
							Age:           intPtr(age),
							FamilyHistory: fh,
							Alcohol:       al,
							Exercise:      ex,
							Obesity:       ob,
						})
						if scores.TotalScore < 0 || scores.TotalScore > 100 {
							t.Fatalf("total %d out of bounds for age=%d fh=%q al=%q ex=%q ob=%q",
								scores.TotalScore, age, fh, al, ex, ob)
						}
						if scores.Category != CategoryFor(scores.TotalScore) {
							t.Fatalf("category %q inconsistent with total %d", scores.Category, scores.TotalScore)
						}
					}
				}
			}
		}
	}
}

func TestAggregateRisk_FamilyHistoryIsMonotonic(t *testing.T) {
	base := AssessmentAnswers{Age: intPtr(55), Alcohol: "Yes, weekly"}
	without := AggregateRisk(base)

	base.FamilyHistory = "Yes, a first-degree relative"
	with := AggregateRisk(base)

	if with.TotalScore <= without.TotalScore {
		t.Fatalf("expected family history to strictly increase total: %d -> %d", without.TotalScore, with.TotalScore)
	}
}

func TestAggregateRisk_EachFactorNeverDecreasesTotal(t *testing.T) {
	base := AssessmentAnswers{Age: intPtr(30)}
	baseline := AggregateRisk(base).TotalScore

	variants := []AssessmentAnswers{
		{Age: intPtr(55)},
		{Age: intPtr(30), FamilyHistory: "Yes"},
		{Age: intPtr(30), Alcohol: "Yes, weekly"},
		{Age: intPtr(30), Exercise: ExerciseLittle},
		{Age: intPtr(30), Obesity: "Yes"},
	}
	for i, v := range variants {
		got := AggregateRisk(v).TotalScore
		if got < baseline {
			t.Fatalf("variant %d decreased total: %d < %d", i, got, baseline)
		}
	}
}

func TestAggregateRisk_AlcoholNoIsNotAFactor(t *testing.T) {
	scores := AggregateRisk(AssessmentAnswers{Age: intPtr(30), Alcohol: AnswerNo})
	if containsFactor(scores.Factors, FactorAlcohol) {
		t.Fatalf("answer %q must not count as a factor", AnswerNo)
	}
	if scores.TotalScore != 50 {
		t.Fatalf("expected baseline 50, got %d", scores.TotalScore)
	}
}

func TestAggregateRisk_AlcoholOnlyLandsExactlyOnHighBoundary(t *testing.T) {
	scores := AggregateRisk(AssessmentAnswers{Age: intPtr(30), Alcohol: "Yes, occasionally"})
	if scores.TotalScore != 60 {
		t.Fatalf("expected total=60 got %d", scores.TotalScore)
	}
	if scores.Category != RiskHigh {
		t.Fatalf("expected high at the 60 boundary, got %q", scores.Category)
	}
}

func TestAggregateRisk_AllFactorsClampTo100(t *testing.T) {
	scores := AggregateRisk(answersWithEverything(72))
	if scores.TotalScore != 100 {
		t.Fatalf("expected clamp to 100, got %d", scores.TotalScore)
	}
	if len(scores.Factors) != 5 {
		t.Fatalf("expected all five factors, got %v", scores.Factors)
	}
	want := []string{FactorAgeOver50, FactorFamilyHistory, FactorAlcohol, FactorInactivity, FactorObesity}
	for i, f := range want {
		if scores.Factors[i] != f {
			t.Fatalf("factor order wrong at %d: got %q want %q", i, scores.Factors[i], f)
		}
	}
}

func TestCategoryFor_BoundaryExactness(t *testing.T) {
	cases := []struct {
		score int
		want  RiskCategory
	}{
		{0, RiskLow},
		{39, RiskLow},
		{40, RiskModerate},
		{59, RiskModerate},
		{60, RiskHigh},
		{100, RiskHigh},
	}
	for _, tc := range cases {
		if got := CategoryFor(tc.score); got != tc.want {
			t.Fatalf("CategoryFor(%d)=%q want %q", tc.score, got, tc.want)
		}
	}
}
