package engine

type DailyPlan struct {
	Morning   string `json:"morning"`
	Afternoon string `json:"afternoon"`
	Evening   string `json:"evening"`
}

type PlanResult struct {
	Recommendations  []string          `json:"recommendations"`
	DailyPlan        DailyPlan         `json:"daily_plan"`
	CoachingFocus    []string          `json:"coaching_focus"`
	FollowUpTimeline map[string]string `json:"follow_up_timeline"`
}

// Timeline keys are a fixed vocabulary shared with the clients.
const (
	TimelineImmediate = "immediate"
	TimelineTwoWeeks  = "2_weeks"
	TimelineOneMonth  = "1_month"
	TimelineThreeMo   = "3_months"
	TimelineSixMo     = "6_months"
	TimelineOneYear   = "1_year"
)

// BuildPlan derives the recommendation list, daily plan, coaching focus, and
// follow-up timeline. Fully deterministic: same inputs, same outputs, no AI
// dependency.
func BuildPlan(a AssessmentAnswers, scores RiskScores, profile UserProfile) PlanResult {
	high := scores.Category == RiskHigh

	recommendations := []string{
		"Schedule a clinical breast exam with your healthcare provider",
		"Perform a breast self-examination every month",
		"Maintain a healthy weight through balanced nutrition",
		"Build up to 150 minutes of moderate exercise per week",
		"Limit alcohol consumption",
	}
	if high {
		recommendations = append(recommendations,
			"Discuss genetic counseling and BRCA testing with your doctor",
			"Ask your provider whether chemoprevention is appropriate for you",
		)
	}

	plan := DailyPlan{
		Morning:   "Ten minutes of mindful stretching and a fiber-rich breakfast",
		Afternoon: "A 30-minute brisk walk or equivalent moderate activity",
		Evening:   "Wind down with a light dinner, no alcohol, and 7-8 hours of sleep",
	}
	switch profile {
	case ProfilePostmenopausal:
		plan.Morning += ", including your calcium and vitamin D supplement"
	case ProfileTeenager:
		plan.Afternoon = "An hour of team sport, dance, or any activity you genuinely enjoy"
	case ProfileCurrentPatient, ProfileSurvivor:
		plan.Evening += "; add gentle restorative movement if cleared by your care team"
	}

	focus := []string{
		"Build a sustainable weekly exercise habit",
		"Shift toward a plant-forward eating pattern",
		"Keep a consistent sleep schedule",
	}
	if a.Alcohol != "" && a.Alcohol != AnswerNo {
		focus = append(focus, "Reduce alcohol intake toward zero drinks per week")
	}
	if a.BMI != nil && *a.BMI > 25 {
		focus = append(focus, "Work gradually toward a healthy body weight range")
	}

	timeline := map[string]string{
		TimelineImmediate: "Share this report with your primary care provider",
		TimelineOneMonth:  "Check in with your health coach on how the plan is going",
		TimelineThreeMo:   "Reassess your lifestyle factors and refresh the plan",
		TimelineSixMo:     "Schedule a clinical follow-up visit",
		TimelineOneYear:   "Repeat the full risk assessment",
	}
	if high {
		timeline[TimelineTwoWeeks] = "Book a genetic counseling consultation"
	}

	return PlanResult{
		Recommendations:  recommendations,
		DailyPlan:        plan,
		CoachingFocus:    focus,
		FollowUpTimeline: timeline,
	}
}
