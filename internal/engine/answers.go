package engine

import (
	"fmt"
	"math"
)

// Questionnaire option strings, as rendered to the user. Matching is exact
// except family history and menopause, which match on the leading "Yes".
const (
	AnswerNo       = "No"
	ExerciseLittle = "Little or no regular exercise"
)

// AssessmentAnswers is the typed form of a submitted questionnaire. Only Age
// is required; a nil/empty optional field means "factor not present", never an
// error. Unknown questionnaire keys are dropped at decode time.
type AssessmentAnswers struct {
	Age           *int     `json:"age,omitempty"`
	FamilyHistory string   `json:"family_history,omitempty"`
	Weight        *float64 `json:"weight,omitempty"` // kg
	Height        *float64 `json:"height,omitempty"` // meters
	BMI           *float64 `json:"bmi,omitempty"`
	Exercise      string   `json:"exercise,omitempty"`
	Alcohol       string   `json:"alcohol,omitempty"`
	Obesity       string   `json:"obesity,omitempty"`
	Menopause     string   `json:"menopause,omitempty"`

	// ProfileOverride carries the externally supplied current_patient /
	// survivor designation. There is no derivation rule for these two
	// profiles in the answer set itself.
	ProfileOverride string `json:"profile_override,omitempty"`
}

// ValidationError is the only engine failure a caller is expected to handle.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// InvariantViolation signals a bug in an upstream component. It is never
// produced from valid input and callers must not recover from it.
type InvariantViolation struct {
	Msg string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Msg)
}

// Normalize returns a cleaned copy of the answers. BMI is derived from weight
// and height when absent. The input value is never mutated.
func Normalize(a AssessmentAnswers) (AssessmentAnswers, error) {
	if a.Age == nil {
		return AssessmentAnswers{}, &ValidationError{Field: "age"}
	}

	out := a
	if out.BMI == nil && out.Weight != nil && out.Height != nil && *out.Height > 0 {
		bmi := round1(*out.Weight / (*out.Height * *out.Height))
		out.BMI = &bmi
	}
	return out, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
