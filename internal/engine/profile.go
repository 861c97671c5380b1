package engine

import "strings"

// UserProfile is the closed set of life-stage profiles. It is derived once
// per report and never changes afterwards.
type UserProfile string

const (
	ProfileTeenager       UserProfile = "teenager"
	ProfilePremenopausal  UserProfile = "premenopausal"
	ProfilePostmenopausal UserProfile = "postmenopausal"
	ProfileCurrentPatient UserProfile = "current_patient"
	ProfileSurvivor       UserProfile = "survivor"
)

// ClassifyProfile maps normalized answers to a profile. Rules run in order,
// first match wins. current_patient and survivor have no derivation path from
// the questionnaire and are honored only via the explicit override field.
func ClassifyProfile(a AssessmentAnswers) UserProfile {
	switch UserProfile(a.ProfileOverride) {
	case ProfileCurrentPatient:
		return ProfileCurrentPatient
	case ProfileSurvivor:
		return ProfileSurvivor
	}

	if a.Age != nil && *a.Age < 20 {
		return ProfileTeenager
	}
	if menopauseOnset(a.Menopause) {
		return ProfilePostmenopausal
	}
	return ProfilePremenopausal
}

// menopauseOnset reports whether the menopause answer indicates onset, before
// or after age 55.
func menopauseOnset(answer string) bool {
	return strings.HasPrefix(strings.TrimSpace(answer), "Yes")
}
