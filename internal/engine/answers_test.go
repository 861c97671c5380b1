package engine

import (
	"errors"
	"testing"
)

func intPtr(v int) *int             { return &v }
func floatPtr(v float64) *float64   { return &v }

func TestNormalize_DerivesBMIFromWeightAndHeight(t *testing.T) {
	in := AssessmentAnswers{
		Age:    intPtr(45),
		Weight: floatPtr(70.0),
		Height: floatPtr(1.75),
	}

	out, err := Normalize(in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.BMI == nil {
		t.Fatalf("expected derived bmi")
	}
	if *out.BMI != 22.9 {
		t.Fatalf("expected bmi=22.9 got %v", *out.BMI)
	}
	if in.BMI != nil {
		t.Fatalf("input mutated: bmi set on caller's value")
	}
}

func TestNormalize_KeepsExplicitBMI(t *testing.T) {
	in := AssessmentAnswers{
		Age:    intPtr(45),
		Weight: floatPtr(70.0),
		Height: floatPtr(1.75),
		BMI:    floatPtr(30.0),
	}

	out, err := Normalize(in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if *out.BMI != 30.0 {
		t.Fatalf("explicit bmi overwritten: got %v", *out.BMI)
	}
}

func TestNormalize_SkipsBMIOnZeroHeight(t *testing.T) {
	in := AssessmentAnswers{
		Age:    intPtr(45),
		Weight: floatPtr(70.0),
		Height: floatPtr(0),
	}

	out, err := Normalize(in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.BMI != nil {
		t.Fatalf("expected no bmi for zero height, got %v", *out.BMI)
	}
}

func TestNormalize_MissingAgeIsValidationError(t *testing.T) {
	_, err := Normalize(AssessmentAnswers{Weight: floatPtr(70)})
	if err == nil {
		t.Fatalf("expected error for missing age")
	}
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if vErr.Field != "age" {
		t.Fatalf("expected field=age got %q", vErr.Field)
	}
}

func TestNormalize_OptionalFieldsAbsentIsFine(t *testing.T) {
	out, err := Normalize(AssessmentAnswers{Age: intPtr(30)})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.BMI != nil || out.FamilyHistory != "" {
		t.Fatalf("unexpected derived values: %+v", out)
	}
}
