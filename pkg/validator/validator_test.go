package validator_test

import (
	"testing"

	"school-api/pkg/validator"
)

type noteRequest struct {
	StudentID string  `validate:"required"`
	Score     float64 `validate:"gte=0,lte=100"`
}

type teacherRequest struct {
	Name          string   `validate:"required"`
	SpecialityIDs []string `validate:"required,min=1"`
}

func TestValidateStructPasses(t *testing.T) {
	req := noteRequest{StudentID: "abc", Score: 85}
	if err := validator.ValidateStruct(req); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}
}

func TestFormatValidationErrorMessages(t *testing.T) {
	req := noteRequest{Score: 150}
	err := validator.ValidateStruct(req)
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	byField := map[string]validator.ValidationError{}
	for _, e := range validator.FormatValidationError(err) {
		byField[e.Field] = e
	}

	if e, ok := byField["studentid"]; !ok || e.Message != "studentid is required" {
		t.Errorf("unexpected studentid entry: %+v", e)
	}
	if e, ok := byField["score"]; !ok || e.Message != "score must be at most 100" {
		t.Errorf("unexpected score entry: %+v", e)
	}
}

func TestFormatValidationErrorEmptyIDList(t *testing.T) {
	req := teacherRequest{Name: "Juan Perez", SpecialityIDs: []string{}}
	err := validator.ValidateStruct(req)
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	entries := validator.FormatValidationError(err)
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %+v", entries)
	}
	if entries[0].Message != "specialityids must contain at least 1 entries" {
		t.Errorf("unexpected message %q", entries[0].Message)
	}
}
