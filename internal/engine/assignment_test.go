package engine_test

import (
	"context"
	"testing"

	"school-api/internal/engine"

	"github.com/google/uuid"
)

func wantConflict(t *testing.T, err error, kind engine.ConflictKind) *engine.ConflictError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s conflict, got nil", kind)
	}
	ce, ok := engine.AsConflict(err)
	if !ok {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if ce.Kind != kind {
		t.Fatalf("expected conflict kind %s, got %s", kind, ce.Kind)
	}
	return ce
}

func TestValidateAssignmentAccepts(t *testing.T) {
	f := newFixture()

	err := f.engine.ValidateAssignment(context.Background(), f.mathAssignment(), nil)
	if err != nil {
		t.Fatalf("expected candidate to pass, got %v", err)
	}
}

func TestValidateAssignmentSpecialityMismatch(t *testing.T) {
	f := newFixture()

	candidate := f.mathAssignment()
	candidate.TeacherID = f.pedroID

	err := f.engine.ValidateAssignment(context.Background(), candidate, nil)
	ce := wantConflict(t, err, engine.KindSpecialityMismatch)
	if len(ce.Fields) == 0 {
		t.Errorf("expected offending fields on conflict, got none")
	}
}

func TestValidateAssignmentScheduleConflict(t *testing.T) {
	f := newFixture()
	f.commitAssignment(f.mathAssignment())

	// Same teacher, grade and section; 08:00-10:00 overlaps 07:00-09:00.
	candidate := f.mathAssignment()
	candidate.ScheduleID = f.overlappingID

	err := f.engine.ValidateAssignment(context.Background(), candidate, nil)
	wantConflict(t, err, engine.KindScheduleConflict)
}

func TestValidateAssignmentAdjacentWindowsDoNotOverlap(t *testing.T) {
	f := newFixture()
	f.commitAssignment(f.mathAssignment())

	// 09:00-11:00 starts exactly when 07:00-09:00 ends.
	candidate := f.mathAssignment()
	candidate.ScheduleID = f.lateID

	if err := f.engine.ValidateAssignment(context.Background(), candidate, nil); err != nil {
		t.Fatalf("adjacent windows should not conflict, got %v", err)
	}
}

func TestValidateAssignmentOverlapScopedToGradeAndSection(t *testing.T) {
	f := newFixture()
	f.commitAssignment(f.mathAssignment())

	// Same teacher and overlapping window but a different section.
	candidate := f.mathAssignment()
	candidate.ScheduleID = f.overlappingID
	candidate.SectionID = uuid.New()

	if err := f.engine.ValidateAssignment(context.Background(), candidate, nil); err != nil {
		t.Fatalf("overlap in another section should pass, got %v", err)
	}
}

func TestValidateAssignmentDuplicate(t *testing.T) {
	f := newFixture()
	f.commitAssignment(f.mathAssignment())

	// Pedro cannot teach maths, so give the duplicate tuple to a second
	// maths teacher to isolate the uniqueness check from the overlap check.
	// The tuple is identical apart from the teacher, but the overlap check is
	// scoped per teacher and does not fire.
	duplicate := f.mathAssignment()
	duplicate.TeacherID = f.secondMathsTeacher()

	err := f.engine.ValidateAssignment(context.Background(), duplicate, nil)
	wantConflict(t, err, engine.KindDuplicateAssignment)
}

func TestValidateAssignmentUnknownReferences(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	candidate := f.mathAssignment()
	candidate.TeacherID = uuid.New()
	if err := f.engine.ValidateAssignment(ctx, candidate, nil); !engine.IsNotFound(err) {
		t.Errorf("unknown teacher: expected not found, got %v", err)
	}

	candidate = f.mathAssignment()
	candidate.CourseID = uuid.New()
	if err := f.engine.ValidateAssignment(ctx, candidate, nil); !engine.IsNotFound(err) {
		t.Errorf("unknown course: expected not found, got %v", err)
	}

	candidate = f.mathAssignment()
	candidate.ScheduleID = uuid.New()
	if err := f.engine.ValidateAssignment(ctx, candidate, nil); !engine.IsNotFound(err) {
		t.Errorf("unknown schedule: expected not found, got %v", err)
	}
}

func TestValidateAssignmentUpdateIgnoresOwnRow(t *testing.T) {
	f := newFixture()
	id := f.commitAssignment(f.mathAssignment())

	// Re-validating the stored tuple with its own id excluded must pass, so
	// a no-op update is idempotent.
	err := f.engine.ValidateAssignment(context.Background(), f.mathAssignment(), &id)
	if err != nil {
		t.Fatalf("no-op update should pass, got %v", err)
	}
}

func TestValidateAssignmentUpdateIntoOverlap(t *testing.T) {
	f := newFixture()
	f.commitAssignment(f.mathAssignment())

	second := f.mathAssignment()
	second.CourseID = f.secondMathsCourse()
	second.ScheduleID = f.lateID
	secondID := f.commitAssignment(second)

	// Moving the second assignment onto a window that overlaps the first
	// must be rejected even though its own row is excluded.
	moved := second
	moved.ScheduleID = f.overlappingID
	err := f.engine.ValidateAssignment(context.Background(), moved, &secondID)
	wantConflict(t, err, engine.KindScheduleConflict)
}
