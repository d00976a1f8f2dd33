package engine_test

import (
	"context"
	"testing"

	"school-api/internal/engine"

	"github.com/google/uuid"
)

func TestValidateRegistrationAccepts(t *testing.T) {
	f := newFixture()
	assignmentID := f.commitAssignment(f.mathAssignment())

	candidate := engine.RegistrationCandidate{
		StudentID:     f.mariaID,
		GradeID:       f.gradeID,
		SectionID:     f.sectionID,
		AssignmentIDs: []uuid.UUID{assignmentID},
	}
	if err := f.engine.ValidateRegistration(context.Background(), candidate, nil); err != nil {
		t.Fatalf("expected candidate to pass, got %v", err)
	}
}

func TestValidateRegistrationSuspendedStudent(t *testing.T) {
	f := newFixture()
	assignmentID := f.commitAssignment(f.mathAssignment())

	candidate := engine.RegistrationCandidate{
		StudentID:     f.diegoID,
		GradeID:       f.gradeID,
		SectionID:     f.sectionID,
		AssignmentIDs: []uuid.UUID{assignmentID},
	}
	err := f.engine.ValidateRegistration(context.Background(), candidate, nil)
	wantConflict(t, err, engine.KindStudentSuspended)
}

func TestValidateRegistrationUnknownStudent(t *testing.T) {
	f := newFixture()
	assignmentID := f.commitAssignment(f.mathAssignment())

	candidate := engine.RegistrationCandidate{
		StudentID:     uuid.New(),
		GradeID:       f.gradeID,
		SectionID:     f.sectionID,
		AssignmentIDs: []uuid.UUID{assignmentID},
	}
	if err := f.engine.ValidateRegistration(context.Background(), candidate, nil); !engine.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestValidateRegistrationAlreadyRegistered(t *testing.T) {
	f := newFixture()
	assignmentID := f.commitAssignment(f.mathAssignment())

	candidate := engine.RegistrationCandidate{
		StudentID:     f.mariaID,
		GradeID:       f.gradeID,
		SectionID:     f.sectionID,
		AssignmentIDs: []uuid.UUID{assignmentID},
	}
	registrationID := f.commitRegistration(candidate)

	err := f.engine.ValidateRegistration(context.Background(), candidate, nil)
	wantConflict(t, err, engine.KindAlreadyRegistered)

	// The same candidate is fine as an update of the existing registration.
	if err := f.engine.ValidateRegistration(context.Background(), candidate, &registrationID); err != nil {
		t.Fatalf("update of own registration should pass, got %v", err)
	}
}

func TestValidateRegistrationUnknownAssignment(t *testing.T) {
	f := newFixture()
	f.commitAssignment(f.mathAssignment())

	candidate := engine.RegistrationCandidate{
		StudentID:     f.mariaID,
		GradeID:       f.gradeID,
		SectionID:     f.sectionID,
		AssignmentIDs: []uuid.UUID{uuid.New()},
	}
	err := f.engine.ValidateRegistration(context.Background(), candidate, nil)
	wantConflict(t, err, engine.KindAssignmentNotFound)
}

func TestValidateRegistrationGradeSectionMismatch(t *testing.T) {
	f := newFixture()
	assignmentID := f.commitAssignment(f.mathAssignment())

	// The registration targets a different section than the assignment.
	otherSection := uuid.New()
	second := f.mathAssignment()
	second.SectionID = otherSection
	f.commitAssignment(second)

	candidate := engine.RegistrationCandidate{
		StudentID:     f.mariaID,
		GradeID:       f.gradeID,
		SectionID:     otherSection,
		AssignmentIDs: []uuid.UUID{assignmentID},
	}
	err := f.engine.ValidateRegistration(context.Background(), candidate, nil)
	wantConflict(t, err, engine.KindAssignmentGradeSectionMismatch)
}

func TestValidateRegistrationNoAssignmentsAvailable(t *testing.T) {
	f := newFixture()

	// Nothing is taught for this grade and section yet.
	candidate := engine.RegistrationCandidate{
		StudentID:     f.mariaID,
		GradeID:       f.gradeID,
		SectionID:     f.sectionID,
		AssignmentIDs: nil,
	}
	err := f.engine.ValidateRegistration(context.Background(), candidate, nil)
	wantConflict(t, err, engine.KindNoAssignmentsAvailable)
}
