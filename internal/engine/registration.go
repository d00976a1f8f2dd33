package engine

import (
	"context"
	"fmt"

	"school-api/internal/domain/school"

	"github.com/google/uuid"
)

// RegistrationCandidate proposes enrolling a student into a set of committed
// assignments under one grade and section. Assignment order is irrelevant.
type RegistrationCandidate struct {
	StudentID     uuid.UUID
	GradeID       uuid.UUID
	SectionID     uuid.UUID
	AssignmentIDs []uuid.UUID
}

// RegistrationPatch carries the fields supplied in a partial update; nil
// fields inherit the stored registration's values.
type RegistrationPatch struct {
	StudentID     *uuid.UUID
	GradeID       *uuid.UUID
	SectionID     *uuid.UUID
	AssignmentIDs *[]uuid.UUID
}

// ApplyTo merges the patch over the stored registration. The merged view is
// then re-validated in full; there is deliberately no per-field branching.
func (p RegistrationPatch) ApplyTo(current *school.CourseRegistration) RegistrationCandidate {
	currentIDs := make([]uuid.UUID, 0, len(current.Assignments))
	for _, a := range current.Assignments {
		currentIDs = append(currentIDs, a.AssignmentID)
	}
	return RegistrationCandidate{
		StudentID:     merged(p.StudentID, current.StudentID),
		GradeID:       merged(p.GradeID, current.GradeID),
		SectionID:     merged(p.SectionID, current.SectionID),
		AssignmentIDs: merged(p.AssignmentIDs, currentIDs),
	}
}

// ValidateRegistration decides whether the candidate is admissible against
// the committed assignment set. excludeID is the registration being updated;
// when nil the candidate is a create and the single-registration rule applies.
func (e *Engine) ValidateRegistration(ctx context.Context, c RegistrationCandidate, excludeID *uuid.UUID) error {
	student, err := e.store.GetStudent(ctx, c.StudentID)
	if err != nil {
		return fmt.Errorf("loading student: %w", err)
	}
	if student == nil {
		return notFound("student", c.StudentID)
	}
	if student.Suspended {
		return conflict(KindStudentSuspended,
			fmt.Sprintf("student %s is suspended and cannot gain new registrations", student.Name),
			"student_id")
	}

	if excludeID == nil {
		existing, err := e.store.RegistrationForStudent(ctx, c.StudentID)
		if err != nil {
			return fmt.Errorf("checking existing registration: %w", err)
		}
		if existing != nil {
			return conflict(KindAlreadyRegistered,
				fmt.Sprintf("student %s already has an active registration", student.Name),
				"student_id")
		}
	}

	for _, assignmentID := range c.AssignmentIDs {
		assignment, err := e.store.GetAssignment(ctx, assignmentID)
		if err != nil {
			return fmt.Errorf("loading assignment %s: %w", assignmentID, err)
		}
		if assignment == nil {
			return conflict(KindAssignmentNotFound,
				fmt.Sprintf("assignment %s does not exist", assignmentID),
				"assignment_ids")
		}
		if assignment.GradeID != c.GradeID || assignment.SectionID != c.SectionID {
			return conflict(KindAssignmentGradeSectionMismatch,
				fmt.Sprintf("assignment %s does not belong to the registration's grade and section", assignmentID),
				"assignment_ids", "grade_id", "section_id")
		}
	}

	available, err := e.store.HasAssignmentsFor(ctx, c.GradeID, c.SectionID)
	if err != nil {
		return fmt.Errorf("checking assignment availability: %w", err)
	}
	if !available {
		return conflict(KindNoAssignmentsAvailable,
			"no course assignments exist for this grade and section",
			"grade_id", "section_id")
	}

	return nil
}
