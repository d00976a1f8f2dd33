package engine

import (
	"context"
	"fmt"

	"school-api/internal/domain/school"

	"github.com/google/uuid"
)

// NoteCandidate proposes recording a score a teacher gave a student for a
// course.
type NoteCandidate struct {
	StudentID uuid.UUID
	CourseID  uuid.UUID
	TeacherID uuid.UUID
	Score     float64
}

// NotePatch carries the fields supplied in a partial update; nil fields
// inherit the stored note's values.
type NotePatch struct {
	StudentID *uuid.UUID
	CourseID  *uuid.UUID
	TeacherID *uuid.UUID
	Score     *float64
}

// ApplyTo merges the patch over the stored note into a full candidate.
func (p NotePatch) ApplyTo(current *school.Note) NoteCandidate {
	return NoteCandidate{
		StudentID: merged(p.StudentID, current.StudentID),
		CourseID:  merged(p.CourseID, current.CourseID),
		TeacherID: merged(p.TeacherID, current.TeacherID),
		Score:     merged(p.Score, current.Score),
	}
}

// ValidateNote decides whether the candidate is admissible against the
// committed registration graph. excludeID is the note being updated; the
// per-(student, course) uniqueness check ignores that row, so an update may
// keep its own pair but never collide with another note's.
func (e *Engine) ValidateNote(ctx context.Context, c NoteCandidate, excludeID *uuid.UUID) error {
	if c.Score < 0 || c.Score > 100 {
		return conflict(KindScoreOutOfRange,
			fmt.Sprintf("score %.2f is outside the 0-100 range", c.Score),
			"score")
	}

	student, err := e.store.GetStudent(ctx, c.StudentID)
	if err != nil {
		return fmt.Errorf("loading student: %w", err)
	}
	if student == nil {
		return notFound("student", c.StudentID)
	}

	linked, err := e.store.RegistrationLinks(ctx, c.StudentID, c.CourseID, c.TeacherID)
	if err != nil {
		return fmt.Errorf("checking registration link: %w", err)
	}
	if !linked {
		return conflict(KindUnlinkedNote,
			fmt.Sprintf("student %s has no registration linking this course and teacher", student.Name),
			"student_id", "course_id", "teacher_id")
	}

	exists, err := e.store.NoteExists(ctx, c.StudentID, c.CourseID, excludeID)
	if err != nil {
		return fmt.Errorf("checking note uniqueness: %w", err)
	}
	if exists {
		return conflict(KindDuplicateNote,
			fmt.Sprintf("a note already exists for student %s in this course", student.Name),
			"student_id", "course_id")
	}

	return nil
}
