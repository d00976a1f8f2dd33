package engine

import (
	"context"
	"fmt"

	"school-api/internal/domain/school"

	"github.com/google/uuid"
)

// AssignmentCandidate is a fully specified teacher-course-grade-section-
// schedule tuple proposed for commit.
type AssignmentCandidate struct {
	TeacherID  uuid.UUID
	CourseID   uuid.UUID
	GradeID    uuid.UUID
	SectionID  uuid.UUID
	ScheduleID uuid.UUID
}

// AssignmentPatch carries the fields supplied in a partial update. Nil fields
// inherit the stored instance's values.
type AssignmentPatch struct {
	TeacherID  *uuid.UUID
	CourseID   *uuid.UUID
	GradeID    *uuid.UUID
	SectionID  *uuid.UUID
	ScheduleID *uuid.UUID
}

// ApplyTo merges the patch over the stored assignment, yielding the full
// candidate that gets validated as if it were a complete replacement.
func (p AssignmentPatch) ApplyTo(current *school.TeacherCourseAssignment) AssignmentCandidate {
	return AssignmentCandidate{
		TeacherID:  merged(p.TeacherID, current.TeacherID),
		CourseID:   merged(p.CourseID, current.CourseID),
		GradeID:    merged(p.GradeID, current.GradeID),
		SectionID:  merged(p.SectionID, current.SectionID),
		ScheduleID: merged(p.ScheduleID, current.ScheduleID),
	}
}

// ValidateAssignment decides whether the candidate tuple is admissible given
// every committed assignment. Checks run in order and short-circuit:
// speciality match, schedule overlap, uniqueness. When excludeID is non-nil
// the stored instance being updated is ignored by the conflict checks.
//
// The decision is pure: on success the commit is the caller's responsibility.
func (e *Engine) ValidateAssignment(ctx context.Context, c AssignmentCandidate, excludeID *uuid.UUID) error {
	teacher, err := e.store.GetTeacher(ctx, c.TeacherID)
	if err != nil {
		return fmt.Errorf("loading teacher: %w", err)
	}
	if teacher == nil {
		return notFound("teacher", c.TeacherID)
	}

	course, err := e.store.GetCourse(ctx, c.CourseID)
	if err != nil {
		return fmt.Errorf("loading course: %w", err)
	}
	if course == nil {
		return notFound("course", c.CourseID)
	}

	if !teacher.HasSpeciality(course.SpecialityID) {
		return conflict(KindSpecialityMismatch,
			fmt.Sprintf("teacher %s is not specialized in %s", teacher.Name, course.Speciality.Name),
			"teacher_id", "course_id")
	}

	schedule, err := e.store.GetSchedule(ctx, c.ScheduleID)
	if err != nil {
		return fmt.Errorf("loading schedule: %w", err)
	}
	if schedule == nil {
		return notFound("schedule", c.ScheduleID)
	}
	start, end, err := schedule.Window()
	if err != nil {
		return fmt.Errorf("schedule %s: %w", schedule.ScheduleID, err)
	}

	overlapping, err := e.store.AssignmentsOverlapping(ctx, c.TeacherID, c.GradeID, c.SectionID, TimeWindow{Start: start, End: end}, excludeID)
	if err != nil {
		return fmt.Errorf("checking schedule overlap: %w", err)
	}
	if len(overlapping) > 0 {
		return conflict(KindScheduleConflict,
			fmt.Sprintf("teacher %s already has an assignment overlapping %s for this grade and section", teacher.Name, schedule),
			"teacher_id", "schedule_id", "grade_id", "section_id")
	}

	exists, err := e.store.AssignmentExists(ctx, c.CourseID, c.GradeID, c.SectionID, c.ScheduleID, excludeID)
	if err != nil {
		return fmt.Errorf("checking assignment uniqueness: %w", err)
	}
	if exists {
		return conflict(KindDuplicateAssignment,
			"an identical assignment for this course, grade, section and schedule already exists",
			"course_id", "grade_id", "section_id", "schedule_id")
	}

	return nil
}
