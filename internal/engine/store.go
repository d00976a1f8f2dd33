package engine

import (
	"context"

	"school-api/internal/domain/school"

	"github.com/google/uuid"
)

// TimeWindow is a daily time span in minutes since midnight. The interval is
// half-open: [Start, End).
type TimeWindow struct {
	Start int
	End   int
}

// Overlaps reports whether two half-open windows intersect:
// other.Start < w.End && other.End > w.Start.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return other.Start < w.End && other.End > w.Start
}

// Store is the complete read surface the validators need: point lookups,
// existence checks, one overlap range query and one availability check.
// Implementations must be safe for concurrent readers.
//
// Point lookups return (nil, nil) when the entity does not exist; an error is
// reserved for storage failures. Queries taking an excludeID skip that row
// when the pointer is non-nil, which gives updates replace semantics.
type Store interface {
	// GetTeacher resolves the teacher with its speciality set populated.
	GetTeacher(ctx context.Context, id uuid.UUID) (*school.Teacher, error)
	// GetCourse resolves the course with its speciality populated.
	GetCourse(ctx context.Context, id uuid.UUID) (*school.Course, error)
	GetStudent(ctx context.Context, id uuid.UUID) (*school.Student, error)
	GetSchedule(ctx context.Context, id uuid.UUID) (*school.Schedule, error)
	GetAssignment(ctx context.Context, id uuid.UUID) (*school.TeacherCourseAssignment, error)

	// AssignmentsOverlapping returns the ids of committed assignments for the
	// same (teacher, grade, section) whose schedule window intersects the given
	// window, excluding excludeID when non-nil.
	AssignmentsOverlapping(ctx context.Context, teacherID, gradeID, sectionID uuid.UUID, window TimeWindow, excludeID *uuid.UUID) ([]uuid.UUID, error)

	// AssignmentExists reports whether an assignment with the identical
	// (course, grade, section, schedule) tuple is already committed,
	// excluding excludeID when non-nil.
	AssignmentExists(ctx context.Context, courseID, gradeID, sectionID, scheduleID uuid.UUID, excludeID *uuid.UUID) (bool, error)

	// HasAssignmentsFor reports whether at least one assignment is committed
	// for the (grade, section) pair.
	HasAssignmentsFor(ctx context.Context, gradeID, sectionID uuid.UUID) (bool, error)

	// RegistrationForStudent returns the student's registration, or (nil, nil)
	// when the student has none. A student holds at most one.
	RegistrationForStudent(ctx context.Context, studentID uuid.UUID) (*school.CourseRegistration, error)

	// RegistrationLinks reports whether a committed registration joins the
	// student to an assignment with the given course and teacher.
	RegistrationLinks(ctx context.Context, studentID, courseID, teacherID uuid.UUID) (bool, error)

	// NoteExists reports whether a note is already committed for the
	// (student, course) pair, excluding excludeID when non-nil.
	NoteExists(ctx context.Context, studentID, courseID uuid.UUID, excludeID *uuid.UUID) (bool, error)
}

// Engine decides admissibility of assignment, registration and note
// candidates against the committed state behind a Store. It is a pure
// decision function: it never writes, retries or blocks beyond the store's
// own reads, so any number of validations may run concurrently.
type Engine struct {
	store Store
}

func New(store Store) *Engine {
	return &Engine{store: store}
}

// merged returns the patch value when supplied, otherwise the stored one.
// Every partial update flows through this single primitive so an update is
// always validated as a full replacement of the merged view.
func merged[T any](patch *T, current T) T {
	if patch != nil {
		return *patch
	}
	return current
}
