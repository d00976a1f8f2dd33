package interfaces

import (
	"context"

	"school-api/internal/domain/school"
	"school-api/internal/engine"

	"github.com/google/uuid"
)

// EntityStore is the canonical record store. It exposes the engine's read
// surface plus the write operations the transaction coordinator commits
// after a successful validation.
type EntityStore interface {
	engine.Store

	CreateAssignment(ctx context.Context, assignment *school.TeacherCourseAssignment) error
	UpdateAssignment(ctx context.Context, assignment *school.TeacherCourseAssignment) error
	DeleteAssignment(ctx context.Context, id uuid.UUID) error
	AssignmentsForTeacher(ctx context.Context, teacherID uuid.UUID) ([]*school.TeacherCourseAssignment, error)

	GetRegistration(ctx context.Context, id uuid.UUID) (*school.CourseRegistration, error)
	CreateRegistration(ctx context.Context, registration *school.CourseRegistration, assignmentIDs []uuid.UUID) error
	UpdateRegistration(ctx context.Context, registration *school.CourseRegistration, assignmentIDs []uuid.UUID) error
	DeleteRegistration(ctx context.Context, id uuid.UUID) error

	GetNote(ctx context.Context, id uuid.UUID) (*school.Note, error)
	CreateNote(ctx context.Context, note *school.Note) error
	UpdateNote(ctx context.Context, note *school.Note) error
	DeleteNote(ctx context.Context, id uuid.UUID) error
	NotesForStudent(ctx context.Context, studentID uuid.UUID) ([]*school.Note, error)
}

// TransactionManager wraps a validate-then-commit sequence in an exclusive
// write scope so no concurrent writer can commit a conflicting row between a
// validator's success and the corresponding write. Implementations must
// serialize callers that share a lock key and hand fn a store reading
// transaction-consistent state.
type TransactionManager interface {
	Run(ctx context.Context, lockKeys []string, fn func(store EntityStore) error) error
}

// CatalogRepository holds the supporting records the engine validates
// against. Deletes are protect-on-delete: removing a row still referenced by
// a dependent entity fails with *school.ProtectedReferenceError.
type CatalogRepository interface {
	CreateSpeciality(ctx context.Context, speciality *school.Speciality) error
	GetSpeciality(ctx context.Context, id uuid.UUID) (*school.Speciality, error)
	GetSpecialityByName(ctx context.Context, name string) (*school.Speciality, error)
	ListSpecialities(ctx context.Context) ([]*school.Speciality, error)
	DeleteSpeciality(ctx context.Context, id uuid.UUID) error

	CreateTeacher(ctx context.Context, teacher *school.Teacher, specialityIDs, gradeIDs []uuid.UUID) error
	GetTeacher(ctx context.Context, id uuid.UUID) (*school.Teacher, error)
	GetTeacherByName(ctx context.Context, name string) (*school.Teacher, error)
	ListTeachers(ctx context.Context) ([]*school.Teacher, error)
	UpdateTeacher(ctx context.Context, teacher *school.Teacher, specialityIDs, gradeIDs []uuid.UUID) error
	DeleteTeacher(ctx context.Context, id uuid.UUID) error

	CreateCourse(ctx context.Context, course *school.Course) error
	GetCourse(ctx context.Context, id uuid.UUID) (*school.Course, error)
	GetCourseByName(ctx context.Context, name string) (*school.Course, error)
	ListCourses(ctx context.Context) ([]*school.Course, error)
	UpdateCourse(ctx context.Context, course *school.Course) error
	DeleteCourse(ctx context.Context, id uuid.UUID) error

	CreateGrade(ctx context.Context, grade *school.Grade) error
	GetGrade(ctx context.Context, id uuid.UUID) (*school.Grade, error)
	GetGradeByName(ctx context.Context, name string) (*school.Grade, error)
	GetGradeByCode(ctx context.Context, code string) (*school.Grade, error)
	ListGrades(ctx context.Context) ([]*school.Grade, error)
	UpdateGrade(ctx context.Context, grade *school.Grade) error
	DeleteGrade(ctx context.Context, id uuid.UUID) error

	CreateSection(ctx context.Context, section *school.Section) error
	GetSection(ctx context.Context, id uuid.UUID) (*school.Section, error)
	ListSections(ctx context.Context) ([]*school.Section, error)
	DeleteSection(ctx context.Context, id uuid.UUID) error

	CreateSchedule(ctx context.Context, schedule *school.Schedule) error
	ListSchedules(ctx context.Context) ([]*school.Schedule, error)
	DeleteSchedule(ctx context.Context, id uuid.UUID) error

	CreateTutor(ctx context.Context, tutor *school.Tutor) error
	GetTutor(ctx context.Context, id uuid.UUID) (*school.Tutor, error)
	ListTutors(ctx context.Context) ([]*school.Tutor, error)
	DeleteTutor(ctx context.Context, id uuid.UUID) error

	CreateStudent(ctx context.Context, student *school.Student) error
	GetStudent(ctx context.Context, id uuid.UUID) (*school.Student, error)
	GetStudentByName(ctx context.Context, name string) (*school.Student, error)
	ListStudents(ctx context.Context) ([]*school.Student, error)
	UpdateStudent(ctx context.Context, student *school.Student) error
	DeleteStudent(ctx context.Context, id uuid.UUID) error
}

// AuditRepository persists committed engine decisions.
type AuditRepository interface {
	Create(ctx context.Context, entry *school.AuditEntry) error
	ListRecent(ctx context.Context, limit int) ([]*school.AuditEntry, error)
}

// ReportRepository serves the read models that join across the registration
// graph. Implementations may bypass the ORM for these queries.
type ReportRepository interface {
	Roster(ctx context.Context, gradeID, sectionID uuid.UUID) ([]RosterRow, error)
	Transcript(ctx context.Context, studentID uuid.UUID) ([]TranscriptRow, error)
}

// RosterRow is one assignment in a grade/section roster.
type RosterRow struct {
	AssignmentID uuid.UUID `db:"assignment_id" json:"assignment_id"`
	TeacherName  string    `db:"teacher_name" json:"teacher_name"`
	CourseName   string    `db:"course_name" json:"course_name"`
	GradeName    string    `db:"grade_name" json:"grade_name"`
	SectionName  string    `db:"section_name" json:"section_name"`
	StartTime    string    `db:"start_time" json:"start_time"`
	EndTime      string    `db:"end_time" json:"end_time"`
}

// TranscriptRow is one scored course on a student transcript.
type TranscriptRow struct {
	NoteID      uuid.UUID `db:"note_id" json:"note_id"`
	StudentName string    `db:"student_name" json:"student_name"`
	CourseName  string    `db:"course_name" json:"course_name"`
	TeacherName string    `db:"teacher_name" json:"teacher_name"`
	Score       float64   `db:"score" json:"score"`
	Approved    bool      `db:"approved" json:"approved"`
}
