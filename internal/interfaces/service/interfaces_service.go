package service

import (
	"context"

	"school-api/internal/domain/school"
	infrastructure "school-api/internal/interfaces/infrastructure"

	"github.com/google/uuid"
)

// Request types for the three engine-backed services. Update requests carry
// pointers: nil means "keep the stored value", and the merged view is
// re-validated in full.

type CreateAssignmentRequest struct {
	TeacherID  uuid.UUID `json:"teacher_id" validate:"required"`
	CourseID   uuid.UUID `json:"course_id" validate:"required"`
	GradeID    uuid.UUID `json:"grade_id" validate:"required"`
	SectionID  uuid.UUID `json:"section_id" validate:"required"`
	ScheduleID uuid.UUID `json:"schedule_id" validate:"required"`
}

type UpdateAssignmentRequest struct {
	TeacherID  *uuid.UUID `json:"teacher_id"`
	CourseID   *uuid.UUID `json:"course_id"`
	GradeID    *uuid.UUID `json:"grade_id"`
	SectionID  *uuid.UUID `json:"section_id"`
	ScheduleID *uuid.UUID `json:"schedule_id"`
}

type CreateRegistrationRequest struct {
	StudentID     uuid.UUID   `json:"student_id" validate:"required"`
	GradeID       uuid.UUID   `json:"grade_id" validate:"required"`
	SectionID     uuid.UUID   `json:"section_id" validate:"required"`
	AssignmentIDs []uuid.UUID `json:"assignment_ids" validate:"required,min=1"`
}

type UpdateRegistrationRequest struct {
	StudentID     *uuid.UUID   `json:"student_id"`
	GradeID       *uuid.UUID   `json:"grade_id"`
	SectionID     *uuid.UUID   `json:"section_id"`
	AssignmentIDs *[]uuid.UUID `json:"assignment_ids"`
}

type CreateNoteRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	CourseID  uuid.UUID `json:"course_id" validate:"required"`
	TeacherID uuid.UUID `json:"teacher_id" validate:"required"`
	Score     float64   `json:"score" validate:"gte=0,lte=100"`
}

type UpdateNoteRequest struct {
	StudentID *uuid.UUID `json:"student_id"`
	CourseID  *uuid.UUID `json:"course_id"`
	TeacherID *uuid.UUID `json:"teacher_id"`
	Score     *float64   `json:"score"`
}

type AssignmentService interface {
	Create(ctx context.Context, req *CreateAssignmentRequest) (*school.TeacherCourseAssignment, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateAssignmentRequest) (*school.TeacherCourseAssignment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByTeacher(ctx context.Context, teacherID uuid.UUID) ([]*school.TeacherCourseAssignment, error)
}

type RegistrationService interface {
	Register(ctx context.Context, req *CreateRegistrationRequest) (*school.CourseRegistration, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateRegistrationRequest) (*school.CourseRegistration, error)
	Deregister(ctx context.Context, id uuid.UUID) error
	GetByStudent(ctx context.Context, studentID uuid.UUID) (*school.CourseRegistration, error)
}

type NoteService interface {
	Create(ctx context.Context, req *CreateNoteRequest) (*school.Note, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateNoteRequest) (*school.Note, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByStudent(ctx context.Context, studentID uuid.UUID) ([]*school.Note, error)
}

// AuditService persists audit jobs drained from the queue.
type AuditService interface {
	ProcessAuditJob(ctx context.Context, job infrastructure.AuditJob) error
	ListRecent(ctx context.Context, limit int) ([]*school.AuditEntry, error)
}
