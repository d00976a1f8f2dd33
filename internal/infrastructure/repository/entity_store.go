package repository

import (
	"context"
	"errors"

	"school-api/internal/domain/school"
	"school-api/internal/engine"
	interfaces "school-api/internal/interfaces/infrastructure"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EntityStore implements the engine's read surface and the write operations
// the transaction coordinator commits, backed by GORM. A store bound to a
// transaction (via TxManager) reads transaction-consistent state.
type EntityStore struct {
	db *gorm.DB
}

func NewEntityStore(db *gorm.DB) *EntityStore {
	return &EntityStore{db: db}
}

var _ interfaces.EntityStore = (*EntityStore)(nil)

func (s *EntityStore) GetTeacher(ctx context.Context, id uuid.UUID) (*school.Teacher, error) {
	var teacher school.Teacher
	err := s.db.WithContext(ctx).
		Preload("Specialities").
		Preload("Grades").
		First(&teacher, "teacher_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &teacher, nil
}

func (s *EntityStore) GetCourse(ctx context.Context, id uuid.UUID) (*school.Course, error) {
	var course school.Course
	err := s.db.WithContext(ctx).
		Preload("Speciality").
		First(&course, "course_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

func (s *EntityStore) GetStudent(ctx context.Context, id uuid.UUID) (*school.Student, error) {
	var student school.Student
	err := s.db.WithContext(ctx).First(&student, "student_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}

func (s *EntityStore) GetSchedule(ctx context.Context, id uuid.UUID) (*school.Schedule, error) {
	var schedule school.Schedule
	err := s.db.WithContext(ctx).First(&schedule, "schedule_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

func (s *EntityStore) GetAssignment(ctx context.Context, id uuid.UUID) (*school.TeacherCourseAssignment, error) {
	var assignment school.TeacherCourseAssignment
	err := s.db.WithContext(ctx).
		Preload("Schedule").
		First(&assignment, "assignment_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

func (s *EntityStore) AssignmentsOverlapping(ctx context.Context, teacherID, gradeID, sectionID uuid.UUID, window engine.TimeWindow, excludeID *uuid.UUID) ([]uuid.UUID, error) {
	// Half-open interval test; schedule times are zero-padded HH:MM so string
	// comparison is equivalent to numeric comparison.
	query := s.db.WithContext(ctx).
		Table("teacher_course_assignments AS a").
		Joins("JOIN schedules s ON s.schedule_id = a.schedule_id").
		Where("a.teacher_id = ? AND a.grade_id = ? AND a.section_id = ?", teacherID, gradeID, sectionID).
		Where("s.start_time < ? AND s.end_time > ?", school.FormatClock(window.End), school.FormatClock(window.Start))
	if excludeID != nil {
		query = query.Where("a.assignment_id <> ?", *excludeID)
	}

	var ids []uuid.UUID
	if err := query.Pluck("a.assignment_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *EntityStore) AssignmentExists(ctx context.Context, courseID, gradeID, sectionID, scheduleID uuid.UUID, excludeID *uuid.UUID) (bool, error) {
	query := s.db.WithContext(ctx).
		Model(&school.TeacherCourseAssignment{}).
		Where("course_id = ? AND grade_id = ? AND section_id = ? AND schedule_id = ?",
			courseID, gradeID, sectionID, scheduleID)
	if excludeID != nil {
		query = query.Where("assignment_id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *EntityStore) HasAssignmentsFor(ctx context.Context, gradeID, sectionID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&school.TeacherCourseAssignment{}).
		Where("grade_id = ? AND section_id = ?", gradeID, sectionID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *EntityStore) RegistrationForStudent(ctx context.Context, studentID uuid.UUID) (*school.CourseRegistration, error) {
	var registration school.CourseRegistration
	err := s.db.WithContext(ctx).
		Preload("Assignments").
		Where("student_id = ?", studentID).
		First(&registration).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &registration, nil
}

func (s *EntityStore) RegistrationLinks(ctx context.Context, studentID, courseID, teacherID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Table("course_registrations AS r").
		Joins("JOIN registration_assignments ra ON ra.registration_id = r.registration_id").
		Joins("JOIN teacher_course_assignments a ON a.assignment_id = ra.assignment_id").
		Where("r.student_id = ? AND a.course_id = ? AND a.teacher_id = ?", studentID, courseID, teacherID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *EntityStore) NoteExists(ctx context.Context, studentID, courseID uuid.UUID, excludeID *uuid.UUID) (bool, error) {
	query := s.db.WithContext(ctx).
		Model(&school.Note{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID)
	if excludeID != nil {
		query = query.Where("note_id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *EntityStore) CreateAssignment(ctx context.Context, assignment *school.TeacherCourseAssignment) error {
	return s.db.WithContext(ctx).
		Omit("Teacher", "Course", "Grade", "Section", "Schedule").
		Create(assignment).Error
}

func (s *EntityStore) UpdateAssignment(ctx context.Context, assignment *school.TeacherCourseAssignment) error {
	return s.db.WithContext(ctx).
		Model(assignment).
		Updates(map[string]interface{}{
			"teacher_id":  assignment.TeacherID,
			"course_id":   assignment.CourseID,
			"grade_id":    assignment.GradeID,
			"section_id":  assignment.SectionID,
			"schedule_id": assignment.ScheduleID,
			"updated_at":  assignment.UpdatedAt,
		}).Error
}

func (s *EntityStore) DeleteAssignment(ctx context.Context, id uuid.UUID) error {
	var count int64
	err := s.db.WithContext(ctx).
		Table("registration_assignments").
		Where("assignment_id = ?", id).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return &school.ProtectedReferenceError{Entity: "assignment", EntityID: id, ReferencedBy: "registrations"}
	}
	return s.db.WithContext(ctx).Delete(&school.TeacherCourseAssignment{}, "assignment_id = ?", id).Error
}

func (s *EntityStore) AssignmentsForTeacher(ctx context.Context, teacherID uuid.UUID) ([]*school.TeacherCourseAssignment, error) {
	var assignments []*school.TeacherCourseAssignment
	err := s.db.WithContext(ctx).
		Preload("Course").
		Preload("Grade").
		Preload("Section").
		Preload("Schedule").
		Where("teacher_id = ?", teacherID).
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (s *EntityStore) GetRegistration(ctx context.Context, id uuid.UUID) (*school.CourseRegistration, error) {
	var registration school.CourseRegistration
	err := s.db.WithContext(ctx).
		Preload("Assignments").
		First(&registration, "registration_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &registration, nil
}

func (s *EntityStore) CreateRegistration(ctx context.Context, registration *school.CourseRegistration, assignmentIDs []uuid.UUID) error {
	registration.Assignments = assignmentStubs(assignmentIDs)
	return s.db.WithContext(ctx).
		Omit("Assignments.*", "Student", "Grade", "Section").
		Create(registration).Error
}

func (s *EntityStore) UpdateRegistration(ctx context.Context, registration *school.CourseRegistration, assignmentIDs []uuid.UUID) error {
	err := s.db.WithContext(ctx).
		Model(registration).
		Updates(map[string]interface{}{
			"student_id": registration.StudentID,
			"grade_id":   registration.GradeID,
			"section_id": registration.SectionID,
			"updated_at": registration.UpdatedAt,
		}).Error
	if err != nil {
		return err
	}

	stubs := assignmentStubs(assignmentIDs)
	return s.db.WithContext(ctx).
		Model(registration).
		Omit("Assignments.*").
		Association("Assignments").
		Replace(&stubs)
}

func (s *EntityStore) DeleteRegistration(ctx context.Context, id uuid.UUID) error {
	registration := school.CourseRegistration{RegistrationID: id}
	if err := s.db.WithContext(ctx).Model(&registration).Association("Assignments").Clear(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&registration).Error
}

func (s *EntityStore) GetNote(ctx context.Context, id uuid.UUID) (*school.Note, error) {
	var note school.Note
	err := s.db.WithContext(ctx).First(&note, "note_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

func (s *EntityStore) CreateNote(ctx context.Context, note *school.Note) error {
	return s.db.WithContext(ctx).
		Omit("Student", "Course", "Teacher").
		Create(note).Error
}

func (s *EntityStore) UpdateNote(ctx context.Context, note *school.Note) error {
	return s.db.WithContext(ctx).
		Model(note).
		Updates(map[string]interface{}{
			"student_id": note.StudentID,
			"course_id":  note.CourseID,
			"teacher_id": note.TeacherID,
			"score":      note.Score,
			"approved":   note.Approved,
			"updated_at": note.UpdatedAt,
		}).Error
}

func (s *EntityStore) DeleteNote(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&school.Note{}, "note_id = ?", id).Error
}

func (s *EntityStore) NotesForStudent(ctx context.Context, studentID uuid.UUID) ([]*school.Note, error) {
	var notes []*school.Note
	err := s.db.WithContext(ctx).
		Preload("Course").
		Preload("Teacher").
		Where("student_id = ?", studentID).
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func assignmentStubs(ids []uuid.UUID) []school.TeacherCourseAssignment {
	stubs := make([]school.TeacherCourseAssignment, 0, len(ids))
	for _, id := range ids {
		stubs = append(stubs, school.TeacherCourseAssignment{AssignmentID: id})
	}
	return stubs
}
