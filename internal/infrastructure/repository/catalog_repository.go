package repository

import (
	"context"
	"errors"

	"school-api/internal/domain/school"
	interfaces "school-api/internal/interfaces/infrastructure"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogRepository implements CRUD over the supporting records using GORM.
// Every delete runs a protect-on-delete check before removing the row.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

var _ interfaces.CatalogRepository = (*CatalogRepository)(nil)

func (r *CatalogRepository) firstOrNil(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	err := r.db.WithContext(ctx).First(dest, append([]interface{}{query}, args...)...).Error
	return err
}

func (r *CatalogRepository) protect(count int64, err error, entity string, id uuid.UUID, referencedBy string) error {
	if err != nil {
		return err
	}
	if count > 0 {
		return &school.ProtectedReferenceError{Entity: entity, EntityID: id, ReferencedBy: referencedBy}
	}
	return nil
}

// Specialities

func (r *CatalogRepository) CreateSpeciality(ctx context.Context, speciality *school.Speciality) error {
	return r.db.WithContext(ctx).Create(speciality).Error
}

func (r *CatalogRepository) GetSpeciality(ctx context.Context, id uuid.UUID) (*school.Speciality, error) {
	var speciality school.Speciality
	if err := r.firstOrNil(ctx, &speciality, "speciality_id = ?", id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &speciality, nil
}

func (r *CatalogRepository) GetSpecialityByName(ctx context.Context, name string) (*school.Speciality, error) {
	var speciality school.Speciality
	if err := r.firstOrNil(ctx, &speciality, "LOWER(name) = LOWER(?)", name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &speciality, nil
}

func (r *CatalogRepository) ListSpecialities(ctx context.Context) ([]*school.Speciality, error) {
	var specialities []*school.Speciality
	if err := r.db.WithContext(ctx).Order("name").Find(&specialities).Error; err != nil {
		return nil, err
	}
	return specialities, nil
}

func (r *CatalogRepository) DeleteSpeciality(ctx context.Context, id uuid.UUID) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&school.Course{}).Where("speciality_id = ?", id).Count(&count).Error
	if err := r.protect(count, err, "speciality", id, "courses"); err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Table("teacher_specialities").Where("speciality_id = ?", id).Count(&count).Error
	if err := r.protect(count, err, "speciality", id, "teachers"); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&school.Speciality{}, "speciality_id = ?", id).Error
}

// Teachers

func (r *CatalogRepository) CreateTeacher(ctx context.Context, teacher *school.Teacher, specialityIDs, gradeIDs []uuid.UUID) error {
	teacher.Specialities = specialityStubs(specialityIDs)
	teacher.Grades = gradeStubs(gradeIDs)
	return r.db.WithContext(ctx).
		Omit("Specialities.*", "Grades.*").
		Create(teacher).Error
}

func (r *CatalogRepository) GetTeacher(ctx context.Context, id uuid.UUID) (*school.Teacher, error) {
	var teacher school.Teacher
	err := r.db.WithContext(ctx).
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

func (r *CatalogRepository) GetTeacherByName(ctx context.Context, name string) (*school.Teacher, error) {
	var teacher school.Teacher
	err := r.db.WithContext(ctx).
		Preload("Specialities").
		First(&teacher, "LOWER(name) = LOWER(?)", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &teacher, nil
}

func (r *CatalogRepository) ListTeachers(ctx context.Context) ([]*school.Teacher, error) {
	var teachers []*school.Teacher
	err := r.db.WithContext(ctx).
		Preload("Specialities").
		Preload("Grades").
		Order("name").
		Find(&teachers).Error
	if err != nil {
		return nil, err
	}
	return teachers, nil
}

func (r *CatalogRepository) UpdateTeacher(ctx context.Context, teacher *school.Teacher, specialityIDs, gradeIDs []uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Model(teacher).
		Updates(map[string]interface{}{
			"name":       teacher.Name,
			"phone":      teacher.Phone,
			"updated_at": teacher.UpdatedAt,
		}).Error
	if err != nil {
		return err
	}
	if specialityIDs != nil {
		stubs := specialityStubs(specialityIDs)
		if err := r.db.WithContext(ctx).Model(teacher).Omit("Specialities.*").Association("Specialities").Replace(&stubs); err != nil {
			return err
		}
	}
	if gradeIDs != nil {
		stubs := gradeStubs(gradeIDs)
		if err := r.db.WithContext(ctx).Model(teacher).Omit("Grades.*").Association("Grades").Replace(&stubs); err != nil {
			return err
		}
	}
	return nil
}

func (r *CatalogRepository) DeleteTeacher(ctx context.Context, id uuid.UUID) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&school.TeacherCourseAssignment{}).Where("teacher_id = ?", id).Count(&count).Error
	if err := r.protect(count, err, "teacher", id, "assignments"); err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Model(&school.Note{}).Where("teacher_id = ?", id).Count(&count).Error
	if err := r.protect(count, err, "teacher", id, "notes"); err != nil {
		return err
	}
	teacher := school.Teacher{TeacherID: id}
	if err := r.db.WithContext(ctx).Model(&teacher).Association("Specialities").Clear(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Model(&teacher).Association("Grades").Clear(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&teacher).Error
}

// Courses

func (r *CatalogRepository) CreateCourse(ctx context.Context, course *school.Course) error {
	return r.db.WithContext(ctx).Omit("Speciality").Create(course).Error
}

func (r *CatalogRepository) GetCourse(ctx context.Context, id uuid.UUID) (*school.Course, error) {
	var course school.Course
	err := r.db.WithContext(ctx).
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

func (r *CatalogRepository) GetCourseByName(ctx context.Context, name string) (*school.Course, error) {
	var course school.Course
	err := r.db.WithContext(ctx).
		Preload("Speciality").
		First(&course, "LOWER(name) = LOWER(?)", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

func (r *CatalogRepository) ListCourses(ctx context.Context) ([]*school.Course, error) {
	var courses []*school.Course
	err := r.db.WithContext(ctx).
		Preload("Speciality").
		Order("name").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *CatalogRepository) UpdateCourse(ctx context.Context, course *school.Course) error {
	return r.db.WithContext(ctx).
		Model(course).
		Updates(map[string]interface{}{
			"name":          course.Name,
			"speciality_id": course.SpecialityID,
			"description":   course.Description,
			"updated_at":    course.UpdatedAt,
		}).Error
}

func (r *CatalogRepository) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&school.TeacherCourseAssignment{}).Where("course_id = ?", id).Count(&count).Error
	if err := r.protect(count, err, "course", id, "assignments"); err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Model(&school.Note{}).Where("course_id = ?", id).Count(&count).Error
	if err := r.protect(count, err, "course", id, "notes"); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&school.Course{}, "course_id = ?", id).Error
}

// Grades

func (r *CatalogRepository) CreateGrade(ctx context.Context, grade *school.Grade) error {
	return r.db.WithContext(ctx).Create(grade).Error
}

func (r *CatalogRepository) GetGrade(ctx context.Context, id uuid.UUID) (*school.Grade, error) {
	var grade school.Grade
	if err := r.firstOrNil(ctx, &grade, "grade_id = ?", id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &grade, nil
}

func (r *CatalogRepository) GetGradeByName(ctx context.Context, name string) (*school.Grade, error) {
	var grade school.Grade
	if err := r.firstOrNil(ctx, &grade, "LOWER(name) = LOWER(?)", name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &grade, nil
}

func (r *CatalogRepository) GetGradeByCode(ctx context.Context, code string) (*school.Grade, error) {
	var grade school.Grade
	if err := r.firstOrNil(ctx, &grade, "LOWER(code) = LOWER(?)", code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &grade, nil
}

func (r *CatalogRepository) ListGrades(ctx context.Context) ([]*school.Grade, error) {
	var grades []*school.Grade
	if err := r.db.WithContext(ctx).Order("code").Find(&grades).Error; err != nil {
		return nil, err
	}
	return grades, nil
}

func (r *CatalogRepository) UpdateGrade(ctx context.Context, grade *school.Grade) error {
	return r.db.WithContext(ctx).
		Model(grade).
		Updates(map[string]interface{}{
			"name":        grade.Name,
			"code":        grade.Code,
			"description": grade.Description,
			"updated_at":  grade.UpdatedAt,
		}).Error
}

func (r *CatalogRepository) DeleteGrade(ctx context.Context, id uuid.UUID) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&school.TeacherCourseAssignment{}).Where("grade_id = ?", id).Count(&count).Error
	if err := r.protect(count, err, "grade", id, "assignments"); err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Model(&school.CourseRegistration{}).Where("grade_id = ?", id).Count(&count).Error
	if err := r.protect(count, err, "grade", id, "registrations"); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&school.Grade{}, "grade_id = ?", id).Error
}

// Sections

func (r *CatalogRepository) CreateSection(ctx context.Context, section *school.Section) error {
	return r.db.WithContext(ctx).Create(section).Error
}

func (r *CatalogRepository) GetSection(ctx context.Context, id uuid.UUID) (*school.Section, error) {
	var section school.Section
	if err := r.firstOrNil(ctx, &section, "section_id = ?", id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &section, nil
}

func (r *CatalogRepository) ListSections(ctx context.Context) ([]*school.Section, error) {
	var sections []*school.Section
	if err := r.db.WithContext(ctx).Order("name").Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *CatalogRepository) DeleteSection(ctx context.Context, id uuid.UUID) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&school.TeacherCourseAssignment{}).Where("section_id = ?", id).Count(&count).Error
	if err := r.protect(count, err, "section", id, "assignments"); err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Model(&school.CourseRegistration{}).Where("section_id = ?", id).Count(&count).Error
	if err := r.protect(count, err, "section", id, "registrations"); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&school.Section{}, "section_id = ?", id).Error
}

// Schedules

func (r *CatalogRepository) CreateSchedule(ctx context.Context, schedule *school.Schedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *CatalogRepository) ListSchedules(ctx context.Context) ([]*school.Schedule, error) {
	var schedules []*school.Schedule
	if err := r.db.WithContext(ctx).Order("start_time").Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *CatalogRepository) DeleteSchedule(ctx context.Context, id uuid.UUID) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&school.TeacherCourseAssignment{}).Where("schedule_id = ?", id).Count(&count).Error
	if err := r.protect(count, err, "schedule", id, "assignments"); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&school.Schedule{}, "schedule_id = ?", id).Error
}

// Tutors

func (r *CatalogRepository) CreateTutor(ctx context.Context, tutor *school.Tutor) error {
	return r.db.WithContext(ctx).Create(tutor).Error
}

func (r *CatalogRepository) GetTutor(ctx context.Context, id uuid.UUID) (*school.Tutor, error) {
	var tutor school.Tutor
	if err := r.firstOrNil(ctx, &tutor, "tutor_id = ?", id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tutor, nil
}

func (r *CatalogRepository) ListTutors(ctx context.Context) ([]*school.Tutor, error) {
	var tutors []*school.Tutor
	if err := r.db.WithContext(ctx).Order("name").Find(&tutors).Error; err != nil {
		return nil, err
	}
	return tutors, nil
}

func (r *CatalogRepository) DeleteTutor(ctx context.Context, id uuid.UUID) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&school.Student{}).Where("tutor_id = ?", id).Count(&count).Error
	if err := r.protect(count, err, "tutor", id, "students"); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&school.Tutor{}, "tutor_id = ?", id).Error
}

// Students

func (r *CatalogRepository) CreateStudent(ctx context.Context, student *school.Student) error {
	return r.db.WithContext(ctx).Omit("Tutor").Create(student).Error
}

func (r *CatalogRepository) GetStudent(ctx context.Context, id uuid.UUID) (*school.Student, error) {
	var student school.Student
	err := r.db.WithContext(ctx).
		Preload("Tutor").
		First(&student, "student_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}

func (r *CatalogRepository) GetStudentByName(ctx context.Context, name string) (*school.Student, error) {
	var student school.Student
	if err := r.firstOrNil(ctx, &student, "LOWER(name) = LOWER(?)", name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}

func (r *CatalogRepository) ListStudents(ctx context.Context) ([]*school.Student, error) {
	var students []*school.Student
	err := r.db.WithContext(ctx).
		Preload("Tutor").
		Order("name").
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}

func (r *CatalogRepository) UpdateStudent(ctx context.Context, student *school.Student) error {
	return r.db.WithContext(ctx).
		Model(student).
		Updates(map[string]interface{}{
			"name":              student.Name,
			"phone":             student.Phone,
			"birthdate":         student.Birthdate,
			"address":           student.Address,
			"emergency_contact": student.EmergencyContact,
			"tutor_id":          student.TutorID,
			"suspended":         student.Suspended,
			"updated_at":        student.UpdatedAt,
		}).Error
}

func (r *CatalogRepository) DeleteStudent(ctx context.Context, id uuid.UUID) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&school.CourseRegistration{}).Where("student_id = ?", id).Count(&count).Error
	if err := r.protect(count, err, "student", id, "registrations"); err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Model(&school.Note{}).Where("student_id = ?", id).Count(&count).Error
	if err := r.protect(count, err, "student", id, "notes"); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&school.Student{}, "student_id = ?", id).Error
}

func specialityStubs(ids []uuid.UUID) []school.Speciality {
	stubs := make([]school.Speciality, 0, len(ids))
	for _, id := range ids {
		stubs = append(stubs, school.Speciality{SpecialityID: id})
	}
	return stubs
}

func gradeStubs(ids []uuid.UUID) []school.Grade {
	stubs := make([]school.Grade, 0, len(ids))
	for _, id := range ids {
		stubs = append(stubs, school.Grade{GradeID: id})
	}
	return stubs
}
