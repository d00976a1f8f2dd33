package service

import (
	"context"
	"fmt"
	"time"

	"school-api/internal/domain/school"
	interfaces "school-api/internal/interfaces/infrastructure"
	"school-api/pkg/logger"

	"github.com/google/uuid"
)

const entityDetailsTTL = 8 * time.Hour

// DuplicateNameError rejects a create that would reuse a unique name.
type DuplicateNameError struct {
	Entity string
	Name   string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Entity, e.Name)
}

type CreateTeacherRequest struct {
	Name          string      `json:"name" validate:"required"`
	Phone         string      `json:"phone"`
	SpecialityIDs []uuid.UUID `json:"speciality_ids" validate:"required,min=1"`
	GradeIDs      []uuid.UUID `json:"grade_ids"`
}

type UpdateTeacherRequest struct {
	Name          *string      `json:"name"`
	Phone         *string      `json:"phone"`
	SpecialityIDs *[]uuid.UUID `json:"speciality_ids" validate:"omitempty,min=1"`
	GradeIDs      *[]uuid.UUID `json:"grade_ids"`
}

type CreateCourseRequest struct {
	Name         string    `json:"name" validate:"required"`
	SpecialityID uuid.UUID `json:"speciality_id" validate:"required"`
	Description  *string   `json:"description"`
}

type UpdateCourseRequest struct {
	Name         *string    `json:"name"`
	SpecialityID *uuid.UUID `json:"speciality_id"`
	Description  *string    `json:"description"`
}

type CreateGradeRequest struct {
	Name        string  `json:"name" validate:"required"`
	Code        string  `json:"code" validate:"required"`
	Description *string `json:"description"`
}

type UpdateGradeRequest struct {
	Name        *string `json:"name"`
	Code        *string `json:"code"`
	Description *string `json:"description"`
}

type CreateScheduleRequest struct {
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type CreateStudentRequest struct {
	Name             string     `json:"name" validate:"required"`
	Phone            string     `json:"phone"`
	Birthdate        *time.Time `json:"birthdate"`
	Address          string     `json:"address"`
	EmergencyContact string     `json:"emergency_contact"`
	TutorID          uuid.UUID  `json:"tutor_id" validate:"required"`
}

type UpdateStudentRequest struct {
	Name             *string    `json:"name"`
	Phone            *string    `json:"phone"`
	Birthdate        *time.Time `json:"birthdate"`
	Address          *string    `json:"address"`
	EmergencyContact *string    `json:"emergency_contact"`
	TutorID          *uuid.UUID `json:"tutor_id"`
	Suspended        *bool      `json:"suspended"`
}

// CatalogService manages the supporting records the engine validates
// against. Names are unique case-insensitively; schedule clock values are
// normalized to zero-padded HH:MM before they are stored.
type CatalogService struct {
	catalogRepo  interfaces.CatalogRepository
	cacheService interfaces.CacheService
}

func NewCatalogService(catalogRepo interfaces.CatalogRepository, cacheService interfaces.CacheService) *CatalogService {
	return &CatalogService{
		catalogRepo:  catalogRepo,
		cacheService: cacheService,
	}
}

func (s *CatalogService) CreateSpeciality(ctx context.Context, name string) (*school.Speciality, error) {
	existing, err := s.catalogRepo.GetSpecialityByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("checking speciality name: %w", err)
	}
	if existing != nil {
		return nil, &DuplicateNameError{Entity: "speciality", Name: name}
	}

	speciality := &school.Speciality{Name: name}
	if err := s.catalogRepo.CreateSpeciality(ctx, speciality); err != nil {
		return nil, err
	}
	return speciality, nil
}

func (s *CatalogService) GetSpeciality(ctx context.Context, id uuid.UUID) (*school.Speciality, error) {
	return s.catalogRepo.GetSpeciality(ctx, id)
}

func (s *CatalogService) ListSpecialities(ctx context.Context) ([]*school.Speciality, error) {
	return s.catalogRepo.ListSpecialities(ctx)
}

func (s *CatalogService) DeleteSpeciality(ctx context.Context, id uuid.UUID) error {
	return s.catalogRepo.DeleteSpeciality(ctx, id)
}

func (s *CatalogService) CreateTeacher(ctx context.Context, req *CreateTeacherRequest) (*school.Teacher, error) {
	existing, err := s.catalogRepo.GetTeacherByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("checking teacher name: %w", err)
	}
	if existing != nil {
		return nil, &DuplicateNameError{Entity: "teacher", Name: req.Name}
	}

	teacher := &school.Teacher{Name: req.Name, Phone: req.Phone}
	if err := s.catalogRepo.CreateTeacher(ctx, teacher, req.SpecialityIDs, req.GradeIDs); err != nil {
		return nil, err
	}

	s.cacheEntity(ctx, interfaces.CacheKindTeacher, teacher.TeacherID, teacher)
	return teacher, nil
}

func (s *CatalogService) GetTeacher(ctx context.Context, id uuid.UUID) (*school.Teacher, error) {
	return s.catalogRepo.GetTeacher(ctx, id)
}

func (s *CatalogService) ListTeachers(ctx context.Context) ([]*school.Teacher, error) {
	return s.catalogRepo.ListTeachers(ctx)
}

// UpdateTeacher merges the supplied fields over the stored teacher. A nil id
// slice leaves the corresponding association untouched.
func (s *CatalogService) UpdateTeacher(ctx context.Context, teacher *school.Teacher, req *UpdateTeacherRequest) (*school.Teacher, error) {
	if req.Name != nil {
		teacher.Name = *req.Name
	}
	if req.Phone != nil {
		teacher.Phone = *req.Phone
	}

	var specialityIDs, gradeIDs []uuid.UUID
	if req.SpecialityIDs != nil {
		specialityIDs = *req.SpecialityIDs
		teacher.Specialities = nil
	}
	if req.GradeIDs != nil {
		gradeIDs = *req.GradeIDs
		teacher.Grades = nil
	}

	if err := s.catalogRepo.UpdateTeacher(ctx, teacher, specialityIDs, gradeIDs); err != nil {
		return nil, err
	}
	s.invalidateEntity(ctx, interfaces.CacheKindTeacher, teacher.TeacherID)
	return s.catalogRepo.GetTeacher(ctx, teacher.TeacherID)
}

func (s *CatalogService) DeleteTeacher(ctx context.Context, id uuid.UUID) error {
	if err := s.catalogRepo.DeleteTeacher(ctx, id); err != nil {
		return err
	}
	s.invalidateEntity(ctx, interfaces.CacheKindTeacher, id)
	return nil
}

func (s *CatalogService) CreateCourse(ctx context.Context, req *CreateCourseRequest) (*school.Course, error) {
	existing, err := s.catalogRepo.GetCourseByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("checking course name: %w", err)
	}
	if existing != nil {
		return nil, &DuplicateNameError{Entity: "course", Name: req.Name}
	}

	course := &school.Course{
		Name:         req.Name,
		SpecialityID: req.SpecialityID,
		Description:  req.Description,
	}
	if err := s.catalogRepo.CreateCourse(ctx, course); err != nil {
		return nil, err
	}

	s.cacheEntity(ctx, interfaces.CacheKindCourse, course.CourseID, course)
	return course, nil
}

func (s *CatalogService) GetCourse(ctx context.Context, id uuid.UUID) (*school.Course, error) {
	return s.catalogRepo.GetCourse(ctx, id)
}

func (s *CatalogService) ListCourses(ctx context.Context) ([]*school.Course, error) {
	return s.catalogRepo.ListCourses(ctx)
}

func (s *CatalogService) UpdateCourse(ctx context.Context, course *school.Course, req *UpdateCourseRequest) (*school.Course, error) {
	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.SpecialityID != nil {
		course.SpecialityID = *req.SpecialityID
		course.Speciality = school.Speciality{}
	}
	if req.Description != nil {
		course.Description = req.Description
	}

	if err := s.catalogRepo.UpdateCourse(ctx, course); err != nil {
		return nil, err
	}
	s.invalidateEntity(ctx, interfaces.CacheKindCourse, course.CourseID)
	return s.catalogRepo.GetCourse(ctx, course.CourseID)
}

func (s *CatalogService) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	if err := s.catalogRepo.DeleteCourse(ctx, id); err != nil {
		return err
	}
	s.invalidateEntity(ctx, interfaces.CacheKindCourse, id)
	return nil
}

func (s *CatalogService) CreateGrade(ctx context.Context, req *CreateGradeRequest) (*school.Grade, error) {
	existing, err := s.catalogRepo.GetGradeByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("checking grade name: %w", err)
	}
	if existing != nil {
		return nil, &DuplicateNameError{Entity: "grade", Name: req.Name}
	}
	existing, err = s.catalogRepo.GetGradeByCode(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("checking grade code: %w", err)
	}
	if existing != nil {
		return nil, &DuplicateNameError{Entity: "grade", Name: req.Code}
	}

	grade := &school.Grade{Name: req.Name, Code: req.Code, Description: req.Description}
	if err := s.catalogRepo.CreateGrade(ctx, grade); err != nil {
		return nil, err
	}
	return grade, nil
}

func (s *CatalogService) GetGrade(ctx context.Context, id uuid.UUID) (*school.Grade, error) {
	return s.catalogRepo.GetGrade(ctx, id)
}

func (s *CatalogService) ListGrades(ctx context.Context) ([]*school.Grade, error) {
	return s.catalogRepo.ListGrades(ctx)
}

func (s *CatalogService) UpdateGrade(ctx context.Context, grade *school.Grade, req *UpdateGradeRequest) (*school.Grade, error) {
	if req.Name != nil {
		grade.Name = *req.Name
	}
	if req.Code != nil {
		grade.Code = *req.Code
	}
	if req.Description != nil {
		grade.Description = req.Description
	}

	if err := s.catalogRepo.UpdateGrade(ctx, grade); err != nil {
		return nil, err
	}
	return grade, nil
}

func (s *CatalogService) DeleteGrade(ctx context.Context, id uuid.UUID) error {
	return s.catalogRepo.DeleteGrade(ctx, id)
}

func (s *CatalogService) CreateSection(ctx context.Context, name string) (*school.Section, error) {
	section := &school.Section{Name: name}
	if err := s.catalogRepo.CreateSection(ctx, section); err != nil {
		return nil, err
	}
	return section, nil
}

func (s *CatalogService) GetSection(ctx context.Context, id uuid.UUID) (*school.Section, error) {
	return s.catalogRepo.GetSection(ctx, id)
}

func (s *CatalogService) ListSections(ctx context.Context) ([]*school.Section, error) {
	return s.catalogRepo.ListSections(ctx)
}

func (s *CatalogService) DeleteSection(ctx context.Context, id uuid.UUID) error {
	return s.catalogRepo.DeleteSection(ctx, id)
}

func (s *CatalogService) CreateSchedule(ctx context.Context, req *CreateScheduleRequest) (*school.Schedule, error) {
	start, err := school.ParseClock(req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := school.ParseClock(req.EndTime)
	if err != nil {
		return nil, err
	}
	if start >= end {
		return nil, fmt.Errorf("schedule start %s must be before end %s", req.StartTime, req.EndTime)
	}

	schedule := &school.Schedule{
		StartTime: school.FormatClock(start),
		EndTime:   school.FormatClock(end),
	}
	if err := s.catalogRepo.CreateSchedule(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *CatalogService) ListSchedules(ctx context.Context) ([]*school.Schedule, error) {
	return s.catalogRepo.ListSchedules(ctx)
}

func (s *CatalogService) DeleteSchedule(ctx context.Context, id uuid.UUID) error {
	return s.catalogRepo.DeleteSchedule(ctx, id)
}

func (s *CatalogService) CreateTutor(ctx context.Context, name, phone string) (*school.Tutor, error) {
	tutor := &school.Tutor{Name: name, Phone: phone}
	if err := s.catalogRepo.CreateTutor(ctx, tutor); err != nil {
		return nil, err
	}
	return tutor, nil
}

func (s *CatalogService) ListTutors(ctx context.Context) ([]*school.Tutor, error) {
	return s.catalogRepo.ListTutors(ctx)
}

func (s *CatalogService) DeleteTutor(ctx context.Context, id uuid.UUID) error {
	return s.catalogRepo.DeleteTutor(ctx, id)
}

func (s *CatalogService) CreateStudent(ctx context.Context, req *CreateStudentRequest) (*school.Student, error) {
	existing, err := s.catalogRepo.GetStudentByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("checking student name: %w", err)
	}
	if existing != nil {
		return nil, &DuplicateNameError{Entity: "student", Name: req.Name}
	}

	tutor, err := s.catalogRepo.GetTutor(ctx, req.TutorID)
	if err != nil {
		return nil, fmt.Errorf("loading tutor: %w", err)
	}
	if tutor == nil {
		return nil, fmt.Errorf("tutor %s not found", req.TutorID)
	}

	student := &school.Student{
		Name:             req.Name,
		Phone:            req.Phone,
		Birthdate:        req.Birthdate,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		TutorID:          req.TutorID,
	}
	if err := s.catalogRepo.CreateStudent(ctx, student); err != nil {
		return nil, err
	}

	s.cacheEntity(ctx, interfaces.CacheKindStudent, student.StudentID, student)
	return student, nil
}

func (s *CatalogService) ListStudents(ctx context.Context) ([]*school.Student, error) {
	return s.catalogRepo.ListStudents(ctx)
}

func (s *CatalogService) UpdateStudent(ctx context.Context, student *school.Student, req *UpdateStudentRequest) (*school.Student, error) {
	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.Phone != nil {
		student.Phone = *req.Phone
	}
	if req.Birthdate != nil {
		student.Birthdate = req.Birthdate
	}
	if req.Address != nil {
		student.Address = *req.Address
	}
	if req.EmergencyContact != nil {
		student.EmergencyContact = *req.EmergencyContact
	}
	if req.TutorID != nil {
		student.TutorID = *req.TutorID
	}
	if req.Suspended != nil {
		student.Suspended = *req.Suspended
	}

	if err := s.catalogRepo.UpdateStudent(ctx, student); err != nil {
		return nil, err
	}

	s.invalidateEntity(ctx, interfaces.CacheKindStudent, student.StudentID)
	return student, nil
}

func (s *CatalogService) GetStudent(ctx context.Context, id uuid.UUID) (*school.Student, error) {
	return s.catalogRepo.GetStudent(ctx, id)
}

func (s *CatalogService) GetStudentByName(ctx context.Context, name string) (*school.Student, error) {
	return s.catalogRepo.GetStudentByName(ctx, name)
}

func (s *CatalogService) DeleteStudent(ctx context.Context, id uuid.UUID) error {
	if err := s.catalogRepo.DeleteStudent(ctx, id); err != nil {
		return err
	}
	s.invalidateEntity(ctx, interfaces.CacheKindStudent, id)
	return nil
}

func (s *CatalogService) cacheEntity(ctx context.Context, kind string, id uuid.UUID, data interface{}) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.SetEntity(ctx, kind, id, data, entityDetailsTTL); err != nil {
		logger.Warn("Failed to cache %s %s: %v", kind, id, err)
	}
}

func (s *CatalogService) invalidateEntity(ctx context.Context, kind string, id uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.InvalidateEntity(ctx, kind, id); err != nil {
		logger.Warn("Failed to invalidate cached %s %s: %v", kind, id, err)
	}
}
