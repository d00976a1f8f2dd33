package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"school-api/internal/domain/school"
	interfaces "school-api/internal/interfaces/infrastructure"
	"school-api/internal/service"

	"github.com/google/uuid"
)

// catalogFake keeps the supporting records in maps. It mirrors the GORM
// repository's association semantics: a nil id slice on UpdateTeacher leaves
// the stored associations untouched.
type catalogFake struct {
	specialities map[uuid.UUID]*school.Speciality
	teachers     map[uuid.UUID]*school.Teacher
	courses      map[uuid.UUID]*school.Course
	grades       map[uuid.UUID]*school.Grade
	sections     map[uuid.UUID]*school.Section
	schedules    map[uuid.UUID]*school.Schedule
	tutors       map[uuid.UUID]*school.Tutor
	students     map[uuid.UUID]*school.Student
}

var _ interfaces.CatalogRepository = (*catalogFake)(nil)

func newCatalogFake() *catalogFake {
	return &catalogFake{
		specialities: make(map[uuid.UUID]*school.Speciality),
		teachers:     make(map[uuid.UUID]*school.Teacher),
		courses:      make(map[uuid.UUID]*school.Course),
		grades:       make(map[uuid.UUID]*school.Grade),
		sections:     make(map[uuid.UUID]*school.Section),
		schedules:    make(map[uuid.UUID]*school.Schedule),
		tutors:       make(map[uuid.UUID]*school.Tutor),
		students:     make(map[uuid.UUID]*school.Student),
	}
}

func (f *catalogFake) CreateSpeciality(ctx context.Context, speciality *school.Speciality) error {
	speciality.SpecialityID = uuid.New()
	stored := *speciality
	f.specialities[speciality.SpecialityID] = &stored
	return nil
}

func (f *catalogFake) GetSpeciality(ctx context.Context, id uuid.UUID) (*school.Speciality, error) {
	stored, ok := f.specialities[id]
	if !ok {
		return nil, nil
	}
	cp := *stored
	return &cp, nil
}

func (f *catalogFake) GetSpecialityByName(ctx context.Context, name string) (*school.Speciality, error) {
	for _, s := range f.specialities {
		if strings.EqualFold(s.Name, name) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *catalogFake) ListSpecialities(ctx context.Context) ([]*school.Speciality, error) {
	out := make([]*school.Speciality, 0, len(f.specialities))
	for _, s := range f.specialities {
		out = append(out, s)
	}
	return out, nil
}

func (f *catalogFake) DeleteSpeciality(ctx context.Context, id uuid.UUID) error {
	delete(f.specialities, id)
	return nil
}

func (f *catalogFake) CreateTeacher(ctx context.Context, teacher *school.Teacher, specialityIDs, gradeIDs []uuid.UUID) error {
	teacher.TeacherID = uuid.New()
	teacher.Specialities = specialityRefs(specialityIDs)
	teacher.Grades = gradeRefs(gradeIDs)
	stored := *teacher
	f.teachers[teacher.TeacherID] = &stored
	return nil
}

func (f *catalogFake) GetTeacher(ctx context.Context, id uuid.UUID) (*school.Teacher, error) {
	stored, ok := f.teachers[id]
	if !ok {
		return nil, nil
	}
	cp := *stored
	return &cp, nil
}

func (f *catalogFake) GetTeacherByName(ctx context.Context, name string) (*school.Teacher, error) {
	for _, t := range f.teachers {
		if strings.EqualFold(t.Name, name) {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *catalogFake) ListTeachers(ctx context.Context) ([]*school.Teacher, error) {
	out := make([]*school.Teacher, 0, len(f.teachers))
	for _, t := range f.teachers {
		out = append(out, t)
	}
	return out, nil
}

func (f *catalogFake) UpdateTeacher(ctx context.Context, teacher *school.Teacher, specialityIDs, gradeIDs []uuid.UUID) error {
	stored, ok := f.teachers[teacher.TeacherID]
	if !ok {
		return errors.New("teacher not found")
	}
	stored.Name = teacher.Name
	stored.Phone = teacher.Phone
	if specialityIDs != nil {
		stored.Specialities = specialityRefs(specialityIDs)
	}
	if gradeIDs != nil {
		stored.Grades = gradeRefs(gradeIDs)
	}
	return nil
}

func (f *catalogFake) DeleteTeacher(ctx context.Context, id uuid.UUID) error {
	delete(f.teachers, id)
	return nil
}

func (f *catalogFake) CreateCourse(ctx context.Context, course *school.Course) error {
	course.CourseID = uuid.New()
	stored := *course
	f.courses[course.CourseID] = &stored
	return nil
}

func (f *catalogFake) GetCourse(ctx context.Context, id uuid.UUID) (*school.Course, error) {
	stored, ok := f.courses[id]
	if !ok {
		return nil, nil
	}
	cp := *stored
	return &cp, nil
}

func (f *catalogFake) GetCourseByName(ctx context.Context, name string) (*school.Course, error) {
	for _, c := range f.courses {
		if strings.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *catalogFake) ListCourses(ctx context.Context) ([]*school.Course, error) {
	out := make([]*school.Course, 0, len(f.courses))
	for _, c := range f.courses {
		out = append(out, c)
	}
	return out, nil
}

func (f *catalogFake) UpdateCourse(ctx context.Context, course *school.Course) error {
	stored, ok := f.courses[course.CourseID]
	if !ok {
		return errors.New("course not found")
	}
	stored.Name = course.Name
	stored.SpecialityID = course.SpecialityID
	stored.Description = course.Description
	return nil
}

func (f *catalogFake) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	delete(f.courses, id)
	return nil
}

func (f *catalogFake) CreateGrade(ctx context.Context, grade *school.Grade) error {
	grade.GradeID = uuid.New()
	stored := *grade
	f.grades[grade.GradeID] = &stored
	return nil
}

func (f *catalogFake) GetGrade(ctx context.Context, id uuid.UUID) (*school.Grade, error) {
	stored, ok := f.grades[id]
	if !ok {
		return nil, nil
	}
	cp := *stored
	return &cp, nil
}

func (f *catalogFake) GetGradeByName(ctx context.Context, name string) (*school.Grade, error) {
	for _, g := range f.grades {
		if strings.EqualFold(g.Name, name) {
			cp := *g
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *catalogFake) GetGradeByCode(ctx context.Context, code string) (*school.Grade, error) {
	for _, g := range f.grades {
		if strings.EqualFold(g.Code, code) {
			cp := *g
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *catalogFake) ListGrades(ctx context.Context) ([]*school.Grade, error) {
	out := make([]*school.Grade, 0, len(f.grades))
	for _, g := range f.grades {
		out = append(out, g)
	}
	return out, nil
}

func (f *catalogFake) UpdateGrade(ctx context.Context, grade *school.Grade) error {
	stored, ok := f.grades[grade.GradeID]
	if !ok {
		return errors.New("grade not found")
	}
	stored.Name = grade.Name
	stored.Code = grade.Code
	stored.Description = grade.Description
	return nil
}

func (f *catalogFake) DeleteGrade(ctx context.Context, id uuid.UUID) error {
	delete(f.grades, id)
	return nil
}

func (f *catalogFake) CreateSection(ctx context.Context, section *school.Section) error {
	section.SectionID = uuid.New()
	stored := *section
	f.sections[section.SectionID] = &stored
	return nil
}

func (f *catalogFake) GetSection(ctx context.Context, id uuid.UUID) (*school.Section, error) {
	stored, ok := f.sections[id]
	if !ok {
		return nil, nil
	}
	cp := *stored
	return &cp, nil
}

func (f *catalogFake) ListSections(ctx context.Context) ([]*school.Section, error) {
	out := make([]*school.Section, 0, len(f.sections))
	for _, s := range f.sections {
		out = append(out, s)
	}
	return out, nil
}

func (f *catalogFake) DeleteSection(ctx context.Context, id uuid.UUID) error {
	delete(f.sections, id)
	return nil
}

func (f *catalogFake) CreateSchedule(ctx context.Context, schedule *school.Schedule) error {
	schedule.ScheduleID = uuid.New()
	stored := *schedule
	f.schedules[schedule.ScheduleID] = &stored
	return nil
}

func (f *catalogFake) ListSchedules(ctx context.Context) ([]*school.Schedule, error) {
	out := make([]*school.Schedule, 0, len(f.schedules))
	for _, s := range f.schedules {
		out = append(out, s)
	}
	return out, nil
}

func (f *catalogFake) DeleteSchedule(ctx context.Context, id uuid.UUID) error {
	delete(f.schedules, id)
	return nil
}

func (f *catalogFake) CreateTutor(ctx context.Context, tutor *school.Tutor) error {
	tutor.TutorID = uuid.New()
	stored := *tutor
	f.tutors[tutor.TutorID] = &stored
	return nil
}

func (f *catalogFake) GetTutor(ctx context.Context, id uuid.UUID) (*school.Tutor, error) {
	stored, ok := f.tutors[id]
	if !ok {
		return nil, nil
	}
	cp := *stored
	return &cp, nil
}

func (f *catalogFake) ListTutors(ctx context.Context) ([]*school.Tutor, error) {
	out := make([]*school.Tutor, 0, len(f.tutors))
	for _, t := range f.tutors {
		out = append(out, t)
	}
	return out, nil
}

func (f *catalogFake) DeleteTutor(ctx context.Context, id uuid.UUID) error {
	delete(f.tutors, id)
	return nil
}

func (f *catalogFake) CreateStudent(ctx context.Context, student *school.Student) error {
	student.StudentID = uuid.New()
	stored := *student
	f.students[student.StudentID] = &stored
	return nil
}

func (f *catalogFake) GetStudent(ctx context.Context, id uuid.UUID) (*school.Student, error) {
	stored, ok := f.students[id]
	if !ok {
		return nil, nil
	}
	cp := *stored
	return &cp, nil
}

func (f *catalogFake) GetStudentByName(ctx context.Context, name string) (*school.Student, error) {
	for _, s := range f.students {
		if strings.EqualFold(s.Name, name) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *catalogFake) ListStudents(ctx context.Context) ([]*school.Student, error) {
	out := make([]*school.Student, 0, len(f.students))
	for _, s := range f.students {
		out = append(out, s)
	}
	return out, nil
}

func (f *catalogFake) UpdateStudent(ctx context.Context, student *school.Student) error {
	stored, ok := f.students[student.StudentID]
	if !ok {
		return errors.New("student not found")
	}
	*stored = *student
	return nil
}

func (f *catalogFake) DeleteStudent(ctx context.Context, id uuid.UUID) error {
	delete(f.students, id)
	return nil
}

func specialityRefs(ids []uuid.UUID) []school.Speciality {
	refs := make([]school.Speciality, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, school.Speciality{SpecialityID: id})
	}
	return refs
}

func gradeRefs(ids []uuid.UUID) []school.Grade {
	refs := make([]school.Grade, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, school.Grade{GradeID: id})
	}
	return refs
}

func newCatalogService() (*service.CatalogService, *catalogFake) {
	fake := newCatalogFake()
	return service.NewCatalogService(fake, nil), fake
}

func TestCreateTeacherRejectsDuplicateName(t *testing.T) {
	svc, _ := newCatalogService()
	ctx := context.Background()

	req := &service.CreateTeacherRequest{
		Name:          "Juan Perez",
		SpecialityIDs: []uuid.UUID{uuid.New()},
	}
	if _, err := svc.CreateTeacher(ctx, req); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.CreateTeacher(ctx, &service.CreateTeacherRequest{
		Name:          "juan perez",
		SpecialityIDs: []uuid.UUID{uuid.New()},
	})
	var dup *service.DuplicateNameError
	if !errors.As(err, &dup) {
		t.Fatalf("expected duplicate name error, got %v", err)
	}
}

func TestUpdateTeacherMergesMissingFields(t *testing.T) {
	svc, _ := newCatalogService()
	ctx := context.Background()

	mathsID := uuid.New()
	created, err := svc.CreateTeacher(ctx, &service.CreateTeacherRequest{
		Name:          "Juan Perez",
		Phone:         "111",
		SpecialityIDs: []uuid.UUID{mathsID},
	})
	if err != nil {
		t.Fatalf("creating teacher: %v", err)
	}

	phone := "222"
	updated, err := svc.UpdateTeacher(ctx, created, &service.UpdateTeacherRequest{Phone: &phone})
	if err != nil {
		t.Fatalf("updating teacher: %v", err)
	}

	if updated.Name != "Juan Perez" {
		t.Errorf("name should survive a phone-only update, got %q", updated.Name)
	}
	if updated.Phone != "222" {
		t.Errorf("expected phone 222, got %q", updated.Phone)
	}
	if len(updated.Specialities) != 1 || updated.Specialities[0].SpecialityID != mathsID {
		t.Errorf("specialities should survive a phone-only update, got %v", updated.Specialities)
	}
}

func TestUpdateTeacherReplacesSpecialities(t *testing.T) {
	svc, _ := newCatalogService()
	ctx := context.Background()

	created, err := svc.CreateTeacher(ctx, &service.CreateTeacherRequest{
		Name:          "Juan Perez",
		SpecialityIDs: []uuid.UUID{uuid.New()},
	})
	if err != nil {
		t.Fatalf("creating teacher: %v", err)
	}

	languageID := uuid.New()
	ids := []uuid.UUID{languageID}
	updated, err := svc.UpdateTeacher(ctx, created, &service.UpdateTeacherRequest{SpecialityIDs: &ids})
	if err != nil {
		t.Fatalf("updating teacher: %v", err)
	}

	if len(updated.Specialities) != 1 || updated.Specialities[0].SpecialityID != languageID {
		t.Errorf("expected specialities replaced with %s, got %v", languageID, updated.Specialities)
	}
}

func TestUpdateCourseMergesMissingFields(t *testing.T) {
	svc, _ := newCatalogService()
	ctx := context.Background()

	mathsID := uuid.New()
	created, err := svc.CreateCourse(ctx, &service.CreateCourseRequest{
		Name:         "Mathematics I",
		SpecialityID: mathsID,
	})
	if err != nil {
		t.Fatalf("creating course: %v", err)
	}

	name := "Mathematics II"
	updated, err := svc.UpdateCourse(ctx, created, &service.UpdateCourseRequest{Name: &name})
	if err != nil {
		t.Fatalf("updating course: %v", err)
	}

	if updated.Name != "Mathematics II" {
		t.Errorf("expected renamed course, got %q", updated.Name)
	}
	if updated.SpecialityID != mathsID {
		t.Errorf("speciality should survive a name-only update, got %s", updated.SpecialityID)
	}
}

func TestUpdateGradeMergesMissingFields(t *testing.T) {
	svc, _ := newCatalogService()
	ctx := context.Background()

	created, err := svc.CreateGrade(ctx, &service.CreateGradeRequest{Name: "First Grade", Code: "G1"})
	if err != nil {
		t.Fatalf("creating grade: %v", err)
	}

	code := "1B"
	updated, err := svc.UpdateGrade(ctx, created, &service.UpdateGradeRequest{Code: &code})
	if err != nil {
		t.Fatalf("updating grade: %v", err)
	}

	if updated.Code != "1B" {
		t.Errorf("expected code 1B, got %q", updated.Code)
	}
	if updated.Name != "First Grade" {
		t.Errorf("name should survive a code-only update, got %q", updated.Name)
	}
}

func TestCreateScheduleNormalizesClock(t *testing.T) {
	svc, _ := newCatalogService()
	ctx := context.Background()

	schedule, err := svc.CreateSchedule(ctx, &service.CreateScheduleRequest{
		StartTime: "7:00",
		EndTime:   "9:5",
	})
	if err != nil {
		t.Fatalf("creating schedule: %v", err)
	}
	if schedule.StartTime != "07:00" || schedule.EndTime != "09:05" {
		t.Errorf("expected zero-padded times, got %s-%s", schedule.StartTime, schedule.EndTime)
	}

	_, err = svc.CreateSchedule(ctx, &service.CreateScheduleRequest{
		StartTime: "09:00",
		EndTime:   "09:00",
	})
	if err == nil {
		t.Fatal("expected an empty window to be rejected")
	}
}

func TestGetTeacherMissingReturnsNil(t *testing.T) {
	svc, _ := newCatalogService()

	teacher, err := svc.GetTeacher(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if teacher != nil {
		t.Fatalf("expected nil for an unknown teacher, got %+v", teacher)
	}
}
