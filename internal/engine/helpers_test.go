package engine_test

import (
	"context"

	"school-api/internal/domain/school"
	"school-api/internal/engine"
	"school-api/internal/infrastructure/repository"

	"github.com/google/uuid"
)

// fixture seeds a memory store with a minimal school: two teachers with
// disjoint specialities, a course per speciality, one grade with one section
// and three schedules (two of them overlapping).
type fixture struct {
	store  *repository.MemoryStore
	engine *engine.Engine

	mathsID    uuid.UUID
	languageID uuid.UUID

	juanID  uuid.UUID
	pedroID uuid.UUID

	mathCourseID    uuid.UUID
	spanishCourseID uuid.UUID

	gradeID   uuid.UUID
	sectionID uuid.UUID

	morningID     uuid.UUID
	overlappingID uuid.UUID
	lateID        uuid.UUID

	mariaID uuid.UUID
	diegoID uuid.UUID
}

func newFixture() *fixture {
	store := repository.NewMemoryStore()
	f := &fixture{
		store:      store,
		engine:     engine.New(store),
		mathsID:    uuid.New(),
		languageID: uuid.New(),
		gradeID:    uuid.New(),
		sectionID:  uuid.New(),
	}

	maths := school.Speciality{SpecialityID: f.mathsID, Name: "Mathematics"}
	language := school.Speciality{SpecialityID: f.languageID, Name: "Language"}

	f.juanID = store.AddTeacher(school.Teacher{
		Name:         "Juan",
		Specialities: []school.Speciality{maths},
	})
	f.pedroID = store.AddTeacher(school.Teacher{
		Name:         "Pedro",
		Specialities: []school.Speciality{language},
	})

	f.mathCourseID = store.AddCourse(school.Course{
		Name:         "Mathematics I",
		SpecialityID: f.mathsID,
		Speciality:   maths,
	})
	f.spanishCourseID = store.AddCourse(school.Course{
		Name:         "Spanish I",
		SpecialityID: f.languageID,
		Speciality:   language,
	})

	f.morningID = store.AddSchedule(school.Schedule{StartTime: "07:00", EndTime: "09:00"})
	f.overlappingID = store.AddSchedule(school.Schedule{StartTime: "08:00", EndTime: "10:00"})
	f.lateID = store.AddSchedule(school.Schedule{StartTime: "09:00", EndTime: "11:00"})

	f.mariaID = store.AddStudent(school.Student{Name: "Maria"})
	f.diegoID = store.AddStudent(school.Student{Name: "Diego", Suspended: true})

	return f
}

// commitAssignment validates and stores a candidate, failing loudly on
// rejection so fixtures stay honest.
func (f *fixture) commitAssignment(c engine.AssignmentCandidate) uuid.UUID {
	ctx := context.Background()
	if err := f.engine.ValidateAssignment(ctx, c, nil); err != nil {
		panic("fixture assignment rejected: " + err.Error())
	}
	assignment := &school.TeacherCourseAssignment{
		TeacherID:  c.TeacherID,
		CourseID:   c.CourseID,
		GradeID:    c.GradeID,
		SectionID:  c.SectionID,
		ScheduleID: c.ScheduleID,
	}
	if err := f.store.CreateAssignment(ctx, assignment); err != nil {
		panic("fixture assignment store failed: " + err.Error())
	}
	return assignment.AssignmentID
}

func (f *fixture) commitRegistration(c engine.RegistrationCandidate) uuid.UUID {
	ctx := context.Background()
	if err := f.engine.ValidateRegistration(ctx, c, nil); err != nil {
		panic("fixture registration rejected: " + err.Error())
	}
	registration := &school.CourseRegistration{
		StudentID: c.StudentID,
		GradeID:   c.GradeID,
		SectionID: c.SectionID,
	}
	if err := f.store.CreateRegistration(ctx, registration, c.AssignmentIDs); err != nil {
		panic("fixture registration store failed: " + err.Error())
	}
	return registration.RegistrationID
}

// secondMathsTeacher adds another teacher qualified for mathematics.
func (f *fixture) secondMathsTeacher() uuid.UUID {
	return f.store.AddTeacher(school.Teacher{
		Name:         "Ana",
		Specialities: []school.Speciality{{SpecialityID: f.mathsID, Name: "Mathematics"}},
	})
}

// secondMathsCourse adds another course under the mathematics speciality.
func (f *fixture) secondMathsCourse() uuid.UUID {
	return f.store.AddCourse(school.Course{
		Name:         "Mathematics II",
		SpecialityID: f.mathsID,
		Speciality:   school.Speciality{SpecialityID: f.mathsID, Name: "Mathematics"},
	})
}

func (f *fixture) mathAssignment() engine.AssignmentCandidate {
	return engine.AssignmentCandidate{
		TeacherID:  f.juanID,
		CourseID:   f.mathCourseID,
		GradeID:    f.gradeID,
		SectionID:  f.sectionID,
		ScheduleID: f.morningID,
	}
}
