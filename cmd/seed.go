package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"school-api/internal/domain/school"
	"school-api/internal/infrastructure/repository"
	serviceInterfaces "school-api/internal/interfaces/service"
	"school-api/internal/service"
	"school-api/pkg/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a demonstration dataset",
	Long: `Load a small demonstration dataset into the database:
specialities, teachers, courses, grades, sections, schedules, a tutor,
students, plus one assignment, one registration and one note that all pass
validation. Running it twice reports duplicates instead of failing.`,
	Run: func(cmd *cobra.Command, args []string) {
		runSeed()
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed() {
	db := connectDatabase()
	ctx := context.Background()

	entityStore := repository.NewEntityStore(db)
	txManager := repository.NewTxManager(db)

	// Seeding runs without cache or queue wiring; both are optional.
	catalogService := service.NewCatalogService(repository.NewCatalogRepository(db), nil)
	assignmentService := service.NewAssignmentService(entityStore, txManager, nil, true)
	registrationService := service.NewRegistrationService(entityStore, txManager, nil, true)
	noteService := service.NewNoteService(entityStore, txManager, nil, true)

	fmt.Println("Seeding demonstration data...")

	mathematics := seedSpeciality(ctx, catalogService, "Mathematics")
	language := seedSpeciality(ctx, catalogService, "Language")

	firstGrade, err := catalogService.CreateGrade(ctx, &service.CreateGradeRequest{
		Name: "First Grade",
		Code: "G1",
	})
	if err != nil {
		seedSkip("grade First Grade", err)
		grades, listErr := catalogService.ListGrades(ctx)
		if listErr != nil || len(grades) == 0 {
			fatalSeed("loading grades", listErr)
		}
		firstGrade = grades[0]
	}

	sectionA := seedSection(ctx, catalogService, "A")
	seedSection(ctx, catalogService, "B")

	morning := seedSchedule(ctx, catalogService, "07:00", "09:00")
	seedSchedule(ctx, catalogService, "09:00", "11:00")

	juan := seedTeacher(ctx, catalogService, "Juan Perez", "555-0101",
		[]uuid.UUID{mathematics.SpecialityID}, []uuid.UUID{firstGrade.GradeID})
	seedTeacher(ctx, catalogService, "Lucia Ramos", "555-0102",
		[]uuid.UUID{language.SpecialityID}, []uuid.UUID{firstGrade.GradeID})

	mathCourse := seedCourse(ctx, catalogService, "Mathematics I", mathematics.SpecialityID)
	seedCourse(ctx, catalogService, "Spanish I", language.SpecialityID)

	tutor := seedTutor(ctx, catalogService, "Rosa Diaz", "555-0200")

	birthdate := time.Date(2018, time.March, 12, 0, 0, 0, 0, time.UTC)
	maria := seedStudent(ctx, catalogService, "Maria Lopez", tutor.TutorID, &birthdate)
	seedStudent(ctx, catalogService, "Pedro Gomez", tutor.TutorID, nil)

	assignment, err := assignmentService.Create(ctx, &serviceInterfaces.CreateAssignmentRequest{
		TeacherID:  juan.TeacherID,
		CourseID:   mathCourse.CourseID,
		GradeID:    firstGrade.GradeID,
		SectionID:  sectionA.SectionID,
		ScheduleID: morning.ScheduleID,
	})
	if err != nil {
		seedSkip("assignment Juan/Mathematics I", err)
	} else {
		fmt.Printf("  assignment %s created\n", assignment.AssignmentID)
	}

	if assignment != nil {
		registration, err := registrationService.Register(ctx, &serviceInterfaces.CreateRegistrationRequest{
			StudentID:     maria.StudentID,
			GradeID:       firstGrade.GradeID,
			SectionID:     sectionA.SectionID,
			AssignmentIDs: []uuid.UUID{assignment.AssignmentID},
		})
		if err != nil {
			seedSkip("registration Maria", err)
		} else {
			fmt.Printf("  registration %s created\n", registration.RegistrationID)
		}

		note, err := noteService.Create(ctx, &serviceInterfaces.CreateNoteRequest{
			StudentID: maria.StudentID,
			CourseID:  mathCourse.CourseID,
			TeacherID: juan.TeacherID,
			Score:     85,
		})
		if err != nil {
			seedSkip("note Maria/Mathematics I", err)
		} else {
			fmt.Printf("  note %s created (approved=%t)\n", note.NoteID, note.Approved)
		}
	}

	fmt.Println("Seeding completed!")
}

func seedSpeciality(ctx context.Context, svc *service.CatalogService, name string) *school.Speciality {
	speciality, err := svc.CreateSpeciality(ctx, name)
	if err == nil {
		return speciality
	}
	seedSkip("speciality "+name, err)

	specialities, listErr := svc.ListSpecialities(ctx)
	if listErr != nil {
		fatalSeed("loading specialities", listErr)
	}
	for _, existing := range specialities {
		if existing.Name == name {
			return existing
		}
	}
	fatalSeed("resolving speciality "+name, err)
	return nil
}

func seedSection(ctx context.Context, svc *service.CatalogService, name string) *school.Section {
	sections, err := svc.ListSections(ctx)
	if err != nil {
		fatalSeed("loading sections", err)
	}
	for _, existing := range sections {
		if existing.Name == name {
			return existing
		}
	}

	section, err := svc.CreateSection(ctx, name)
	if err != nil {
		fatalSeed("creating section "+name, err)
	}
	return section
}

func seedSchedule(ctx context.Context, svc *service.CatalogService, start, end string) *school.Schedule {
	schedules, err := svc.ListSchedules(ctx)
	if err != nil {
		fatalSeed("loading schedules", err)
	}
	for _, existing := range schedules {
		if existing.StartTime == start && existing.EndTime == end {
			return existing
		}
	}

	schedule, err := svc.CreateSchedule(ctx, &service.CreateScheduleRequest{
		StartTime: start,
		EndTime:   end,
	})
	if err != nil {
		fatalSeed(fmt.Sprintf("creating schedule %s-%s", start, end), err)
	}
	return schedule
}

func seedTutor(ctx context.Context, svc *service.CatalogService, name, phone string) *school.Tutor {
	tutors, err := svc.ListTutors(ctx)
	if err != nil {
		fatalSeed("loading tutors", err)
	}
	for _, existing := range tutors {
		if existing.Name == name {
			return existing
		}
	}

	tutor, err := svc.CreateTutor(ctx, name, phone)
	if err != nil {
		fatalSeed("creating tutor "+name, err)
	}
	return tutor
}

func seedTeacher(ctx context.Context, svc *service.CatalogService, name, phone string, specialityIDs, gradeIDs []uuid.UUID) *school.Teacher {
	teacher, err := svc.CreateTeacher(ctx, &service.CreateTeacherRequest{
		Name:          name,
		Phone:         phone,
		SpecialityIDs: specialityIDs,
		GradeIDs:      gradeIDs,
	})
	if err == nil {
		return teacher
	}
	seedSkip("teacher "+name, err)

	teachers, listErr := svc.ListTeachers(ctx)
	if listErr != nil {
		fatalSeed("loading teachers", listErr)
	}
	for _, existing := range teachers {
		if existing.Name == name {
			return existing
		}
	}
	fatalSeed("resolving teacher "+name, err)
	return nil
}

func seedCourse(ctx context.Context, svc *service.CatalogService, name string, specialityID uuid.UUID) *school.Course {
	course, err := svc.CreateCourse(ctx, &service.CreateCourseRequest{
		Name:         name,
		SpecialityID: specialityID,
	})
	if err == nil {
		return course
	}
	seedSkip("course "+name, err)

	courses, listErr := svc.ListCourses(ctx)
	if listErr != nil {
		fatalSeed("loading courses", listErr)
	}
	for _, existing := range courses {
		if existing.Name == name {
			return existing
		}
	}
	fatalSeed("resolving course "+name, err)
	return nil
}

func seedStudent(ctx context.Context, svc *service.CatalogService, name string, tutorID uuid.UUID, birthdate *time.Time) *school.Student {
	student, err := svc.CreateStudent(ctx, &service.CreateStudentRequest{
		Name:      name,
		TutorID:   tutorID,
		Birthdate: birthdate,
	})
	if err == nil {
		return student
	}
	seedSkip("student "+name, err)

	existing, lookupErr := svc.GetStudentByName(ctx, name)
	if lookupErr != nil || existing == nil {
		fatalSeed("resolving student "+name, err)
	}
	return existing
}

func seedSkip(what string, err error) {
	fmt.Printf("  skipping %s: %v\n", what, err)
}

func fatalSeed(what string, err error) {
	logger.Error("Seed failed while %s: %v", what, err)
	os.Exit(1)
}
