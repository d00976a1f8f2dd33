package service_test

import (
	"context"
	"sync"

	"school-api/internal/domain/school"
	"school-api/internal/infrastructure/repository"
	interfaces "school-api/internal/interfaces/infrastructure"
	"school-api/internal/service"

	"github.com/google/uuid"
)

// recordingQueue captures enqueued audit jobs instead of running workers.
type recordingQueue struct {
	mu   sync.Mutex
	jobs []interfaces.AuditJob
}

var _ interfaces.QueueService = (*recordingQueue)(nil)

func (q *recordingQueue) EnqueueAudit(ctx context.Context, job interfaces.AuditJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *recordingQueue) DequeueAudit(ctx context.Context) (*interfaces.AuditJob, error) {
	return nil, nil
}

func (q *recordingQueue) SetAuditService(service interface{}) {}
func (q *recordingQueue) StartWorkers()                      {}
func (q *recordingQueue) StopWorkers()                       {}

func (q *recordingQueue) actions() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]string, 0, len(q.jobs))
	for _, job := range q.jobs {
		out = append(out, job.Action)
	}
	return out
}

// serviceFixture wires the three engine-backed services over the memory
// store, the way the router does against the database.
type serviceFixture struct {
	store         *repository.MemoryStore
	queue         *recordingQueue
	assignments   *service.AssignmentService
	registrations *service.RegistrationService
	notes         *service.NoteService

	mathsID      uuid.UUID
	juanID       uuid.UUID
	mathCourseID uuid.UUID
	gradeID      uuid.UUID
	sectionID    uuid.UUID
	morningID    uuid.UUID
	lateID       uuid.UUID
	mariaID      uuid.UUID
}

func newServiceFixture() *serviceFixture {
	store := repository.NewMemoryStore()
	txManager := repository.NewMemoryTxManager(store)
	queue := &recordingQueue{}

	f := &serviceFixture{
		store:         store,
		queue:         queue,
		assignments:   service.NewAssignmentService(store, txManager, queue, true),
		registrations: service.NewRegistrationService(store, txManager, queue, true),
		notes:         service.NewNoteService(store, txManager, queue, true),
		mathsID:       uuid.New(),
		gradeID:       uuid.New(),
		sectionID:     uuid.New(),
	}

	maths := school.Speciality{SpecialityID: f.mathsID, Name: "Mathematics"}
	f.juanID = store.AddTeacher(school.Teacher{
		Name:         "Juan",
		Specialities: []school.Speciality{maths},
	})
	f.mathCourseID = store.AddCourse(school.Course{
		Name:         "Mathematics I",
		SpecialityID: f.mathsID,
		Speciality:   maths,
	})
	f.morningID = store.AddSchedule(school.Schedule{StartTime: "07:00", EndTime: "09:00"})
	f.lateID = store.AddSchedule(school.Schedule{StartTime: "09:00", EndTime: "11:00"})
	f.mariaID = store.AddStudent(school.Student{Name: "Maria"})

	return f
}
