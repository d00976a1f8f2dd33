package repository

import (
	"context"
	"sync"

	"school-api/internal/domain/school"
	"school-api/internal/engine"
	interfaces "school-api/internal/interfaces/infrastructure"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory EntityStore for tests. It mirrors the
// semantics of the database-backed store, including (nil, nil) on missing
// rows and protect-on-delete for assignments still linked to registrations.
type MemoryStore struct {
	mu sync.RWMutex

	teachers      map[uuid.UUID]school.Teacher
	courses       map[uuid.UUID]school.Course
	students      map[uuid.UUID]school.Student
	schedules     map[uuid.UUID]school.Schedule
	assignments   map[uuid.UUID]school.TeacherCourseAssignment
	registrations map[uuid.UUID]school.CourseRegistration
	regLinks      map[uuid.UUID][]uuid.UUID
	notes         map[uuid.UUID]school.Note
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		teachers:      make(map[uuid.UUID]school.Teacher),
		courses:       make(map[uuid.UUID]school.Course),
		students:      make(map[uuid.UUID]school.Student),
		schedules:     make(map[uuid.UUID]school.Schedule),
		assignments:   make(map[uuid.UUID]school.TeacherCourseAssignment),
		registrations: make(map[uuid.UUID]school.CourseRegistration),
		regLinks:      make(map[uuid.UUID][]uuid.UUID),
		notes:         make(map[uuid.UUID]school.Note),
	}
}

var _ interfaces.EntityStore = (*MemoryStore)(nil)

// Seed helpers. Each assigns an id when the caller left it zero and returns
// the stored id.

func (s *MemoryStore) AddTeacher(teacher school.Teacher) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if teacher.TeacherID == uuid.Nil {
		teacher.TeacherID = uuid.New()
	}
	s.teachers[teacher.TeacherID] = teacher
	return teacher.TeacherID
}

func (s *MemoryStore) AddCourse(course school.Course) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if course.CourseID == uuid.Nil {
		course.CourseID = uuid.New()
	}
	s.courses[course.CourseID] = course
	return course.CourseID
}

func (s *MemoryStore) AddStudent(student school.Student) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if student.StudentID == uuid.Nil {
		student.StudentID = uuid.New()
	}
	s.students[student.StudentID] = student
	return student.StudentID
}

func (s *MemoryStore) AddSchedule(schedule school.Schedule) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if schedule.ScheduleID == uuid.Nil {
		schedule.ScheduleID = uuid.New()
	}
	s.schedules[schedule.ScheduleID] = schedule
	return schedule.ScheduleID
}

// Reads

func (s *MemoryStore) GetTeacher(ctx context.Context, id uuid.UUID) (*school.Teacher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	teacher, ok := s.teachers[id]
	if !ok {
		return nil, nil
	}
	return &teacher, nil
}

func (s *MemoryStore) GetCourse(ctx context.Context, id uuid.UUID) (*school.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	course, ok := s.courses[id]
	if !ok {
		return nil, nil
	}
	return &course, nil
}

func (s *MemoryStore) GetStudent(ctx context.Context, id uuid.UUID) (*school.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	student, ok := s.students[id]
	if !ok {
		return nil, nil
	}
	return &student, nil
}

func (s *MemoryStore) GetSchedule(ctx context.Context, id uuid.UUID) (*school.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	schedule, ok := s.schedules[id]
	if !ok {
		return nil, nil
	}
	return &schedule, nil
}

func (s *MemoryStore) GetAssignment(ctx context.Context, id uuid.UUID) (*school.TeacherCourseAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	assignment, ok := s.assignments[id]
	if !ok {
		return nil, nil
	}
	if schedule, ok := s.schedules[assignment.ScheduleID]; ok {
		assignment.Schedule = schedule
	}
	return &assignment, nil
}

func (s *MemoryStore) AssignmentsOverlapping(ctx context.Context, teacherID, gradeID, sectionID uuid.UUID, window engine.TimeWindow, excludeID *uuid.UUID) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ids []uuid.UUID
	for id, a := range s.assignments {
		if a.TeacherID != teacherID || a.GradeID != gradeID || a.SectionID != sectionID {
			continue
		}
		if excludeID != nil && id == *excludeID {
			continue
		}
		schedule, ok := s.schedules[a.ScheduleID]
		if !ok {
			continue
		}
		start, end, err := schedule.Window()
		if err != nil {
			return nil, err
		}
		if window.Overlaps(engine.TimeWindow{Start: start, End: end}) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *MemoryStore) AssignmentExists(ctx context.Context, courseID, gradeID, sectionID, scheduleID uuid.UUID, excludeID *uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, a := range s.assignments {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if a.CourseID == courseID && a.GradeID == gradeID && a.SectionID == sectionID && a.ScheduleID == scheduleID {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) HasAssignmentsFor(ctx context.Context, gradeID, sectionID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.assignments {
		if a.GradeID == gradeID && a.SectionID == sectionID {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) RegistrationForStudent(ctx context.Context, studentID uuid.UUID) (*school.CourseRegistration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, r := range s.registrations {
		if r.StudentID == studentID {
			r.Assignments = s.linkedAssignmentsLocked(id)
			return &r, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) RegistrationLinks(ctx context.Context, studentID, courseID, teacherID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, r := range s.registrations {
		if r.StudentID != studentID {
			continue
		}
		for _, assignmentID := range s.regLinks[id] {
			a, ok := s.assignments[assignmentID]
			if ok && a.CourseID == courseID && a.TeacherID == teacherID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *MemoryStore) NoteExists(ctx context.Context, studentID, courseID uuid.UUID, excludeID *uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, n := range s.notes {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if n.StudentID == studentID && n.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

// Writes

func (s *MemoryStore) CreateAssignment(ctx context.Context, assignment *school.TeacherCourseAssignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if assignment.AssignmentID == uuid.Nil {
		assignment.AssignmentID = uuid.New()
	}
	s.assignments[assignment.AssignmentID] = *assignment
	return nil
}

func (s *MemoryStore) UpdateAssignment(ctx context.Context, assignment *school.TeacherCourseAssignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[assignment.AssignmentID] = *assignment
	return nil
}

func (s *MemoryStore) DeleteAssignment(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, links := range s.regLinks {
		for _, assignmentID := range links {
			if assignmentID == id {
				return &school.ProtectedReferenceError{Entity: "assignment", EntityID: id, ReferencedBy: "registrations"}
			}
		}
	}
	delete(s.assignments, id)
	return nil
}

func (s *MemoryStore) AssignmentsForTeacher(ctx context.Context, teacherID uuid.UUID) ([]*school.TeacherCourseAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*school.TeacherCourseAssignment
	for _, a := range s.assignments {
		if a.TeacherID == teacherID {
			assignment := a
			if schedule, ok := s.schedules[a.ScheduleID]; ok {
				assignment.Schedule = schedule
			}
			out = append(out, &assignment)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetRegistration(ctx context.Context, id uuid.UUID) (*school.CourseRegistration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	registration, ok := s.registrations[id]
	if !ok {
		return nil, nil
	}
	registration.Assignments = s.linkedAssignmentsLocked(id)
	return &registration, nil
}

func (s *MemoryStore) CreateRegistration(ctx context.Context, registration *school.CourseRegistration, assignmentIDs []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if registration.RegistrationID == uuid.Nil {
		registration.RegistrationID = uuid.New()
	}
	stored := *registration
	stored.Assignments = nil
	s.registrations[stored.RegistrationID] = stored
	s.regLinks[stored.RegistrationID] = append([]uuid.UUID(nil), assignmentIDs...)
	return nil
}

func (s *MemoryStore) UpdateRegistration(ctx context.Context, registration *school.CourseRegistration, assignmentIDs []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *registration
	stored.Assignments = nil
	s.registrations[stored.RegistrationID] = stored
	s.regLinks[stored.RegistrationID] = append([]uuid.UUID(nil), assignmentIDs...)
	return nil
}

func (s *MemoryStore) DeleteRegistration(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.registrations, id)
	delete(s.regLinks, id)
	return nil
}

func (s *MemoryStore) GetNote(ctx context.Context, id uuid.UUID) (*school.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	note, ok := s.notes[id]
	if !ok {
		return nil, nil
	}
	return &note, nil
}

func (s *MemoryStore) CreateNote(ctx context.Context, note *school.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if note.NoteID == uuid.Nil {
		note.NoteID = uuid.New()
	}
	s.notes[note.NoteID] = *note
	return nil
}

func (s *MemoryStore) UpdateNote(ctx context.Context, note *school.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes[note.NoteID] = *note
	return nil
}

func (s *MemoryStore) DeleteNote(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.notes, id)
	return nil
}

func (s *MemoryStore) NotesForStudent(ctx context.Context, studentID uuid.UUID) ([]*school.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*school.Note
	for _, n := range s.notes {
		if n.StudentID == studentID {
			note := n
			out = append(out, &note)
		}
	}
	return out, nil
}

func (s *MemoryStore) linkedAssignmentsLocked(registrationID uuid.UUID) []school.TeacherCourseAssignment {
	var out []school.TeacherCourseAssignment
	for _, assignmentID := range s.regLinks[registrationID] {
		if a, ok := s.assignments[assignmentID]; ok {
			out = append(out, a)
		}
	}
	return out
}

// MemoryTxManager serializes every Run call with a single mutex, which is a
// strictly stronger guarantee than the per-key advisory locks the database
// implementation takes.
type MemoryTxManager struct {
	mu    sync.Mutex
	store *MemoryStore
}

func NewMemoryTxManager(store *MemoryStore) *MemoryTxManager {
	return &MemoryTxManager{store: store}
}

var _ interfaces.TransactionManager = (*MemoryTxManager)(nil)

func (m *MemoryTxManager) Run(ctx context.Context, lockKeys []string, fn func(store interfaces.EntityStore) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(m.store)
}
