package school

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Speciality is a teaching subject area. Names are unique case-insensitively.
type Speciality struct {
	SpecialityID uuid.UUID `json:"speciality_id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name         string    `json:"name" gorm:"unique;not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Teacher holds a teacher and the specialities they are qualified to teach.
// A teacher with an empty speciality set is never assignable.
type Teacher struct {
	TeacherID    uuid.UUID    `json:"teacher_id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name         string       `json:"name" gorm:"unique;not null"`
	Phone        string       `json:"phone"`
	Specialities []Speciality `json:"specialities" gorm:"many2many:teacher_specialities;joinForeignKey:TeacherID;joinReferences:SpecialityID"`
	Grades       []Grade      `json:"grades,omitempty" gorm:"many2many:teacher_grades;joinForeignKey:TeacherID;joinReferences:GradeID"`
	CreatedAt    time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
}

// HasSpeciality reports whether the teacher carries the given speciality.
func (t *Teacher) HasSpeciality(specialityID uuid.UUID) bool {
	for _, s := range t.Specialities {
		if s.SpecialityID == specialityID {
			return true
		}
	}
	return false
}

// Course references exactly one Speciality; the speciality is never owned and
// cannot be deleted while a course points at it.
type Course struct {
	CourseID     uuid.UUID  `json:"course_id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name         string     `json:"name" gorm:"unique;not null"`
	SpecialityID uuid.UUID  `json:"speciality_id" gorm:"type:uuid;not null"`
	Description  *string    `json:"description"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	Speciality   Speciality `json:"speciality,omitempty" gorm:"foreignKey:SpecialityID"`
}

// Grade is an academic level ("1° básico"); name and code are both unique.
type Grade struct {
	GradeID     uuid.UUID `json:"grade_id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name        string    `json:"name" gorm:"unique;not null"`
	Code        string    `json:"code" gorm:"unique;not null"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Section is a named group within a grade ("A", "B").
type Section struct {
	SectionID uuid.UUID `json:"section_id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Schedule is a daily time window. Times are stored as "HH:MM"; StartTime must
// be strictly before EndTime.
type Schedule struct {
	ScheduleID uuid.UUID `json:"schedule_id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	StartTime  string    `json:"start_time" gorm:"not null"`
	EndTime    string    `json:"end_time" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// ParseClock converts an "HH:MM" clock string into minutes since midnight.
func ParseClock(value string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(value, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", value, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock value %q", value)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as a zero-padded "HH:MM"
// string. Schedules are stored zero-padded so lexicographic comparison in SQL
// matches numeric comparison.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Window returns the schedule as minutes since midnight.
func (s *Schedule) Window() (start, end int, err error) {
	start, err = ParseClock(s.StartTime)
	if err != nil {
		return 0, 0, err
	}
	end, err = ParseClock(s.EndTime)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func (s *Schedule) String() string {
	return fmt.Sprintf("%s-%s", s.StartTime, s.EndTime)
}

// Tutor is the adult responsible for one or more students.
type Tutor struct {
	TutorID   uuid.UUID `json:"tutor_id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name      string    `json:"name" gorm:"not null"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Student cannot gain new registrations while suspended; existing
// registrations are left untouched.
type Student struct {
	StudentID        uuid.UUID `json:"student_id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name             string    `json:"name" gorm:"unique;not null"`
	Phone            string    `json:"phone"`
	Birthdate        *time.Time `json:"birthdate"`
	Address          string    `json:"address"`
	EmergencyContact string    `json:"emergency_contact"`
	TutorID          uuid.UUID `json:"tutor_id" gorm:"type:uuid;not null"`
	Suspended        bool      `json:"suspended" gorm:"not null;default:false"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"autoUpdateTime"`
	Tutor            Tutor     `json:"tutor,omitempty" gorm:"foreignKey:TutorID"`
}

// TeacherCourseAssignment binds a teacher to a course taught at a grade,
// section and schedule. Unique on (course, grade, section, schedule); the
// teacher's specialities must contain the course's speciality; schedules for
// the same (teacher, grade, section) never overlap.
type TeacherCourseAssignment struct {
	AssignmentID uuid.UUID `json:"assignment_id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	TeacherID    uuid.UUID `json:"teacher_id" gorm:"type:uuid;not null"`
	CourseID     uuid.UUID `json:"course_id" gorm:"type:uuid;not null"`
	GradeID      uuid.UUID `json:"grade_id" gorm:"type:uuid;not null"`
	SectionID    uuid.UUID `json:"section_id" gorm:"type:uuid;not null"`
	ScheduleID   uuid.UUID `json:"schedule_id" gorm:"type:uuid;not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
	Teacher      Teacher   `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
	Course       Course    `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Grade        Grade     `json:"grade,omitempty" gorm:"foreignKey:GradeID"`
	Section      Section   `json:"section,omitempty" gorm:"foreignKey:SectionID"`
	Schedule     Schedule  `json:"schedule,omitempty" gorm:"foreignKey:ScheduleID"`
}

// CourseRegistration enrolls a student into a set of assignments that all
// share the registration's grade and section. A student holds at most one
// registration at a time.
type CourseRegistration struct {
	RegistrationID uuid.UUID                 `json:"registration_id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	StudentID      uuid.UUID                 `json:"student_id" gorm:"type:uuid;not null;unique"`
	GradeID        uuid.UUID                 `json:"grade_id" gorm:"type:uuid;not null"`
	SectionID      uuid.UUID                 `json:"section_id" gorm:"type:uuid;not null"`
	Assignments    []TeacherCourseAssignment `json:"assignments" gorm:"many2many:registration_assignments;joinForeignKey:RegistrationID;joinReferences:AssignmentID"`
	CreatedAt      time.Time                 `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time                 `json:"updated_at" gorm:"autoUpdateTime"`
	Student        Student                   `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Grade          Grade                     `json:"grade,omitempty" gorm:"foreignKey:GradeID"`
	Section        Section                   `json:"section,omitempty" gorm:"foreignKey:SectionID"`
}

// ApprovalThreshold is the minimum score that marks a note as approved.
const ApprovalThreshold = 60.0

// Note records a score a teacher gave a student for a course. One note per
// (student, course); the triple must match a committed registration link.
type Note struct {
	NoteID    uuid.UUID `json:"note_id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	StudentID uuid.UUID `json:"student_id" gorm:"type:uuid;not null"`
	CourseID  uuid.UUID `json:"course_id" gorm:"type:uuid;not null"`
	TeacherID uuid.UUID `json:"teacher_id" gorm:"type:uuid;not null"`
	Score     float64   `json:"score" gorm:"not null"`
	Approved  bool      `json:"approved" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
	Student   Student   `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Course    Course    `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Teacher   Teacher   `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
}

// AuditEntry is one committed engine decision, persisted asynchronously by the
// audit queue workers.
type AuditEntry struct {
	AuditID    uuid.UUID `json:"audit_id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Action     string    `json:"action" gorm:"not null"`
	EntityType string    `json:"entity_type" gorm:"not null"`
	EntityID   uuid.UUID `json:"entity_id" gorm:"type:uuid;not null"`
	Detail     string    `json:"detail"`
	OccurredAt time.Time `json:"occurred_at" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// ProtectedReferenceError rejects a delete that would leave a dependent row
// pointing at a missing target.
type ProtectedReferenceError struct {
	Entity       string
	EntityID     uuid.UUID
	ReferencedBy string
}

func (e *ProtectedReferenceError) Error() string {
	return fmt.Sprintf("%s %s is referenced by existing %s", e.Entity, e.EntityID, e.ReferencedBy)
}
