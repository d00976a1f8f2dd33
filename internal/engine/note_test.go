package engine_test

import (
	"context"
	"testing"

	"school-api/internal/domain/school"
	"school-api/internal/engine"

	"github.com/google/uuid"
)

// registeredMaria enrolls Maria into the standard maths assignment and
// returns that assignment's id.
func registeredMaria(f *fixture) uuid.UUID {
	assignmentID := f.commitAssignment(f.mathAssignment())
	f.commitRegistration(engine.RegistrationCandidate{
		StudentID:     f.mariaID,
		GradeID:       f.gradeID,
		SectionID:     f.sectionID,
		AssignmentIDs: []uuid.UUID{assignmentID},
	})
	return assignmentID
}

func TestValidateNoteAccepts(t *testing.T) {
	f := newFixture()
	registeredMaria(f)

	candidate := engine.NoteCandidate{
		StudentID: f.mariaID,
		CourseID:  f.mathCourseID,
		TeacherID: f.juanID,
		Score:     85,
	}
	if err := f.engine.ValidateNote(context.Background(), candidate, nil); err != nil {
		t.Fatalf("expected candidate to pass, got %v", err)
	}
}

func TestValidateNoteScoreOutOfRange(t *testing.T) {
	f := newFixture()
	registeredMaria(f)

	for _, score := range []float64{-1, 100.01, 150} {
		candidate := engine.NoteCandidate{
			StudentID: f.mariaID,
			CourseID:  f.mathCourseID,
			TeacherID: f.juanID,
			Score:     score,
		}
		err := f.engine.ValidateNote(context.Background(), candidate, nil)
		wantConflict(t, err, engine.KindScoreOutOfRange)
	}
}

func TestValidateNoteBoundaryScores(t *testing.T) {
	f := newFixture()
	registeredMaria(f)

	for _, score := range []float64{0, 100} {
		candidate := engine.NoteCandidate{
			StudentID: f.mariaID,
			CourseID:  f.mathCourseID,
			TeacherID: f.juanID,
			Score:     score,
		}
		if err := f.engine.ValidateNote(context.Background(), candidate, nil); err != nil {
			t.Errorf("score %.0f should be accepted, got %v", score, err)
		}
	}
}

func TestValidateNoteUnknownStudent(t *testing.T) {
	f := newFixture()
	registeredMaria(f)

	candidate := engine.NoteCandidate{
		StudentID: uuid.New(),
		CourseID:  f.mathCourseID,
		TeacherID: f.juanID,
		Score:     70,
	}
	if err := f.engine.ValidateNote(context.Background(), candidate, nil); !engine.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestValidateNoteUnlinked(t *testing.T) {
	f := newFixture()
	registeredMaria(f)

	// Maria is registered for maths with Juan, not for Spanish with Pedro.
	candidate := engine.NoteCandidate{
		StudentID: f.mariaID,
		CourseID:  f.spanishCourseID,
		TeacherID: f.pedroID,
		Score:     70,
	}
	err := f.engine.ValidateNote(context.Background(), candidate, nil)
	wantConflict(t, err, engine.KindUnlinkedNote)

	// Right course with the wrong teacher is also unlinked.
	candidate = engine.NoteCandidate{
		StudentID: f.mariaID,
		CourseID:  f.mathCourseID,
		TeacherID: f.pedroID,
		Score:     70,
	}
	err = f.engine.ValidateNote(context.Background(), candidate, nil)
	wantConflict(t, err, engine.KindUnlinkedNote)
}

func TestValidateNoteDuplicate(t *testing.T) {
	f := newFixture()
	registeredMaria(f)
	ctx := context.Background()

	note := &school.Note{
		StudentID: f.mariaID,
		CourseID:  f.mathCourseID,
		TeacherID: f.juanID,
		Score:     55,
	}
	if err := f.store.CreateNote(ctx, note); err != nil {
		t.Fatalf("storing note: %v", err)
	}

	candidate := engine.NoteCandidate{
		StudentID: f.mariaID,
		CourseID:  f.mathCourseID,
		TeacherID: f.juanID,
		Score:     90,
	}
	err := f.engine.ValidateNote(ctx, candidate, nil)
	wantConflict(t, err, engine.KindDuplicateNote)

	// Updating the stored note itself is allowed.
	if err := f.engine.ValidateNote(ctx, candidate, &note.NoteID); err != nil {
		t.Fatalf("update of own note should pass, got %v", err)
	}
}

func TestValidateNoteUpdateIntoOtherNotesPair(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// Maria takes two maths courses with Juan so both pairs are linked.
	first := f.commitAssignment(f.mathAssignment())
	secondCourseID := f.secondMathsCourse()
	secondAssignment := f.mathAssignment()
	secondAssignment.CourseID = secondCourseID
	secondAssignment.ScheduleID = f.lateID
	second := f.commitAssignment(secondAssignment)
	f.commitRegistration(engine.RegistrationCandidate{
		StudentID:     f.mariaID,
		GradeID:       f.gradeID,
		SectionID:     f.sectionID,
		AssignmentIDs: []uuid.UUID{first, second},
	})

	firstNote := &school.Note{StudentID: f.mariaID, CourseID: f.mathCourseID, TeacherID: f.juanID, Score: 80}
	secondNote := &school.Note{StudentID: f.mariaID, CourseID: secondCourseID, TeacherID: f.juanID, Score: 70}
	for _, n := range []*school.Note{firstNote, secondNote} {
		if err := f.store.CreateNote(ctx, n); err != nil {
			t.Fatalf("storing note: %v", err)
		}
	}

	// Repointing the second note at the first course collides with the first
	// note even though the second note's own row is excluded.
	candidate := engine.NoteCandidate{
		StudentID: f.mariaID,
		CourseID:  f.mathCourseID,
		TeacherID: f.juanID,
		Score:     70,
	}
	err := f.engine.ValidateNote(ctx, candidate, &secondNote.NoteID)
	wantConflict(t, err, engine.KindDuplicateNote)
}
