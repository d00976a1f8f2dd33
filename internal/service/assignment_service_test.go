package service_test

import (
	"context"
	"testing"

	"school-api/internal/engine"
	interfaces "school-api/internal/interfaces/infrastructure"
	serviceInterfaces "school-api/internal/interfaces/service"

	"github.com/google/uuid"
)

func createMathAssignment(t *testing.T, f *serviceFixture) uuid.UUID {
	t.Helper()
	assignment, err := f.assignments.Create(context.Background(), &serviceInterfaces.CreateAssignmentRequest{
		TeacherID:  f.juanID,
		CourseID:   f.mathCourseID,
		GradeID:    f.gradeID,
		SectionID:  f.sectionID,
		ScheduleID: f.morningID,
	})
	if err != nil {
		t.Fatalf("creating assignment: %v", err)
	}
	return assignment.AssignmentID
}

func TestAssignmentServiceCreate(t *testing.T) {
	f := newServiceFixture()
	id := createMathAssignment(t, f)

	stored, err := f.store.GetAssignment(context.Background(), id)
	if err != nil || stored == nil {
		t.Fatalf("expected assignment %s to be stored, got (%v, %v)", id, stored, err)
	}

	actions := f.queue.actions()
	if len(actions) != 1 || actions[0] != interfaces.AuditAssignmentCreated {
		t.Errorf("expected one %s audit job, got %v", interfaces.AuditAssignmentCreated, actions)
	}
}

func TestAssignmentServiceCreateConflictLeavesNoTrace(t *testing.T) {
	f := newServiceFixture()
	createMathAssignment(t, f)

	// Second identical tuple is rejected before any write.
	_, err := f.assignments.Create(context.Background(), &serviceInterfaces.CreateAssignmentRequest{
		TeacherID:  f.juanID,
		CourseID:   f.mathCourseID,
		GradeID:    f.gradeID,
		SectionID:  f.sectionID,
		ScheduleID: f.morningID,
	})
	if _, ok := engine.AsConflict(err); !ok {
		t.Fatalf("expected conflict, got %v", err)
	}

	if actions := f.queue.actions(); len(actions) != 1 {
		t.Errorf("rejected create must not enqueue audit jobs, got %v", actions)
	}
}

func TestAssignmentServiceUpdateMergesMissingFields(t *testing.T) {
	f := newServiceFixture()
	id := createMathAssignment(t, f)
	ctx := context.Background()

	// Only the schedule is supplied; every other field is inherited.
	updated, err := f.assignments.Update(ctx, id, &serviceInterfaces.UpdateAssignmentRequest{
		ScheduleID: &f.lateID,
	})
	if err != nil {
		t.Fatalf("updating assignment: %v", err)
	}

	if updated.ScheduleID != f.lateID {
		t.Errorf("schedule not updated: got %s", updated.ScheduleID)
	}
	if updated.TeacherID != f.juanID || updated.CourseID != f.mathCourseID {
		t.Errorf("unpatched fields changed: teacher %s course %s", updated.TeacherID, updated.CourseID)
	}
}

func TestAssignmentServiceUpdateUnknownID(t *testing.T) {
	f := newServiceFixture()

	_, err := f.assignments.Update(context.Background(), uuid.New(), &serviceInterfaces.UpdateAssignmentRequest{})
	if !engine.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAssignmentServiceDeleteProtectedWhileRegistered(t *testing.T) {
	f := newServiceFixture()
	id := createMathAssignment(t, f)
	ctx := context.Background()

	_, err := f.registrations.Register(ctx, &serviceInterfaces.CreateRegistrationRequest{
		StudentID:     f.mariaID,
		GradeID:       f.gradeID,
		SectionID:     f.sectionID,
		AssignmentIDs: []uuid.UUID{id},
	})
	if err != nil {
		t.Fatalf("registering: %v", err)
	}

	if err := f.assignments.Delete(ctx, id); err == nil {
		t.Fatal("expected delete of a registered assignment to fail")
	}

	stored, err := f.store.GetAssignment(ctx, id)
	if err != nil || stored == nil {
		t.Fatalf("assignment should survive the rejected delete, got (%v, %v)", stored, err)
	}
}
