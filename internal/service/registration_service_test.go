package service_test

import (
	"context"
	"testing"

	"school-api/internal/engine"
	serviceInterfaces "school-api/internal/interfaces/service"

	"github.com/google/uuid"
)

func TestRegistrationServiceRegisterAndFetch(t *testing.T) {
	f := newServiceFixture()
	assignmentID := createMathAssignment(t, f)
	ctx := context.Background()

	registration, err := f.registrations.Register(ctx, &serviceInterfaces.CreateRegistrationRequest{
		StudentID:     f.mariaID,
		GradeID:       f.gradeID,
		SectionID:     f.sectionID,
		AssignmentIDs: []uuid.UUID{assignmentID},
	})
	if err != nil {
		t.Fatalf("registering: %v", err)
	}
	if len(registration.Assignments) != 1 || registration.Assignments[0].AssignmentID != assignmentID {
		t.Errorf("expected linked assignment %s, got %v", assignmentID, registration.Assignments)
	}

	fetched, err := f.registrations.GetByStudent(ctx, f.mariaID)
	if err != nil {
		t.Fatalf("fetching registration: %v", err)
	}
	if fetched.RegistrationID != registration.RegistrationID {
		t.Errorf("expected registration %s, got %s", registration.RegistrationID, fetched.RegistrationID)
	}
}

func TestRegistrationServiceSecondRegistrationRejected(t *testing.T) {
	f := newServiceFixture()
	assignmentID := createMathAssignment(t, f)
	ctx := context.Background()

	req := &serviceInterfaces.CreateRegistrationRequest{
		StudentID:     f.mariaID,
		GradeID:       f.gradeID,
		SectionID:     f.sectionID,
		AssignmentIDs: []uuid.UUID{assignmentID},
	}
	if _, err := f.registrations.Register(ctx, req); err != nil {
		t.Fatalf("first registration: %v", err)
	}

	_, err := f.registrations.Register(ctx, req)
	ce, ok := engine.AsConflict(err)
	if !ok || ce.Kind != engine.KindAlreadyRegistered {
		t.Fatalf("expected already_registered conflict, got %v", err)
	}
}

func TestRegistrationServiceGetByStudentMissing(t *testing.T) {
	f := newServiceFixture()

	_, err := f.registrations.GetByStudent(context.Background(), f.mariaID)
	if !engine.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRegistrationServiceDeregisterFreesStudent(t *testing.T) {
	f := newServiceFixture()
	assignmentID := createMathAssignment(t, f)
	ctx := context.Background()

	req := &serviceInterfaces.CreateRegistrationRequest{
		StudentID:     f.mariaID,
		GradeID:       f.gradeID,
		SectionID:     f.sectionID,
		AssignmentIDs: []uuid.UUID{assignmentID},
	}
	registration, err := f.registrations.Register(ctx, req)
	if err != nil {
		t.Fatalf("registering: %v", err)
	}

	if err := f.registrations.Deregister(ctx, registration.RegistrationID); err != nil {
		t.Fatalf("deregistering: %v", err)
	}

	// The student can register again once the old registration is gone.
	if _, err := f.registrations.Register(ctx, req); err != nil {
		t.Fatalf("re-registering after deregister: %v", err)
	}
}
