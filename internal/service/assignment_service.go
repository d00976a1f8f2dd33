package service

import (
	"context"
	"fmt"

	"school-api/internal/domain/school"
	"school-api/internal/engine"
	interfaces "school-api/internal/interfaces/infrastructure"
	serviceInterfaces "school-api/internal/interfaces/service"
	"school-api/pkg/logger"

	"github.com/google/uuid"
)

var _ serviceInterfaces.AssignmentService = (*AssignmentService)(nil)

// AssignmentService runs assignment candidates through the validators and
// commits the survivors under the transaction coordinator.
type AssignmentService struct {
	store           interfaces.EntityStore
	txManager       interfaces.TransactionManager
	queueService    interfaces.QueueService
	precheckEnabled bool
}

func NewAssignmentService(
	store interfaces.EntityStore,
	txManager interfaces.TransactionManager,
	queueService interfaces.QueueService,
	precheckEnabled bool,
) *AssignmentService {
	return &AssignmentService{
		store:           store,
		txManager:       txManager,
		queueService:    queueService,
		precheckEnabled: precheckEnabled,
	}
}

func (s *AssignmentService) Create(ctx context.Context, req *serviceInterfaces.CreateAssignmentRequest) (*school.TeacherCourseAssignment, error) {
	logger.Info("Creating assignment for teacher %s, course %s", req.TeacherID, req.CourseID)

	candidate := engine.AssignmentCandidate{
		TeacherID:  req.TeacherID,
		CourseID:   req.CourseID,
		GradeID:    req.GradeID,
		SectionID:  req.SectionID,
		ScheduleID: req.ScheduleID,
	}

	// Cheap rejection before any lock is taken; the in-transaction validation
	// below remains authoritative.
	if s.precheckEnabled {
		if err := engine.New(s.store).ValidateAssignment(ctx, candidate, nil); err != nil {
			return nil, err
		}
	}

	assignment := &school.TeacherCourseAssignment{
		TeacherID:  candidate.TeacherID,
		CourseID:   candidate.CourseID,
		GradeID:    candidate.GradeID,
		SectionID:  candidate.SectionID,
		ScheduleID: candidate.ScheduleID,
	}

	lockKeys := []string{assignmentScopeKey(candidate.TeacherID, candidate.GradeID, candidate.SectionID)}
	err := s.txManager.Run(ctx, lockKeys, func(store interfaces.EntityStore) error {
		if err := engine.New(store).ValidateAssignment(ctx, candidate, nil); err != nil {
			return err
		}
		return store.CreateAssignment(ctx, assignment)
	})
	if err != nil {
		return nil, translateDuplicate(err, engine.KindDuplicateAssignment,
			"an identical assignment for this course, grade, section and schedule already exists",
			"course_id", "grade_id", "section_id", "schedule_id")
	}

	enqueueAudit(ctx, s.queueService, interfaces.AuditAssignmentCreated, "assignment", assignment.AssignmentID,
		fmt.Sprintf("teacher %s assigned to course %s", assignment.TeacherID, assignment.CourseID))

	return s.store.GetAssignment(ctx, assignment.AssignmentID)
}

func (s *AssignmentService) Update(ctx context.Context, id uuid.UUID, req *serviceInterfaces.UpdateAssignmentRequest) (*school.TeacherCourseAssignment, error) {
	logger.Info("Updating assignment %s", id)

	current, err := s.store.GetAssignment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading assignment: %w", err)
	}
	if current == nil {
		return nil, &engine.NotFoundError{Entity: "assignment", ID: id}
	}

	patch := engine.AssignmentPatch{
		TeacherID:  req.TeacherID,
		CourseID:   req.CourseID,
		GradeID:    req.GradeID,
		SectionID:  req.SectionID,
		ScheduleID: req.ScheduleID,
	}
	candidate := patch.ApplyTo(current)

	// Both the stored scope and the merged scope are locked, since a scope
	// change moves the assignment between overlap groups.
	lockKeys := []string{
		assignmentScopeKey(current.TeacherID, current.GradeID, current.SectionID),
		assignmentScopeKey(candidate.TeacherID, candidate.GradeID, candidate.SectionID),
	}

	err = s.txManager.Run(ctx, lockKeys, func(store interfaces.EntityStore) error {
		stored, err := store.GetAssignment(ctx, id)
		if err != nil {
			return fmt.Errorf("loading assignment: %w", err)
		}
		if stored == nil {
			return &engine.NotFoundError{Entity: "assignment", ID: id}
		}

		merged := patch.ApplyTo(stored)
		if err := engine.New(store).ValidateAssignment(ctx, merged, &id); err != nil {
			return err
		}

		stored.TeacherID = merged.TeacherID
		stored.CourseID = merged.CourseID
		stored.GradeID = merged.GradeID
		stored.SectionID = merged.SectionID
		stored.ScheduleID = merged.ScheduleID
		return store.UpdateAssignment(ctx, stored)
	})
	if err != nil {
		return nil, translateDuplicate(err, engine.KindDuplicateAssignment,
			"an identical assignment for this course, grade, section and schedule already exists",
			"course_id", "grade_id", "section_id", "schedule_id")
	}

	enqueueAudit(ctx, s.queueService, interfaces.AuditAssignmentUpdated, "assignment", id, "assignment updated")

	return s.store.GetAssignment(ctx, id)
}

func (s *AssignmentService) Delete(ctx context.Context, id uuid.UUID) error {
	logger.Info("Deleting assignment %s", id)

	current, err := s.store.GetAssignment(ctx, id)
	if err != nil {
		return fmt.Errorf("loading assignment: %w", err)
	}
	if current == nil {
		return &engine.NotFoundError{Entity: "assignment", ID: id}
	}

	lockKeys := []string{assignmentScopeKey(current.TeacherID, current.GradeID, current.SectionID)}
	err = s.txManager.Run(ctx, lockKeys, func(store interfaces.EntityStore) error {
		return store.DeleteAssignment(ctx, id)
	})
	if err != nil {
		return err
	}

	enqueueAudit(ctx, s.queueService, interfaces.AuditAssignmentDeleted, "assignment", id, "assignment deleted")
	return nil
}

func (s *AssignmentService) GetByTeacher(ctx context.Context, teacherID uuid.UUID) ([]*school.TeacherCourseAssignment, error) {
	return s.store.AssignmentsForTeacher(ctx, teacherID)
}
