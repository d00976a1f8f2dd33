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

var _ serviceInterfaces.RegistrationService = (*RegistrationService)(nil)

// RegistrationService enrolls students into committed assignments. Every
// write is validated inside the coordinator holding the student's
// registration scope.
type RegistrationService struct {
	store           interfaces.EntityStore
	txManager       interfaces.TransactionManager
	queueService    interfaces.QueueService
	precheckEnabled bool
}

func NewRegistrationService(
	store interfaces.EntityStore,
	txManager interfaces.TransactionManager,
	queueService interfaces.QueueService,
	precheckEnabled bool,
) *RegistrationService {
	return &RegistrationService{
		store:           store,
		txManager:       txManager,
		queueService:    queueService,
		precheckEnabled: precheckEnabled,
	}
}

func (s *RegistrationService) Register(ctx context.Context, req *serviceInterfaces.CreateRegistrationRequest) (*school.CourseRegistration, error) {
	logger.Info("Registering student %s with %d assignments", req.StudentID, len(req.AssignmentIDs))

	candidate := engine.RegistrationCandidate{
		StudentID:     req.StudentID,
		GradeID:       req.GradeID,
		SectionID:     req.SectionID,
		AssignmentIDs: req.AssignmentIDs,
	}

	if s.precheckEnabled {
		if err := engine.New(s.store).ValidateRegistration(ctx, candidate, nil); err != nil {
			return nil, err
		}
	}

	registration := &school.CourseRegistration{
		StudentID: candidate.StudentID,
		GradeID:   candidate.GradeID,
		SectionID: candidate.SectionID,
	}

	lockKeys := []string{registrationScopeKey(candidate.StudentID)}
	err := s.txManager.Run(ctx, lockKeys, func(store interfaces.EntityStore) error {
		if err := engine.New(store).ValidateRegistration(ctx, candidate, nil); err != nil {
			return err
		}
		return store.CreateRegistration(ctx, registration, candidate.AssignmentIDs)
	})
	if err != nil {
		return nil, translateDuplicate(err, engine.KindAlreadyRegistered,
			"student already has an active registration", "student_id")
	}

	enqueueAudit(ctx, s.queueService, interfaces.AuditRegistrationCreated, "registration", registration.RegistrationID,
		fmt.Sprintf("student %s registered with %d assignments", registration.StudentID, len(candidate.AssignmentIDs)))

	return s.store.GetRegistration(ctx, registration.RegistrationID)
}

func (s *RegistrationService) Update(ctx context.Context, id uuid.UUID, req *serviceInterfaces.UpdateRegistrationRequest) (*school.CourseRegistration, error) {
	logger.Info("Updating registration %s", id)

	current, err := s.store.GetRegistration(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading registration: %w", err)
	}
	if current == nil {
		return nil, &engine.NotFoundError{Entity: "registration", ID: id}
	}

	patch := engine.RegistrationPatch{
		StudentID:     req.StudentID,
		GradeID:       req.GradeID,
		SectionID:     req.SectionID,
		AssignmentIDs: req.AssignmentIDs,
	}
	candidate := patch.ApplyTo(current)

	lockKeys := []string{
		registrationScopeKey(current.StudentID),
		registrationScopeKey(candidate.StudentID),
	}

	err = s.txManager.Run(ctx, lockKeys, func(store interfaces.EntityStore) error {
		stored, err := store.GetRegistration(ctx, id)
		if err != nil {
			return fmt.Errorf("loading registration: %w", err)
		}
		if stored == nil {
			return &engine.NotFoundError{Entity: "registration", ID: id}
		}

		merged := patch.ApplyTo(stored)
		if err := engine.New(store).ValidateRegistration(ctx, merged, &id); err != nil {
			return err
		}

		stored.StudentID = merged.StudentID
		stored.GradeID = merged.GradeID
		stored.SectionID = merged.SectionID
		return store.UpdateRegistration(ctx, stored, merged.AssignmentIDs)
	})
	if err != nil {
		return nil, translateDuplicate(err, engine.KindAlreadyRegistered,
			"student already has an active registration", "student_id")
	}

	enqueueAudit(ctx, s.queueService, interfaces.AuditRegistrationUpdated, "registration", id, "registration updated")

	return s.store.GetRegistration(ctx, id)
}

func (s *RegistrationService) Deregister(ctx context.Context, id uuid.UUID) error {
	logger.Info("Deregistering registration %s", id)

	current, err := s.store.GetRegistration(ctx, id)
	if err != nil {
		return fmt.Errorf("loading registration: %w", err)
	}
	if current == nil {
		return &engine.NotFoundError{Entity: "registration", ID: id}
	}

	lockKeys := []string{registrationScopeKey(current.StudentID)}
	err = s.txManager.Run(ctx, lockKeys, func(store interfaces.EntityStore) error {
		return store.DeleteRegistration(ctx, id)
	})
	if err != nil {
		return err
	}

	enqueueAudit(ctx, s.queueService, interfaces.AuditRegistrationDeleted, "registration", id,
		fmt.Sprintf("student %s deregistered", current.StudentID))
	return nil
}

func (s *RegistrationService) GetByStudent(ctx context.Context, studentID uuid.UUID) (*school.CourseRegistration, error) {
	registration, err := s.store.RegistrationForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if registration == nil {
		return nil, &engine.NotFoundError{Entity: "registration", ID: studentID}
	}
	return registration, nil
}
