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

var _ serviceInterfaces.NoteService = (*NoteService)(nil)

// NoteService records scores against committed registration links. The
// approved flag is derived from the score on every write, never supplied by
// the caller.
type NoteService struct {
	store           interfaces.EntityStore
	txManager       interfaces.TransactionManager
	queueService    interfaces.QueueService
	precheckEnabled bool
}

func NewNoteService(
	store interfaces.EntityStore,
	txManager interfaces.TransactionManager,
	queueService interfaces.QueueService,
	precheckEnabled bool,
) *NoteService {
	return &NoteService{
		store:           store,
		txManager:       txManager,
		queueService:    queueService,
		precheckEnabled: precheckEnabled,
	}
}

func (s *NoteService) Create(ctx context.Context, req *serviceInterfaces.CreateNoteRequest) (*school.Note, error) {
	logger.Info("Creating note for student %s, course %s", req.StudentID, req.CourseID)

	candidate := engine.NoteCandidate{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		TeacherID: req.TeacherID,
		Score:     req.Score,
	}

	if s.precheckEnabled {
		if err := engine.New(s.store).ValidateNote(ctx, candidate, nil); err != nil {
			return nil, err
		}
	}

	note := &school.Note{
		StudentID: candidate.StudentID,
		CourseID:  candidate.CourseID,
		TeacherID: candidate.TeacherID,
		Score:     candidate.Score,
		Approved:  candidate.Score >= school.ApprovalThreshold,
	}

	lockKeys := []string{noteScopeKey(candidate.StudentID, candidate.CourseID)}
	err := s.txManager.Run(ctx, lockKeys, func(store interfaces.EntityStore) error {
		if err := engine.New(store).ValidateNote(ctx, candidate, nil); err != nil {
			return err
		}
		return store.CreateNote(ctx, note)
	})
	if err != nil {
		return nil, translateDuplicate(err, engine.KindDuplicateNote,
			"a note already exists for this student and course", "student_id", "course_id")
	}

	enqueueAudit(ctx, s.queueService, interfaces.AuditNoteCreated, "note", note.NoteID,
		fmt.Sprintf("score %.2f recorded for student %s", note.Score, note.StudentID))

	return note, nil
}

func (s *NoteService) Update(ctx context.Context, id uuid.UUID, req *serviceInterfaces.UpdateNoteRequest) (*school.Note, error) {
	logger.Info("Updating note %s", id)

	current, err := s.store.GetNote(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading note: %w", err)
	}
	if current == nil {
		return nil, &engine.NotFoundError{Entity: "note", ID: id}
	}

	patch := engine.NotePatch{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		TeacherID: req.TeacherID,
		Score:     req.Score,
	}
	candidate := patch.ApplyTo(current)

	lockKeys := []string{
		noteScopeKey(current.StudentID, current.CourseID),
		noteScopeKey(candidate.StudentID, candidate.CourseID),
	}

	err = s.txManager.Run(ctx, lockKeys, func(store interfaces.EntityStore) error {
		stored, err := store.GetNote(ctx, id)
		if err != nil {
			return fmt.Errorf("loading note: %w", err)
		}
		if stored == nil {
			return &engine.NotFoundError{Entity: "note", ID: id}
		}

		merged := patch.ApplyTo(stored)
		if err := engine.New(store).ValidateNote(ctx, merged, &id); err != nil {
			return err
		}

		stored.StudentID = merged.StudentID
		stored.CourseID = merged.CourseID
		stored.TeacherID = merged.TeacherID
		stored.Score = merged.Score
		stored.Approved = merged.Score >= school.ApprovalThreshold
		return store.UpdateNote(ctx, stored)
	})
	if err != nil {
		return nil, translateDuplicate(err, engine.KindDuplicateNote,
			"a note already exists for this student and course", "student_id", "course_id")
	}

	enqueueAudit(ctx, s.queueService, interfaces.AuditNoteUpdated, "note", id, "note updated")

	return s.store.GetNote(ctx, id)
}

func (s *NoteService) Delete(ctx context.Context, id uuid.UUID) error {
	logger.Info("Deleting note %s", id)

	current, err := s.store.GetNote(ctx, id)
	if err != nil {
		return fmt.Errorf("loading note: %w", err)
	}
	if current == nil {
		return &engine.NotFoundError{Entity: "note", ID: id}
	}

	lockKeys := []string{noteScopeKey(current.StudentID, current.CourseID)}
	err = s.txManager.Run(ctx, lockKeys, func(store interfaces.EntityStore) error {
		return store.DeleteNote(ctx, id)
	})
	if err != nil {
		return err
	}

	enqueueAudit(ctx, s.queueService, interfaces.AuditNoteDeleted, "note", id, "note deleted")
	return nil
}

func (s *NoteService) GetByStudent(ctx context.Context, studentID uuid.UUID) ([]*school.Note, error) {
	return s.store.NotesForStudent(ctx, studentID)
}
