package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"school-api/internal/engine"
	interfaces "school-api/internal/interfaces/infrastructure"
	"school-api/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lock key builders. A key names the resource scope a validate-then-commit
// sequence must hold exclusively; the transaction manager serializes callers
// sharing a key.

func assignmentScopeKey(teacherID, gradeID, sectionID uuid.UUID) string {
	return fmt.Sprintf("assignment:%s:%s:%s", teacherID, gradeID, sectionID)
}

func registrationScopeKey(studentID uuid.UUID) string {
	return fmt.Sprintf("registration:%s", studentID)
}

func noteScopeKey(studentID, courseID uuid.UUID) string {
	return fmt.Sprintf("note:%s:%s", studentID, courseID)
}

// translateDuplicate maps a unique index violation onto the conflict the
// validators would have reported. The index is the final arbiter for races
// the advisory locks do not cover, such as two different teachers committing
// the same course tuple at once.
func translateDuplicate(err error, kind engine.ConflictKind, message string, fields ...string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &engine.ConflictError{Kind: kind, Fields: fields, Message: message}
	}
	return err
}

func enqueueAudit(ctx context.Context, queue interfaces.QueueService, action, entityType string, entityID uuid.UUID, detail string) {
	if queue == nil {
		return
	}
	job := interfaces.AuditJob{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
		Timestamp:  time.Now().UTC(),
	}
	if err := queue.EnqueueAudit(ctx, job); err != nil {
		logger.Warn("Failed to enqueue audit job %s for %s %s: %v", action, entityType, entityID, err)
	}
}
