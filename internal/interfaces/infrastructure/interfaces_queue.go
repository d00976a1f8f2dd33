package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Audit actions emitted after a successful validate-then-commit.
const (
	AuditAssignmentCreated   = "assignment.created"
	AuditAssignmentUpdated   = "assignment.updated"
	AuditAssignmentDeleted   = "assignment.deleted"
	AuditRegistrationCreated = "registration.created"
	AuditRegistrationUpdated = "registration.updated"
	AuditRegistrationDeleted = "registration.deleted"
	AuditNoteCreated         = "note.created"
	AuditNoteUpdated         = "note.updated"
	AuditNoteDeleted         = "note.deleted"
)

// AuditJob records one committed engine decision for asynchronous
// persistence.
type AuditJob struct {
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   uuid.UUID `json:"entity_id"`
	Detail     string    `json:"detail"`
	Timestamp  time.Time `json:"timestamp"`
}

// QueueService decouples audit persistence from the request path. Workers
// drain the queue and hand jobs to the audit service.
type QueueService interface {
	EnqueueAudit(ctx context.Context, job AuditJob) error
	DequeueAudit(ctx context.Context) (*AuditJob, error)
	SetAuditService(service interface{})
	StartWorkers()
	StopWorkers()
}
