package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ConflictKind is the machine-readable reason a candidate was rejected.
type ConflictKind string

const (
	KindSpecialityMismatch             ConflictKind = "speciality_mismatch"
	KindScheduleConflict               ConflictKind = "schedule_conflict"
	KindDuplicateAssignment            ConflictKind = "duplicate_assignment"
	KindStudentSuspended               ConflictKind = "student_suspended"
	KindAlreadyRegistered              ConflictKind = "already_registered"
	KindAssignmentNotFound             ConflictKind = "assignment_not_found"
	KindAssignmentGradeSectionMismatch ConflictKind = "assignment_grade_section_mismatch"
	KindNoAssignmentsAvailable         ConflictKind = "no_assignments_available"
	KindScoreOutOfRange                ConflictKind = "score_out_of_range"
	KindUnlinkedNote                   ConflictKind = "unlinked_note"
	KindDuplicateNote                  ConflictKind = "duplicate_note"
)

// ConflictError reports a rejected candidate. It carries the kind and the
// offending field names so callers can build a transport response without
// looking inside the engine. Conflicts are always recoverable.
type ConflictError struct {
	Kind    ConflictKind `json:"kind"`
	Fields  []string     `json:"fields,omitempty"`
	Message string       `json:"message"`
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func conflict(kind ConflictKind, message string, fields ...string) *ConflictError {
	return &ConflictError{Kind: kind, Fields: fields, Message: message}
}

// AsConflict unwraps err into a ConflictError if it is one.
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// NotFoundError reports that a referenced entity does not exist. Unlike a
// ConflictError this is a caller mistake, not a constraint violation.
type NotFoundError struct {
	Entity string
	ID     uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func notFound(entity string, id uuid.UUID) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
