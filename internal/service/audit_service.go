package service

import (
	"context"
	"fmt"

	"school-api/internal/domain/school"
	interfaces "school-api/internal/interfaces/infrastructure"
	serviceInterfaces "school-api/internal/interfaces/service"
)

var _ serviceInterfaces.AuditService = (*AuditService)(nil)

// AuditService persists the audit jobs the queue workers drain.
type AuditService struct {
	auditRepo interfaces.AuditRepository
}

func NewAuditService(auditRepo interfaces.AuditRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

func (s *AuditService) ProcessAuditJob(ctx context.Context, job interfaces.AuditJob) error {
	entry := &school.AuditEntry{
		Action:     job.Action,
		EntityType: job.EntityType,
		EntityID:   job.EntityID,
		Detail:     job.Detail,
		OccurredAt: job.Timestamp,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		return fmt.Errorf("persisting audit entry: %w", err)
	}
	return nil
}

func (s *AuditService) ListRecent(ctx context.Context, limit int) ([]*school.AuditEntry, error) {
	return s.auditRepo.ListRecent(ctx, limit)
}
