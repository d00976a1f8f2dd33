package repository

import (
	"context"

	"school-api/internal/domain/school"
	interfaces "school-api/internal/interfaces/infrastructure"

	"gorm.io/gorm"
)

// AuditRepository persists committed engine decisions, written by the queue
// workers off the request path.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

var _ interfaces.AuditRepository = (*AuditRepository)(nil)

func (r *AuditRepository) Create(ctx context.Context, entry *school.AuditEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]*school.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []*school.AuditEntry
	err := r.db.WithContext(ctx).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
