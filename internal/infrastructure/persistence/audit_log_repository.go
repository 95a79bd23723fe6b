package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/dairyops/backend/internal/domain/audit"
)

// GormAuditLogRepository implements the audit Repository using GORM
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GormAuditLogRepository
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Append inserts an audit log entry
func (r *GormAuditLogRepository) Append(ctx context.Context, entry *audit.Log) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindRecent lists the most recent audit log entries
func (r *GormAuditLogRepository) FindRecent(ctx context.Context, limit int) ([]audit.Log, error) {
	var entries []audit.Log
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

var _ audit.Repository = (*GormAuditLogRepository)(nil)
