package audit

import (
	"context"
	"encoding/json"

	"github.com/dairyops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Log is one audit trail entry. Entries are written asynchronously after the
// business operation commits and are never updated.
type Log struct {
	shared.BaseEntity
	UserID   *uuid.UUID `gorm:"type:uuid;index"`
	Username string     `gorm:"type:varchar(64)"`
	Role     string     `gorm:"type:varchar(16)"`
	Action   string     `gorm:"type:varchar(32);not null;index"`
	Entity   string     `gorm:"type:varchar(32);not null"`
	EntityID string     `gorm:"type:varchar(64)"`
	Details  string     `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (Log) TableName() string {
	return "audit_logs"
}

// NewLog creates an audit entry. Details are marshaled to JSON; a marshal
// failure leaves Details empty rather than failing the entry.
func NewLog(userID *uuid.UUID, username, role, action, entity, entityID string, details map[string]any) *Log {
	entry := &Log{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Username:   username,
		Role:       role,
		Action:     action,
		Entity:     entity,
		EntityID:   entityID,
	}
	if details != nil {
		if raw, err := json.Marshal(details); err == nil {
			entry.Details = string(raw)
		}
	}
	return entry
}

// Sink accepts audit entries without blocking the caller. Implementations must
// never fail the business operation that produced the entry.
type Sink interface {
	Record(entry *Log)
}

// Repository defines the interface for audit log persistence
type Repository interface {
	// Append inserts an audit entry
	Append(ctx context.Context, entry *Log) error

	// FindRecent lists the newest entries first
	FindRecent(ctx context.Context, limit int) ([]Log, error)
}

// NopSink discards every entry. Used in tests and wherever auditing is not
// configured.
type NopSink struct{}

// Record discards the entry.
func (NopSink) Record(*Log) {}

var _ Sink = NopSink{}
