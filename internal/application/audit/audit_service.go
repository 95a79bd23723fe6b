package audit

import (
	"context"
	"time"

	"github.com/dairyops/backend/internal/domain/audit"
	"github.com/google/uuid"
)

// LogResponse represents one audit entry in responses
type LogResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id"`
	Username  string     `json:"username"`
	Role      string     `json:"role"`
	Action    string     `json:"action"`
	Entity    string     `json:"entity"`
	EntityID  string     `json:"entity_id"`
	Details   string     `json:"details"`
	CreatedAt time.Time  `json:"created_at"`
}

// AuditService serves the audit trail for review
type AuditService struct {
	logs audit.Repository
}

// NewAuditService creates a new AuditService
func NewAuditService(logs audit.Repository) *AuditService {
	return &AuditService{logs: logs}
}

// List returns the newest audit entries first
func (s *AuditService) List(ctx context.Context, limit int) ([]LogResponse, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	entries, err := s.logs.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]LogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, LogResponse{
			ID:        e.ID,
			UserID:    e.UserID,
			Username:  e.Username,
			Role:      e.Role,
			Action:    e.Action,
			Entity:    e.Entity,
			EntityID:  e.EntityID,
			Details:   e.Details,
			CreatedAt: e.CreatedAt,
		})
	}
	return out, nil
}
