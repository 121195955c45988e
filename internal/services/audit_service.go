package services

import (
	"context"

	"github.com/tewodrosm/sera-api/internal/models"
	"github.com/tewodrosm/sera-api/internal/repository"
	"github.com/tewodrosm/sera-api/pkg/logger"
)

// AuditService records user-initiated actions. Failures are logged but
// never propagated; an audit miss must not fail the operation itself.
type AuditService struct {
	auditRepo repository.AuditRepository
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo repository.AuditRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// Log records an audit entry
func (s *AuditService) Log(ctx context.Context, userID uint, username, action, entityType string, entityID uint, details, ip string) {
	entry := &models.AuditLog{
		Username:   username,
		Action:     action,
		EntityType: entityType,
		Details:    details,
		IPAddress:  ip,
	}
	if userID != 0 {
		entry.UserID = &userID
	}
	if entityID != 0 {
		entry.EntityID = &entityID
	}

	if err := s.auditRepo.Create(ctx, entry); err != nil {
		logger.Error("failed to write audit log", "action", action, "error", err)
	}
}

// List retrieves audit logs with filters
func (s *AuditService) List(ctx context.Context, query *repository.ListQuery) ([]models.AuditLog, int64, error) {
	return s.auditRepo.List(ctx, query)
}

// Recent returns the most recent audit entries for the dashboard feed
func (s *AuditService) Recent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.auditRepo.Recent(ctx, limit)
}
