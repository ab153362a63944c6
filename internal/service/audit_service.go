package service

import (
	"context"

	"secure-bank-console/internal/core/domain"
	"secure-bank-console/internal/core/ports"
	"secure-bank-console/pkg/apperror"

	"github.com/rs/zerolog"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService creates a new audit service.
// If repo is nil, audit entries are only written to the logger.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Log records an audit entry asynchronously (fire-and-forget).
func (s *auditService) Log(ctx context.Context, entry *domain.AuditLog) {
	go func() {
		s.log.Info().
			Str("actor", entry.Actor).
			Str("action", string(entry.Action)).
			Str("resource_type", entry.ResourceType).
			Str("resource_id", entry.ResourceID).
			Str("ip", entry.IPAddress).
			Msg("audit")

		if s.repo == nil {
			return
		}
		if err := s.repo.Create(context.WithoutCancel(ctx), entry); err != nil {
			s.log.Warn().Err(err).Str("action", string(entry.Action)).Msg("failed to persist audit log")
		}
	}()
}

// History returns the newest audit entries for a resource.
func (s *auditService) History(ctx context.Context, resourceType, resourceID string, limit int) ([]domain.AuditLog, error) {
	if resourceID == "" {
		return nil, apperror.Validation("resource id is required")
	}
	if s.repo == nil {
		return []domain.AuditLog{}, nil
	}
	entries, err := s.repo.ListByResource(ctx, resourceType, resourceID, limit)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return entries, nil
}
