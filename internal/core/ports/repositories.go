package ports

import (
	"context"
	"errors"
	"time"

	"secure-bank-console/internal/core/domain"
	"secure-bank-console/internal/core/wizard"
)

// ErrWizardNotFound is returned when a wizard session is missing or expired.
var ErrWizardNotFound = errors.New("wizard session not found")

// AuditRepository defines persistence operations for the audit trail.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
	ListByResource(ctx context.Context, resourceType, resourceID string, limit int) ([]domain.AuditLog, error)
}

// WizardStore persists wizard sessions with a sliding TTL.
type WizardStore interface {
	Save(ctx context.Context, session *wizard.Session) error
	Get(ctx context.Context, id string) (*wizard.Session, error)
	Delete(ctx context.Context, id string) error
	// AcquireSubmitLock returns false if another submission holds the lock.
	AcquireSubmitLock(ctx context.Context, id string, ttl time.Duration) (bool, error)
	ReleaseSubmitLock(ctx context.Context, id string) error
}
