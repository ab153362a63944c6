package postgres

import (
	"context"
	"fmt"

	"secure-bank-console/internal/core/domain"
	"secure-bank-console/internal/core/ports"
)

const defaultHistoryLimit = 50

type auditRepo struct {
	pool Pool
}

// NewAuditRepository creates a PostgreSQL-backed AuditRepository.
func NewAuditRepository(pool Pool) ports.AuditRepository {
	return &auditRepo{pool: pool}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r *auditRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO console_audit_logs (id, actor, action, resource_type, resource_id, details, ip_address, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.Actor, string(entry.Action), entry.ResourceType,
		nullable(entry.ResourceID), nullable(entry.Details), nullable(entry.IPAddress), entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// ListByResource returns the newest entries for one resource.
func (r *auditRepo) ListByResource(ctx context.Context, resourceType, resourceID string, limit int) ([]domain.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = defaultHistoryLimit
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, actor, action, resource_type, resource_id, details::text, ip_address, created_at
		 FROM console_audit_logs
		 WHERE resource_type = $1 AND resource_id = $2
		 ORDER BY created_at DESC
		 LIMIT $3`,
		resourceType, resourceID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	entries := []domain.AuditLog{}
	for rows.Next() {
		var (
			e                         domain.AuditLog
			action                    string
			resID, details, ipAddress *string
		)
		if err := rows.Scan(&e.ID, &e.Actor, &action, &e.ResourceType, &resID, &details, &ipAddress, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log row: %w", err)
		}
		e.Action = domain.AuditAction(action)
		e.ResourceID = deref(resID)
		e.Details = deref(details)
		e.IPAddress = deref(ipAddress)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit log rows: %w", err)
	}
	return entries, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
