package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionAccountCreate AuditAction = "ACCOUNT_CREATE"
	AuditActionAccountFreeze AuditAction = "ACCOUNT_FREEZE"
	AuditActionProfileUpdate AuditAction = "PROFILE_UPDATE"
	AuditActionWizardCreate  AuditAction = "WIZARD_CREATE"
	AuditActionLogout        AuditAction = "LOGOUT"
)

// Audited resource types.
const (
	ResourceAccount  = "account"
	ResourceCustomer = "customer"
	ResourceWizard   = "wizard"
	ResourceSession  = "session"
)

// AuditLog records a single console mutation performed by a staff member.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	Actor        string      `json:"actor"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
