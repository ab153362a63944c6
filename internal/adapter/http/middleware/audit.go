package middleware

import (
	"encoding/json"
	"maps"
	"net/http"
	"time"

	"secure-bank-console/internal/core/domain"
	"secure-bank-console/internal/core/ports"
	"secure-bank-console/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxAuditResourceID = "audit_resource_id"
	ctxAuditDetails    = "audit_details"
)

// SetAuditResource overrides the audited resource id, for routes whose
// resource only exists once the handler has run.
func SetAuditResource(c *gin.Context, id string) {
	c.Set(ctxAuditResourceID, id)
}

// SetAuditDetails attaches extra fields to the audit entry of this request.
func SetAuditDetails(c *gin.Context, details map[string]any) {
	if existing, ok := c.Get(ctxAuditDetails); ok {
		if m, ok := existing.(map[string]any); ok {
			maps.Copy(m, details)
			return
		}
	}
	c.Set(ctxAuditDetails, maps.Clone(details))
}

// AuditLog creates an audit middleware that records successful console mutations.
// Routes are matched on their registered pattern, not the raw path.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}

		action, resourceType := mapPathToAction(c.FullPath(), c.Request.Method)
		if action == "" {
			return
		}

		actor := ""
		if p, ok := PrincipalFrom(c); ok {
			actor = p.Username
			if actor == "" {
				actor = p.Subject
			}
		}

		resourceID := c.Param("id")
		if id := c.GetString(ctxAuditResourceID); id != "" {
			resourceID = id
		}

		fields := map[string]any{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": status,
		}
		if requestID := c.GetString(response.RequestIDKey); requestID != "" {
			fields["request_id"] = requestID
		}
		if extra, ok := c.Get(ctxAuditDetails); ok {
			if m, ok := extra.(map[string]any); ok {
				maps.Copy(fields, m)
			}
		}
		details, _ := json.Marshal(fields)

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			Actor:        actor,
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now(),
		})
	}
}

func mapPathToAction(route, method string) (domain.AuditAction, string) {
	switch {
	case route == "/api/v1/accounts/:id/freeze" && method == http.MethodPut:
		return domain.AuditActionAccountFreeze, domain.ResourceAccount
	case route == "/api/v1/customers/:id/profile" && method == http.MethodPut:
		return domain.AuditActionProfileUpdate, domain.ResourceCustomer
	case route == "/api/v1/wizards" && method == http.MethodPost:
		return domain.AuditActionWizardCreate, domain.ResourceWizard
	case route == "/api/v1/wizards/:id/submit" && method == http.MethodPost:
		return domain.AuditActionAccountCreate, domain.ResourceAccount
	case route == "/api/v1/auth/logout" && method == http.MethodPost:
		return domain.AuditActionLogout, domain.ResourceSession
	}
	return "", ""
}
