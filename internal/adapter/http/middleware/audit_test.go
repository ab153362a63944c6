package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"secure-bank-console/internal/core/domain"
	"secure-bank-console/internal/core/ports/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuditLog_FreezeRecordsActorAndResource(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAudit := mocks.NewMockAuditService(ctrl)

	var got *domain.AuditLog
	mockAudit.EXPECT().Log(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entry *domain.AuditLog) {
			got = entry
		},
	)

	r := gin.New()
	r.Use(RequestID(), withPrincipal(testPrincipal(domain.RoleAccountFreezer)), AuditLog(mockAudit))
	r.PUT("/api/v1/accounts/:id/freeze", func(c *gin.Context) {
		SetAuditDetails(c, map[string]any{"freezeType": "FULL"})
		SetAuditDetails(c, map[string]any{"reference": "FRZ-1"})
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/v1/accounts/ACC-42/freeze", nil))
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, got)
	assert.Equal(t, domain.AuditActionAccountFreeze, got.Action)
	assert.Equal(t, domain.ResourceAccount, got.ResourceType)
	assert.Equal(t, "ACC-42", got.ResourceID)
	assert.Equal(t, "jane.officer", got.Actor)
	assert.False(t, got.CreatedAt.IsZero())

	var details map[string]any
	require.NoError(t, json.Unmarshal([]byte(got.Details), &details))
	assert.Equal(t, "FULL", details["freezeType"])
	assert.Equal(t, "FRZ-1", details["reference"])
	assert.Equal(t, "PUT", details["method"])
	assert.Equal(t, w.Header().Get(HeaderRequestID), details["request_id"])
}

func TestAuditLog_ResourceOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAudit := mocks.NewMockAuditService(ctrl)

	var got *domain.AuditLog
	mockAudit.EXPECT().Log(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entry *domain.AuditLog) { got = entry },
	)

	r := gin.New()
	r.Use(withPrincipal(testPrincipal()), AuditLog(mockAudit))
	r.POST("/api/v1/wizards/:id/submit", func(c *gin.Context) {
		SetAuditResource(c, "ACC-9001")
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/wizards/wiz-1/submit", nil))

	require.NotNil(t, got)
	assert.Equal(t, domain.AuditActionAccountCreate, got.Action)
	assert.Equal(t, "ACC-9001", got.ResourceID)
}

func TestAuditLog_SkipsGET(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAudit := mocks.NewMockAuditService(ctrl)
	// No expectations: Log must not be called for reads.

	r := gin.New()
	r.Use(AuditLog(mockAudit))
	r.GET("/api/v1/accounts/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"accountNumber": "ACC-1"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/accounts/ACC-1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuditLog_SkipsFailedRequests(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAudit := mocks.NewMockAuditService(ctrl)

	r := gin.New()
	r.Use(AuditLog(mockAudit))
	r.PUT("/api/v1/accounts/:id/freeze", func(c *gin.Context) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "bad"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/v1/accounts/ACC-1/freeze", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAuditLog_SkipsUnmappedMutations(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAudit := mocks.NewMockAuditService(ctrl)

	r := gin.New()
	r.Use(AuditLog(mockAudit))
	r.POST("/api/v1/wizards/:id/search", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/wizards/w/search", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMapPathToAction(t *testing.T) {
	tests := []struct {
		route    string
		method   string
		action   domain.AuditAction
		resource string
	}{
		{"/api/v1/accounts/:id/freeze", "PUT", domain.AuditActionAccountFreeze, domain.ResourceAccount},
		{"/api/v1/customers/:id/profile", "PUT", domain.AuditActionProfileUpdate, domain.ResourceCustomer},
		{"/api/v1/wizards", "POST", domain.AuditActionWizardCreate, domain.ResourceWizard},
		{"/api/v1/wizards/:id/submit", "POST", domain.AuditActionAccountCreate, domain.ResourceAccount},
		{"/api/v1/auth/logout", "POST", domain.AuditActionLogout, domain.ResourceSession},
		{"/api/v1/accounts/:id/freeze", "POST", "", ""},
		{"/unknown", "POST", "", ""},
	}

	for _, tc := range tests {
		action, resource := mapPathToAction(tc.route, tc.method)
		assert.Equal(t, tc.action, action, "route=%s method=%s", tc.route, tc.method)
		assert.Equal(t, tc.resource, resource, "route=%s method=%s", tc.route, tc.method)
	}
}
