package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"secure-bank-console/internal/core/domain"
	"secure-bank-console/internal/core/ports"
	"secure-bank-console/internal/core/ports/mocks"
	"secure-bank-console/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testPrincipal(roles ...string) *domain.Principal {
	return &domain.Principal{
		Subject:       "sub-1",
		Username:      "jane.officer",
		Email:         "jane@bank.test",
		ResourceRoles: map[string][]string{"bank-console": roles},
		Authenticated: true,
	}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.ErrorResponse {
	t.Helper()
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(response.RequestIDKey))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	id := w.Header().Get(HeaderRequestID)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, w.Body.String())
}

func TestRequestID_ReusesValidInbound(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	inbound := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderRequestID, inbound)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, inbound, w.Header().Get(HeaderRequestID))

	req = httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderRequestID, "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "<script>", w.Header().Get(HeaderRequestID))
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	idp := mocks.NewMockIdentityProvider(ctrl)

	r := gin.New()
	r.GET("/test", Authenticate(idp, zerolog.Nop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for _, header := range []string{"", "Basic abc", "Bearer ", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		assert.Equal(t, "AUTH_001", decodeError(t, w).ErrorCode)
	}
}

func TestAuthenticate_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	idp := mocks.NewMockIdentityProvider(ctrl)
	p := testPrincipal(domain.RoleCustomerViewer)
	idp.EXPECT().CurrentUser(gomock.Any(), "tok-123").Return(p, nil)

	r := gin.New()
	r.GET("/test", Authenticate(idp, zerolog.Nop()), func(c *gin.Context) {
		got, ok := PrincipalFrom(c)
		require.True(t, ok)
		assert.Same(t, p, got)
		assert.Equal(t, "tok-123", c.GetString(CtxAccessToken))

		token, ok := ports.AccessTokenFrom(c.Request.Context())
		assert.True(t, ok)
		assert.Equal(t, "tok-123", token)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "bearer tok-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticate_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid", fmt.Errorf("%w: token is expired", ports.ErrInvalidToken), http.StatusUnauthorized, "AUTH_002"},
		{"revoked", ports.ErrTokenRevoked, http.StatusUnauthorized, "AUTH_003"},
		{"provider down", errors.New("redis: connection refused"), http.StatusBadGateway, "AUTH_004"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			idp := mocks.NewMockIdentityProvider(ctrl)
			idp.EXPECT().CurrentUser(gomock.Any(), "tok").Return(nil, tc.err)

			r := gin.New()
			r.GET("/test", Authenticate(idp, zerolog.Nop()), func(c *gin.Context) {
				t.Fatal("handler must not run")
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("Authorization", "Bearer tok")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, decodeError(t, w).ErrorCode)
		})
	}
}

func TestAuthenticate_UnauthenticatedPrincipal(t *testing.T) {
	ctrl := gomock.NewController(t)
	idp := mocks.NewMockIdentityProvider(ctrl)
	idp.EXPECT().CurrentUser(gomock.Any(), "tok").Return(&domain.Principal{Subject: "x"}, nil)

	r := gin.New()
	r.GET("/test", Authenticate(idp, zerolog.Nop()), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func withPrincipal(p *domain.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p != nil {
			c.Set(CtxPrincipal, p)
		}
		c.Next()
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name      string
		principal *domain.Principal
		role      string
		status    int
		code      string
	}{
		{"resource role", testPrincipal(domain.RoleAccountFreezer), domain.RoleAccountFreezer, http.StatusOK, ""},
		{"realm role", &domain.Principal{Authenticated: true, RealmRoles: []string{domain.RoleReportViewer}}, domain.RoleReportViewer, http.StatusOK, ""},
		{"missing role", testPrincipal(domain.RoleCustomerViewer), domain.RoleAccountFreezer, http.StatusForbidden, "AUTH_005"},
		{"empty role denies", testPrincipal(domain.RoleCustomerViewer), "", http.StatusForbidden, "AUTH_005"},
		{"no principal", nil, domain.RoleCustomerViewer, http.StatusUnauthorized, "AUTH_001"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/test", withPrincipal(tc.principal), RequireRole(tc.role), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

			assert.Equal(t, tc.status, w.Code)
			if tc.code != "" {
				body := decodeError(t, w)
				assert.Equal(t, tc.code, body.ErrorCode)
				if tc.code == "AUTH_005" {
					assert.Equal(t, "/unauthorized", body.RedirectTo)
				}
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery(zerolog.Nop()))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "SYS_001", body.ErrorCode)
	assert.Equal(t, w.Header().Get(HeaderRequestID), body.RequestID)
}

type captureWriter struct {
	lines []map[string]any
}

func (cw *captureWriter) Write(p []byte) (int, error) {
	var m map[string]any
	if err := json.Unmarshal(p, &m); err == nil {
		cw.lines = append(cw.lines, m)
	}
	return len(p), nil
}

func TestRequestLogger_LevelsByStatus(t *testing.T) {
	cw := &captureWriter{}
	log := zerolog.New(cw)

	r := gin.New()
	r.Use(RequestLogger(log))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusUnprocessableEntity) })
	r.GET("/fail", withPrincipal(testPrincipal()), func(c *gin.Context) { c.Status(http.StatusBadGateway) })

	for _, path := range []string{"/ok", "/bad", "/fail"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	require.Len(t, cw.lines, 3)
	assert.Equal(t, "info", cw.lines[0]["level"])
	assert.Equal(t, "warn", cw.lines[1]["level"])
	assert.Equal(t, "error", cw.lines[2]["level"])
	assert.Equal(t, "/fail", cw.lines[2]["path"])
	assert.Equal(t, "jane.officer", cw.lines[2]["user"])
	assert.EqualValues(t, http.StatusBadGateway, cw.lines[2]["status"])
}

func TestPrincipalFrom_WrongType(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil).WithContext(context.Background())
	c.Set(CtxPrincipal, "not a principal")

	_, ok := PrincipalFrom(c)
	assert.False(t, ok)
}
