package identity

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"secure-bank-console/config"
	"secure-bank-console/internal/core/domain"
	"secure-bank-console/internal/core/ports"
	"secure-bank-console/internal/core/ports/mocks"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testSecret = "test-hmac-secret-at-least-32-bytes!!"

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testConfig(baseURL string) config.IdentityConfig {
	return config.IdentityConfig{
		BaseURL:      baseURL,
		Realm:        "securebank",
		ClientID:     "bank-console",
		ClientSecret: "s3cret",
		RedirectURL:  "http://localhost:4200/app",
		HMACSecret:   testSecret,
	}
}

func newProvider(t *testing.T, cfg config.IdentityConfig, store ports.TokenRevocationStore) *KeycloakProvider {
	t.Helper()
	p, err := NewKeycloakProvider(cfg, store, zerolog.Nop())
	require.NoError(t, err)
	p.now = func() time.Time { return fixedNow }
	return p
}

func claimsFor(iss string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":                "user-1",
		"jti":                "tok-1",
		"iss":                iss,
		"exp":                fixedNow.Add(5 * time.Minute).Unix(),
		"iat":                fixedNow.Add(-time.Minute).Unix(),
		"preferred_username": "jdoe",
		"email":              "jdoe@bank.test",
		"given_name":         "Jane",
		"family_name":        "Doe",
		"realm_access":       map[string]any{"roles": []string{"offline_access"}},
		"resource_access": map[string]any{
			"bank-console": map[string]any{"roles": []string{domain.RoleAccountCreator}},
		},
	}
}

func signHS(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestNewKeycloakProvider_RequiresKey(t *testing.T) {
	cfg := testConfig("")
	cfg.HMACSecret = ""
	_, err := NewKeycloakProvider(cfg, nil, zerolog.Nop())
	assert.Error(t, err)

	cfg.PublicKeyPEM = "not-a-key"
	_, err = NewKeycloakProvider(cfg, nil, zerolog.Nop())
	assert.Error(t, err)
}

func TestCurrentUser_HS256(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockTokenRevocationStore(ctrl)
	cfg := testConfig("http://idp.test")
	p := newProvider(t, cfg, store)

	store.EXPECT().IsRevoked(gomock.Any(), "tok-1").Return(false, nil)

	principal, err := p.CurrentUser(context.Background(), signHS(t, claimsFor(cfg.Issuer()), testSecret))
	require.NoError(t, err)

	assert.True(t, principal.IsAuthenticated())
	assert.Equal(t, "user-1", principal.Subject)
	assert.Equal(t, "jdoe", principal.Username)
	assert.Equal(t, "Jane", principal.FirstName)
	assert.Equal(t, "tok-1", principal.TokenID)
	assert.True(t, principal.HasRole(domain.RoleAccountCreator))
	assert.True(t, principal.HasRole("offline_access"))
	assert.False(t, principal.HasRole(domain.RoleAccountFreezer))
	assert.Equal(t, fixedNow.Add(5*time.Minute).Unix(), principal.ExpiresAt.Unix())
}

func TestCurrentUser_RS256(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	ctrl := gomock.NewController(t)
	store := mocks.NewMockTokenRevocationStore(ctrl)
	store.EXPECT().IsRevoked(gomock.Any(), "tok-1").Return(false, nil)

	cfg := testConfig("")
	cfg.PublicKeyPEM = string(pemBytes)
	p := newProvider(t, cfg, store)

	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claimsFor("anything")).SignedString(key)
	require.NoError(t, err)

	principal, err := p.CurrentUser(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "jdoe@bank.test", principal.Email)

	// HS256 tokens are refused once a public key is configured.
	_, err = p.CurrentUser(context.Background(), signHS(t, claimsFor("anything"), testSecret))
	assert.ErrorIs(t, err, ports.ErrInvalidToken)
}

func TestNormalizePEM_BareKey(t *testing.T) {
	assert.Equal(t, "-----BEGIN PUBLIC KEY-----\nABC\n-----END PUBLIC KEY-----\n", normalizePEM(" ABC "))
	assert.Equal(t, "-----BEGIN PUBLIC KEY-----\nX", normalizePEM("-----BEGIN PUBLIC KEY-----\nX"))
}

func TestCurrentUser_Rejections(t *testing.T) {
	cfg := testConfig("http://idp.test")

	expired := claimsFor(cfg.Issuer())
	expired["exp"] = fixedNow.Add(-time.Hour).Unix()

	noExp := claimsFor(cfg.Issuer())
	delete(noExp, "exp")

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.jwt"},
		{"wrong secret", signHS(t, claimsFor(cfg.Issuer()), "another-secret-another-secret-xx")},
		{"wrong issuer", signHS(t, claimsFor("http://evil.test/realms/securebank"), testSecret)},
		{"expired", signHS(t, expired, testSecret)},
		{"no expiry", signHS(t, noExp, testSecret)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			p := newProvider(t, cfg, mocks.NewMockTokenRevocationStore(ctrl))

			_, err := p.CurrentUser(context.Background(), tt.token)
			assert.ErrorIs(t, err, ports.ErrInvalidToken)
			assert.False(t, p.IsAuthenticated(context.Background(), tt.token))
		})
	}
}

func TestCurrentUser_Revoked(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockTokenRevocationStore(ctrl)
	cfg := testConfig("http://idp.test")
	p := newProvider(t, cfg, store)
	token := signHS(t, claimsFor(cfg.Issuer()), testSecret)

	store.EXPECT().IsRevoked(gomock.Any(), "tok-1").Return(true, nil)
	_, err := p.CurrentUser(context.Background(), token)
	assert.ErrorIs(t, err, ports.ErrTokenRevoked)

	store.EXPECT().IsRevoked(gomock.Any(), "tok-1").Return(false, errors.New("redis down"))
	_, err = p.CurrentUser(context.Background(), token)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrInvalidToken)
}

func TestLogin_BuildsAuthorizationURL(t *testing.T) {
	p := newProvider(t, testConfig("http://idp.test/"), nil)

	u, err := url.Parse(p.Login("xyz"))
	require.NoError(t, err)

	assert.Equal(t, "idp.test", u.Host)
	assert.Equal(t, "/realms/securebank/protocol/openid-connect/auth", u.Path)
	q := u.Query()
	assert.Equal(t, "bank-console", q.Get("client_id"))
	assert.Equal(t, "http://localhost:4200/app", q.Get("redirect_uri"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "xyz", q.Get("state"))
}

func TestLogout(t *testing.T) {
	var gotPath string
	var gotForm url.Values
	status := http.StatusNoContent
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotForm, _ = url.ParseQuery(string(body))
		w.WriteHeader(status)
	}))
	defer srv.Close()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockTokenRevocationStore(ctrl)
	p := newProvider(t, testConfig(srv.URL), store)

	principal := &domain.Principal{TokenID: "tok-1", ExpiresAt: fixedNow.Add(4 * time.Minute), Authenticated: true}

	t.Run("revokes and ends session", func(t *testing.T) {
		store.EXPECT().Revoke(gomock.Any(), "tok-1", 4*time.Minute+clockSkew).Return(nil)

		require.NoError(t, p.Logout(context.Background(), principal, "refresh-1"))
		assert.Equal(t, "/realms/securebank/protocol/openid-connect/logout", gotPath)
		assert.Equal(t, "refresh-1", gotForm.Get("refresh_token"))
		assert.Equal(t, "bank-console", gotForm.Get("client_id"))
		assert.Equal(t, "s3cret", gotForm.Get("client_secret"))
	})

	t.Run("no refresh token skips provider call", func(t *testing.T) {
		gotPath = ""
		store.EXPECT().Revoke(gomock.Any(), "tok-1", gomock.Any()).Return(nil)

		require.NoError(t, p.Logout(context.Background(), principal, ""))
		assert.Empty(t, gotPath)
	})

	t.Run("expired token is not stored", func(t *testing.T) {
		old := &domain.Principal{TokenID: "tok-2", ExpiresAt: fixedNow.Add(-time.Hour)}
		require.NoError(t, p.Logout(context.Background(), old, ""))
	})

	t.Run("provider error", func(t *testing.T) {
		status = http.StatusBadRequest
		store.EXPECT().Revoke(gomock.Any(), "tok-1", gomock.Any()).Return(nil)

		assert.Error(t, p.Logout(context.Background(), principal, "refresh-1"))
	})

	t.Run("revocation error", func(t *testing.T) {
		store.EXPECT().Revoke(gomock.Any(), "tok-1", gomock.Any()).Return(errors.New("redis down"))

		assert.Error(t, p.Logout(context.Background(), principal, "refresh-1"))
	})
}
