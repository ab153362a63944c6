// Package identity verifies access tokens issued by the Keycloak realm and
// drives the OIDC login and logout endpoints.
package identity

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"secure-bank-console/config"
	"secure-bank-console/internal/core/domain"
	"secure-bank-console/internal/core/ports"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

var _ ports.IdentityProvider = (*KeycloakProvider)(nil)

const clockSkew = 30 * time.Second

type roleSet struct {
	Roles []string `json:"roles"`
}

type keycloakClaims struct {
	jwt.RegisteredClaims
	PreferredUsername string             `json:"preferred_username"`
	Email             string             `json:"email"`
	GivenName         string             `json:"given_name"`
	FamilyName        string             `json:"family_name"`
	RealmAccess       roleSet            `json:"realm_access"`
	ResourceAccess    map[string]roleSet `json:"resource_access"`
}

// KeycloakProvider implements ports.IdentityProvider against one realm.
type KeycloakProvider struct {
	cfg     config.IdentityConfig
	http    *resty.Client
	revoked ports.TokenRevocationStore
	log     zerolog.Logger

	rsaKey  *rsa.PublicKey
	hmacKey []byte
	now     func() time.Time
}

// NewKeycloakProvider builds a provider. The realm public key takes
// precedence over the shared HMAC secret; one of them must be set.
func NewKeycloakProvider(cfg config.IdentityConfig, revoked ports.TokenRevocationStore, log zerolog.Logger) (*KeycloakProvider, error) {
	p := &KeycloakProvider{
		cfg:     cfg,
		http:    resty.New().SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).SetTimeout(10 * time.Second),
		revoked: revoked,
		log:     log,
		now:     time.Now,
	}

	switch {
	case cfg.PublicKeyPEM != "":
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(normalizePEM(cfg.PublicKeyPEM)))
		if err != nil {
			return nil, fmt.Errorf("parsing realm public key: %w", err)
		}
		p.rsaKey = key
	case cfg.HMACSecret != "":
		p.hmacKey = []byte(cfg.HMACSecret)
	default:
		return nil, errors.New("identity: either public_key_pem or hmac_secret is required")
	}

	return p, nil
}

// normalizePEM accepts the bare base64 key Keycloak shows in its admin console.
func normalizePEM(key string) string {
	key = strings.TrimSpace(key)
	if strings.HasPrefix(key, "-----BEGIN") {
		return key
	}
	return "-----BEGIN PUBLIC KEY-----\n" + key + "\n-----END PUBLIC KEY-----\n"
}

func (p *KeycloakProvider) keyFunc(token *jwt.Token) (any, error) {
	switch token.Method.(type) {
	case *jwt.SigningMethodRSA:
		if p.rsaKey != nil {
			return p.rsaKey, nil
		}
	case *jwt.SigningMethodHMAC:
		if p.hmacKey != nil {
			return p.hmacKey, nil
		}
	}
	return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
}

func (p *KeycloakProvider) parse(accessToken string) (*keycloakClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockSkew),
		jwt.WithTimeFunc(p.now),
	}
	if iss := p.cfg.Issuer(); iss != "" {
		opts = append(opts, jwt.WithIssuer(iss))
	}

	claims := &keycloakClaims{}
	if _, err := jwt.ParseWithClaims(accessToken, claims, p.keyFunc, opts...); err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrInvalidToken, err)
	}
	return claims, nil
}

// CurrentUser verifies the token and maps its claims to a principal.
func (p *KeycloakProvider) CurrentUser(ctx context.Context, accessToken string) (*domain.Principal, error) {
	if accessToken == "" {
		return nil, ports.ErrInvalidToken
	}

	claims, err := p.parse(accessToken)
	if err != nil {
		return nil, err
	}

	if claims.ID != "" {
		revoked, err := p.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("checking token revocation: %w", err)
		}
		if revoked {
			return nil, ports.ErrTokenRevoked
		}
	}

	return toPrincipal(claims), nil
}

// IsAuthenticated reports whether the token would yield a principal.
func (p *KeycloakProvider) IsAuthenticated(ctx context.Context, accessToken string) bool {
	principal, err := p.CurrentUser(ctx, accessToken)
	return err == nil && principal.IsAuthenticated()
}

func toPrincipal(c *keycloakClaims) *domain.Principal {
	resource := make(map[string][]string, len(c.ResourceAccess))
	for client, set := range c.ResourceAccess {
		resource[client] = set.Roles
	}

	var expires time.Time
	if c.ExpiresAt != nil {
		expires = c.ExpiresAt.Time
	}

	return &domain.Principal{
		Subject:       c.Subject,
		Username:      c.PreferredUsername,
		Email:         c.Email,
		FirstName:     c.GivenName,
		LastName:      c.FamilyName,
		RealmRoles:    c.RealmAccess.Roles,
		ResourceRoles: resource,
		Authenticated: true,
		ExpiresAt:     expires,
		TokenID:       c.ID,
	}
}

func (p *KeycloakProvider) realmPath(suffix string) string {
	return fmt.Sprintf("/realms/%s/protocol/openid-connect/%s", url.PathEscape(p.cfg.Realm), suffix)
}

// Login returns the authorization endpoint URL for the code flow.
func (p *KeycloakProvider) Login(state string) string {
	q := url.Values{}
	q.Set("client_id", p.cfg.ClientID)
	q.Set("redirect_uri", p.cfg.RedirectURL)
	q.Set("response_type", "code")
	q.Set("scope", "openid profile email")
	if state != "" {
		q.Set("state", state)
	}
	return strings.TrimSuffix(p.cfg.BaseURL, "/") + p.realmPath("auth") + "?" + q.Encode()
}

// Logout revokes the access token for the rest of its lifetime and, when a
// refresh token is supplied, ends the provider session too.
func (p *KeycloakProvider) Logout(ctx context.Context, principal *domain.Principal, refreshToken string) error {
	if principal != nil && principal.TokenID != "" {
		ttl := principal.ExpiresAt.Sub(p.now()) + clockSkew
		if ttl > 0 {
			if err := p.revoked.Revoke(ctx, principal.TokenID, ttl); err != nil {
				return fmt.Errorf("revoking access token: %w", err)
			}
		}
	}

	if refreshToken == "" {
		return nil
	}

	form := map[string]string{
		"client_id":     p.cfg.ClientID,
		"refresh_token": refreshToken,
	}
	if p.cfg.ClientSecret != "" {
		form["client_secret"] = p.cfg.ClientSecret
	}

	resp, err := p.http.R().SetContext(ctx).SetFormData(form).Post(p.realmPath("logout"))
	if err != nil {
		return fmt.Errorf("ending identity session: %w", err)
	}
	if resp.IsError() {
		p.log.Warn().Int("status", resp.StatusCode()).Msg("Identity provider rejected logout")
		return fmt.Errorf("ending identity session: status %d", resp.StatusCode())
	}
	return nil
}
