package ports

import (
	"context"
	"errors"
	"time"

	"secure-bank-console/internal/core/domain"
)

var (
	// ErrInvalidToken covers malformed, expired and wrongly signed tokens.
	ErrInvalidToken = errors.New("invalid access token")
	// ErrTokenRevoked is returned for tokens that were logged out.
	ErrTokenRevoked = errors.New("access token revoked")
)

// IdentityProvider is the single identity abstraction the console relies on.
type IdentityProvider interface {
	// IsAuthenticated reports whether the access token is valid and not revoked.
	IsAuthenticated(ctx context.Context, accessToken string) bool
	// CurrentUser verifies the access token and returns its principal.
	CurrentUser(ctx context.Context, accessToken string) (*domain.Principal, error)
	// Login returns the URL the browser should visit to sign in.
	Login(state string) string
	// Logout ends the provider session and revokes the access token.
	Logout(ctx context.Context, principal *domain.Principal, refreshToken string) error
}

// TokenRevocationStore remembers access tokens that were logged out before expiry.
type TokenRevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
