package redis

import (
	"context"
	"fmt"
	"time"

	"secure-bank-console/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

var _ ports.TokenRevocationStore = (*RevocationStore)(nil)

// RevocationStore remembers logged-out access token ids until they would
// have expired anyway.
type RevocationStore struct {
	client goredis.UniversalClient
	prefix string
}

func NewRevocationStore(client goredis.UniversalClient) *RevocationStore {
	return &RevocationStore{
		client: client,
		prefix: "revoked:",
	}
}

// Revoke marks tokenID as revoked for ttl. Revoking twice keeps the first entry.
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	err := s.client.SetArgs(ctx, s.prefix+tokenID, time.Now().Unix(), goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Err()
	if err != nil && err != goredis.Nil {
		return fmt.Errorf("redis revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenID was revoked.
func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.prefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("redis revocation lookup: %w", err)
	}
	return n > 0, nil
}
