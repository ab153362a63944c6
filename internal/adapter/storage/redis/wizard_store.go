package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"secure-bank-console/internal/core/ports"
	"secure-bank-console/internal/core/wizard"

	goredis "github.com/redis/go-redis/v9"
)

var _ ports.WizardStore = (*WizardStore)(nil)

// WizardStore keeps wizard sessions as JSON documents. Every read and
// write pushes the expiry out by the configured TTL.
type WizardStore struct {
	client     goredis.UniversalClient
	prefix     string
	lockPrefix string
	ttl        time.Duration
}

func NewWizardStore(client goredis.UniversalClient, ttl time.Duration) *WizardStore {
	return &WizardStore{
		client:     client,
		prefix:     "wizard:",
		lockPrefix: "wizard-submit:",
		ttl:        ttl,
	}
}

func (s *WizardStore) Save(ctx context.Context, session *wizard.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding wizard session: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+session.ID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis wizard save: %w", err)
	}
	return nil
}

// Get loads a session and refreshes its TTL. Missing or expired sessions
// yield ports.ErrWizardNotFound.
func (s *WizardStore) Get(ctx context.Context, id string) (*wizard.Session, error) {
	payload, err := s.client.GetEx(ctx, s.prefix+id, s.ttl).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, ports.ErrWizardNotFound
		}
		return nil, fmt.Errorf("redis wizard get: %w", err)
	}

	var session wizard.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("decoding wizard session %s: %w", id, err)
	}
	return &session, nil
}

func (s *WizardStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.prefix+id, s.lockPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis wizard delete: %w", err)
	}
	return nil
}

// AcquireSubmitLock takes the per-wizard submission lock with SET NX.
// It returns false when another submission already holds it.
func (s *WizardStore) AcquireSubmitLock(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	result, err := s.client.SetArgs(ctx, s.lockPrefix+id, time.Now().UnixNano(), goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if err == goredis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("redis wizard lock: %w", err)
	}
	return result == "OK", nil
}

func (s *WizardStore) ReleaseSubmitLock(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.lockPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis wizard unlock: %w", err)
	}
	return nil
}
