package bankapi

import (
	"context"
	"fmt"
)

// HealthCheck implements ports.HealthChecker for the banking backend.
// Any HTTP answer counts as reachable; only transport failures are reported.
type HealthCheck struct {
	client *Client
}

func NewHealthCheck(client *Client) *HealthCheck {
	return &HealthCheck{client: client}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	if _, err := h.client.request(ctx).Head("/"); err != nil {
		return fmt.Errorf("bank api unreachable: %w", err)
	}
	return nil
}

func (h *HealthCheck) Name() string {
	return "bank_api"
}
