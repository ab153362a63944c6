package bankapi

import (
	"context"
	"net/http"

	"secure-bank-console/internal/core/domain"
)

const (
	pathAccounts             = "/accounts"
	pathAccountsByCustomer   = "/accounts/{customerId}"
	pathAccountsByCustomerID = "/accounts/GetByCustomerId/{customerId}"
	pathAccount              = "/accounts/beta/{id}"
	pathAccountFreeze        = "/accounts/{id}/freeze"
	pathSummaryReport        = "/accounts/reports/summary"
)

func (c *Client) listAccounts(ctx context.Context, path, customerID string) ([]domain.Account, error) {
	var out []accountDTO
	r := c.request(ctx).SetPathParam("customerId", customerID).SetResult(&out)
	if err := c.execute(r, http.MethodGet, path); err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(out))
	for _, d := range out {
		accounts = append(accounts, d.toDomain())
	}
	return accounts, nil
}

// ListAccountsByCustomer calls GET /accounts/{customerId}.
func (c *Client) ListAccountsByCustomer(ctx context.Context, customerID string) ([]domain.Account, error) {
	return c.listAccounts(ctx, pathAccountsByCustomer, customerID)
}

// ListAccountsByCustomerID calls GET /accounts/GetByCustomerId/{customerId}.
func (c *Client) ListAccountsByCustomerID(ctx context.Context, customerID string) ([]domain.Account, error) {
	return c.listAccounts(ctx, pathAccountsByCustomerID, customerID)
}

// GetAccount fetches a single account.
func (c *Client) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	var out accountDTO
	r := c.request(ctx).SetPathParam("id", accountID).SetResult(&out)
	if err := c.execute(r, http.MethodGet, pathAccount); err != nil {
		return nil, err
	}
	acc := out.toDomain()
	return &acc, nil
}

// GetSummaryReport returns one row per account type.
func (c *Client) GetSummaryReport(ctx context.Context) ([]domain.AccountSummaryReport, error) {
	var out []domain.AccountSummaryReport
	r := c.request(ctx).SetResult(&out)
	if err := c.execute(r, http.MethodGet, pathSummaryReport); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.AccountSummaryReport{}
	}
	return out, nil
}

// CreateAccount opens a new account.
func (c *Client) CreateAccount(ctx context.Context, req domain.AccountCreateRequest) (*domain.CreateAccountResponse, error) {
	var out accountDTO
	r := c.request(ctx).SetBody(req).SetResult(&out)
	if err := c.execute(r, http.MethodPost, pathAccounts); err != nil {
		return nil, err
	}
	resp := out.toCreateResponse()
	return &resp, nil
}

// FreezeAccount applies a freeze instruction.
func (c *Client) FreezeAccount(ctx context.Context, accountID string, req domain.FreezeAccountRequest) (*domain.FreezeAccountResponse, error) {
	var out freezeResponseDTO
	r := c.request(ctx).
		SetPathParam("id", accountID).
		SetBody(req).
		SetResult(&out)
	if err := c.execute(r, http.MethodPut, pathAccountFreeze); err != nil {
		return nil, err
	}
	resp := out.toDomain()
	return &resp, nil
}
