package ports

import (
	"context"
	"errors"
	"fmt"

	"secure-bank-console/internal/core/domain"
)

// ErrBackendNotFound is returned when the banking backend answers 404.
var ErrBackendNotFound = errors.New("resource not found in banking backend")

// BackendError is a non-2xx answer from the banking backend.
type BackendError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("bank api %s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// CustomerAPI is the customer half of the banking backend.
type CustomerAPI interface {
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error)
	GetCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error)
	UpdateCustomerProfile(ctx context.Context, req domain.UpdateCustomerRequest) (*domain.Customer, error)
}

// AccountAPI is the account half of the banking backend.
type AccountAPI interface {
	ListAccountsByCustomer(ctx context.Context, customerID string) ([]domain.Account, error)
	ListAccountsByCustomerID(ctx context.Context, customerID string) ([]domain.Account, error)
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	GetSummaryReport(ctx context.Context) ([]domain.AccountSummaryReport, error)
	CreateAccount(ctx context.Context, req domain.AccountCreateRequest) (*domain.CreateAccountResponse, error)
	FreezeAccount(ctx context.Context, accountID string, req domain.FreezeAccountRequest) (*domain.FreezeAccountResponse, error)
}

type accessTokenKey struct{}

// ContextWithAccessToken stores the caller's bearer token so outbound calls can forward it.
func ContextWithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey{}, token)
}

// AccessTokenFrom returns the bearer token stored by ContextWithAccessToken.
func AccessTokenFrom(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(accessTokenKey{}).(string)
	return token, ok && token != ""
}
