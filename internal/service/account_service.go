package service

import (
	"context"

	"secure-bank-console/internal/core/domain"
	"secure-bank-console/internal/core/ports"
	"secure-bank-console/pkg/apperror"

	"github.com/rs/zerolog"
)

const accountsPage = "/app/accounts"

type accountService struct {
	accounts  ports.AccountAPI
	customers ports.CustomerAPI
	log       zerolog.Logger
}

func NewAccountService(accounts ports.AccountAPI, customers ports.CustomerAPI, log zerolog.Logger) ports.AccountService {
	return &accountService{accounts: accounts, customers: customers, log: log}
}

func (s *accountService) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	if accountID == "" {
		return nil, apperror.ErrMissingParam("accountId", accountsPage)
	}
	acc, err := s.accounts.GetAccount(ctx, accountID)
	if err != nil {
		s.log.Error().Err(err).Str("account_id", accountID).Msg("Failed to load account")
		return nil, backendError(err, "account")
	}
	return acc, nil
}

// ListByCustomer returns a customer's accounts with totals.
func (s *accountService) ListByCustomer(ctx context.Context, customerID string) (*domain.AccountPortfolio, error) {
	if customerID == "" {
		return nil, apperror.ErrMissingParam("customerId", accountsPage)
	}
	accounts, err := s.accounts.ListAccountsByCustomer(ctx, customerID)
	if err != nil {
		s.log.Error().Err(err).Str("customer_id", customerID).Msg("Failed to load accounts")
		return nil, backendError(err, "accounts")
	}
	portfolio := domain.SummarizeAccounts(customerID, accounts)
	return &portfolio, nil
}

// ListForPrincipal resolves the signed-in user's customer record by email
// and returns that customer's accounts.
func (s *accountService) ListForPrincipal(ctx context.Context, p *domain.Principal) (*domain.AccountPortfolio, error) {
	email := p.ContactEmail()
	if email == "" {
		return nil, apperror.Validation("signed-in identity has no email address")
	}

	customer, err := s.customers.GetCustomerByEmail(ctx, email)
	if err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("Failed to resolve customer by email")
		return nil, backendError(err, "customer")
	}

	accounts, err := s.accounts.ListAccountsByCustomerID(ctx, customer.CustomerID)
	if err != nil {
		s.log.Error().Err(err).Str("customer_id", customer.CustomerID).Msg("Failed to load accounts")
		return nil, backendError(err, "accounts")
	}
	portfolio := domain.SummarizeAccounts(customer.CustomerID, accounts)
	return &portfolio, nil
}
