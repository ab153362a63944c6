package ports

import (
	"context"

	"secure-bank-console/internal/core/domain"
	"secure-bank-console/internal/core/wizard"
)

// AuditService records console mutations.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
	History(ctx context.Context, resourceType, resourceID string, limit int) ([]domain.AuditLog, error)
}

// WizardService drives account-opening wizards on behalf of a principal.
// Every call that changes state persists the session before returning.
type WizardService interface {
	Create(ctx context.Context, p *domain.Principal) (*wizard.Session, error)
	Get(ctx context.Context, p *domain.Principal, id string) (*wizard.Session, error)
	Search(ctx context.Context, p *domain.Principal, id string, patch wizard.SearchPatch) (*wizard.Session, error)
	ResetFilters(ctx context.Context, p *domain.Principal, id string) (*wizard.Session, error)
	SelectCustomer(ctx context.Context, p *domain.Principal, id, customerID string) (*wizard.Session, error)
	DeselectCustomer(ctx context.Context, p *domain.Principal, id string) (*wizard.Session, error)
	Next(ctx context.Context, p *domain.Principal, id string) (*wizard.Session, error)
	Back(ctx context.Context, p *domain.Principal, id string) (*wizard.Session, error)
	ApplyPreset(ctx context.Context, p *domain.Principal, id string, code domain.AccountType) (*wizard.Session, error)
	UpdateAccount(ctx context.Context, p *domain.Principal, id string, patch wizard.AccountPatch) (*wizard.Session, error)
	Confirm(ctx context.Context, p *domain.Principal, id string) (*wizard.Session, error)
	Submit(ctx context.Context, p *domain.Principal, id string) (*wizard.Session, error)
	Reset(ctx context.Context, p *domain.Principal, id string) (*wizard.Session, error)
}

// CustomerService covers customer lookup and profile maintenance.
type CustomerService interface {
	List(ctx context.Context, criteria wizard.Criteria) (*domain.CustomerList, error)
	Get(ctx context.Context, customerID string) (*domain.Customer, error)
	UpdateProfile(ctx context.Context, customerID string, form domain.CustomerProfileForm) (*domain.Customer, error)
}

// AccountService covers account lookups.
type AccountService interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	ListByCustomer(ctx context.Context, customerID string) (*domain.AccountPortfolio, error)
	ListForPrincipal(ctx context.Context, p *domain.Principal) (*domain.AccountPortfolio, error)
}

// FreezeCommand is a freeze instruction plus the operator's confirmation.
type FreezeCommand struct {
	AccountID    string
	Form         domain.FreezeForm
	Confirmation domain.FreezeConfirmation
}

// FreezeService freezes accounts.
type FreezeService interface {
	Freeze(ctx context.Context, cmd FreezeCommand) (*domain.FreezeAccountResponse, error)
}

// ReportService builds portfolio reports.
type ReportService interface {
	Summary(ctx context.Context) (*domain.SummaryOverview, error)
}
