package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType identifies a bank account product.
type AccountType string

const (
	AccountTypeChecking    AccountType = "CHECKING"
	AccountTypeSavings     AccountType = "SAVINGS"
	AccountTypeBusiness    AccountType = "BUSINESS"
	AccountTypeInvestment  AccountType = "INVESTMENT"
	AccountTypeMoneyMarket AccountType = "MONEY_MARKET"
	AccountTypeCurrent     AccountType = "CURRENT"
	AccountTypeLoan        AccountType = "LOAN"
)

// AccountStatus represents the operational status of an account.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "ACTIVE"
	AccountStatusInactive  AccountStatus = "INACTIVE"
	AccountStatusFrozen    AccountStatus = "FROZEN"
	AccountStatusSuspended AccountStatus = "SUSPENDED"
	AccountStatusClosed    AccountStatus = "CLOSED"
)

func AccountStatuses() []AccountStatus {
	return []AccountStatus{AccountStatusActive, AccountStatusInactive, AccountStatusFrozen, AccountStatusSuspended, AccountStatusClosed}
}

// Account is an account as returned by the banking backend.
type Account struct {
	AccountNumber         string          `json:"accountNumber"`
	CustomerID            string          `json:"customerId"`
	AccountType           AccountType     `json:"accountType"`
	Balance               decimal.Decimal `json:"balance"`
	DailyTransactionLimit decimal.Decimal `json:"dailyTransactionLimit"`
	Status                AccountStatus   `json:"status"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

func (a *Account) IsFrozen() bool {
	return a.Status == AccountStatusFrozen
}

// UsagePercentage is |balance| / daily limit as a percentage, capped at 100.
// Loan accounts and accounts without a limit report 0.
func (a *Account) UsagePercentage() decimal.Decimal {
	if a.AccountType == AccountTypeLoan || a.DailyTransactionLimit.IsZero() {
		return decimal.Zero
	}
	pct := a.Balance.Abs().Div(a.DailyTransactionLimit).Mul(decimal.NewFromInt(100))
	return decimal.Min(pct, decimal.NewFromInt(100))
}

// AccountCreateRequest is assembled once at submission time and never mutated afterwards.
type AccountCreateRequest struct {
	CustomerID            string          `json:"customerId"`
	AccountType           AccountType     `json:"accountType"`
	InitialBalance        decimal.Decimal `json:"initialBalance"`
	DailyTransactionLimit decimal.Decimal `json:"dailyTransactionLimit"`
	Status                AccountStatus   `json:"status"`
}

// CreateAccountResponse is what the backend returns for a newly opened account.
type CreateAccountResponse struct {
	AccountNumber         string          `json:"accountNumber"`
	CustomerID            string          `json:"customerId"`
	AccountType           AccountType     `json:"accountType"`
	Balance               decimal.Decimal `json:"balance"`
	DailyTransactionLimit decimal.Decimal `json:"dailyTransactionLimit"`
	Status                AccountStatus   `json:"status"`
	CreatedAt             time.Time       `json:"createdAt"`
}

// AccountPortfolio is the list of a customer's accounts with headline totals.
// UsagePercentages holds each account's limit usage keyed by account number,
// rounded to two places.
type AccountPortfolio struct {
	CustomerID       string                     `json:"customerId,omitempty"`
	Accounts         []Account                  `json:"accounts"`
	ActiveAccounts   int                        `json:"activeAccounts"`
	TotalBalance     decimal.Decimal            `json:"totalBalance"`
	UsagePercentages map[string]decimal.Decimal `json:"usagePercentages"`
}

// SummarizeAccounts counts active accounts and totals balances. Loan
// balances are liabilities and are left out of the total.
func SummarizeAccounts(customerID string, accounts []Account) AccountPortfolio {
	p := AccountPortfolio{
		CustomerID:       customerID,
		Accounts:         accounts,
		TotalBalance:     decimal.Zero,
		UsagePercentages: make(map[string]decimal.Decimal, len(accounts)),
	}
	if p.Accounts == nil {
		p.Accounts = []Account{}
	}
	for i := range accounts {
		p.UsagePercentages[accounts[i].AccountNumber] = accounts[i].UsagePercentage().Round(2)
		if accounts[i].IsActive() {
			p.ActiveAccounts++
		}
		if accounts[i].AccountType != AccountTypeLoan {
			p.TotalBalance = p.TotalBalance.Add(accounts[i].Balance)
		}
	}
	return p
}
