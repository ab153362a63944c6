package dto

import (
	"secure-bank-console/internal/core/domain"
	"secure-bank-console/internal/core/ports"
	"secure-bank-console/internal/core/wizard"

	"github.com/shopspring/decimal"
)

// ProfileUpdateRequest is the body of PUT /customers/:id/profile. The binding
// tags only bound the input size; the domain form's validate tags carry the
// field rules.
type ProfileUpdateRequest struct {
	FirstName    string `json:"firstName" binding:"max=200"`
	LastName     string `json:"lastName" binding:"max=200"`
	Email        string `json:"email" binding:"max=254"`
	Phone        string `json:"phone" binding:"max=40"`
	CustomerType string `json:"customerType" binding:"max=32"`
	Status       string `json:"status" binding:"max=32"`
	DateOfBirth  string `json:"dateOfBirth" binding:"max=32"`
	Occupation   string `json:"occupation" binding:"max=400"`
	NationalID   string `json:"nationalId" binding:"max=200"`
	Address      string `json:"address" binding:"max=800"`
}

func (r ProfileUpdateRequest) ToForm() domain.CustomerProfileForm {
	return domain.CustomerProfileForm{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		Phone:        r.Phone,
		CustomerType: r.CustomerType,
		Status:       r.Status,
		DateOfBirth:  r.DateOfBirth,
		Occupation:   r.Occupation,
		NationalID:   r.NationalID,
		Address:      r.Address,
	}
}

// FreezeRequest is the body of PUT /accounts/:id/freeze: the freeze form plus
// the officer's confirmation.
type FreezeRequest struct {
	FreezeType       string           `json:"freezeType" binding:"max=32"`
	Reason           string           `json:"reason" binding:"max=64"`
	AuthorizedBy     string           `json:"authorizedBy" binding:"max=200"`
	Comments         string           `json:"comments" binding:"max=2000"`
	ReviewDate       string           `json:"reviewDate" binding:"max=32"`
	UrgentFreeze     bool             `json:"urgentFreeze"`
	NotifyCustomer   bool             `json:"notifyCustomer"`
	TransactionLimit *decimal.Decimal `json:"transactionLimit"`

	ConfirmAccountNumber string `json:"confirmAccountNumber" binding:"max=64"`
	ConfirmFreeze        bool   `json:"confirmFreeze"`
	OfficerSignature     string `json:"officerSignature" binding:"max=200"`
}

func (r FreezeRequest) ToCommand(accountID string) ports.FreezeCommand {
	return ports.FreezeCommand{
		AccountID: accountID,
		Form: domain.FreezeForm{
			FreezeType:       domain.FreezeType(r.FreezeType),
			Reason:           domain.FreezeReason(r.Reason),
			AuthorizedBy:     r.AuthorizedBy,
			Comments:         r.Comments,
			ReviewDate:       r.ReviewDate,
			UrgentFreeze:     r.UrgentFreeze,
			NotifyCustomer:   r.NotifyCustomer,
			TransactionLimit: r.TransactionLimit,
		},
		Confirmation: domain.FreezeConfirmation{
			ConfirmAccountNumber: r.ConfirmAccountNumber,
			ConfirmFreeze:        r.ConfirmFreeze,
			OfficerSignature:     r.OfficerSignature,
		},
	}
}

// CustomerListQuery binds the query string of GET /customers.
type CustomerListQuery struct {
	Search       string `form:"search" binding:"max=100"`
	CustomerType string `form:"customerType" binding:"max=32"`
	Status       string `form:"status" binding:"max=32"`
	SortBy       string `form:"sortBy" binding:"omitempty,sort_field"`
	SortOrder    string `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
}

// Criteria converts the query; blank sort settings take the defaults.
func (q CustomerListQuery) Criteria() wizard.Criteria {
	c := wizard.DefaultCriteria()
	c.SearchText = q.Search
	c.CustomerType = q.CustomerType
	c.Status = q.Status
	if q.SortBy != "" {
		c.SortBy = wizard.SortField(q.SortBy)
	}
	if q.SortOrder != "" {
		c.SortOrder = wizard.SortOrder(q.SortOrder)
	}
	return c
}

// SearchRequest patches the wizard's customer filter. Omitted fields keep their value.
type SearchRequest struct {
	CustomerSearch *string `json:"customerSearch" binding:"omitempty,max=100"`
	CustomerType   *string `json:"customerType" binding:"omitempty,max=32"`
	Status         *string `json:"status" binding:"omitempty,max=32"`
	SortBy         *string `json:"sortBy" binding:"omitempty,sort_field"`
	SortOrder      *string `json:"sortOrder" binding:"omitempty,oneof=asc desc"`
}

func (r SearchRequest) ToPatch() wizard.SearchPatch {
	p := wizard.SearchPatch{
		CustomerSearch: r.CustomerSearch,
		CustomerType:   r.CustomerType,
		Status:         r.Status,
	}
	if r.SortBy != nil {
		f := wizard.SortField(*r.SortBy)
		p.SortBy = &f
	}
	if r.SortOrder != nil {
		o := wizard.SortOrder(*r.SortOrder)
		p.SortOrder = &o
	}
	return p
}

type SelectCustomerRequest struct {
	CustomerID string `json:"customerId" binding:"required,max=64,safe_id"`
}

type AccountTypeRequest struct {
	AccountType string `json:"accountType" binding:"required,max=32"`
}

// AccountPatchRequest edits the wizard's account form. Omitted fields keep their value.
type AccountPatchRequest struct {
	AccountType           *string          `json:"accountType" binding:"omitempty,max=32"`
	InitialBalance        *decimal.Decimal `json:"initialBalance"`
	DailyTransactionLimit *decimal.Decimal `json:"dailyTransactionLimit"`
	Status                *string          `json:"status" binding:"omitempty,max=32"`
	AgreementAccepted     *bool            `json:"agreementAccepted"`
	NotifyCustomer        *bool            `json:"notifyCustomer"`
}

func (r AccountPatchRequest) ToPatch() wizard.AccountPatch {
	p := wizard.AccountPatch{
		InitialBalance:        r.InitialBalance,
		DailyTransactionLimit: r.DailyTransactionLimit,
		AgreementAccepted:     r.AgreementAccepted,
		NotifyCustomer:        r.NotifyCustomer,
	}
	if r.AccountType != nil {
		t := domain.AccountType(*r.AccountType)
		p.AccountType = &t
	}
	if r.Status != nil {
		s := domain.AccountStatus(*r.Status)
		p.Status = &s
	}
	return p
}

// LogoutRequest optionally carries the refresh token so the provider session ends too.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"max=8192"`
}
