package wizard

import (
	"github.com/shopspring/decimal"

	"secure-bank-console/internal/core/domain"
)

// CustomerForm is the step-1 search and selection form.
type CustomerForm struct {
	CustomerSearch     string    `json:"customerSearch"`
	SelectedCustomerID string    `json:"selectedCustomerId" validate:"required"`
	CustomerType       string    `json:"customerType"`
	Status             string    `json:"status"`
	SortBy             SortField `json:"sortBy"`
	SortOrder          SortOrder `json:"sortOrder"`
}

func defaultCustomerForm() CustomerForm {
	return CustomerForm{SortBy: SortByLastName, SortOrder: SortAsc}
}

// Criteria derives filter criteria; blank sort settings fall back to the defaults.
func (f CustomerForm) Criteria() Criteria {
	c := Criteria{
		SearchText:   f.CustomerSearch,
		CustomerType: f.CustomerType,
		Status:       f.Status,
		SortBy:       f.SortBy,
		SortOrder:    f.SortOrder,
	}
	if c.SortBy == "" {
		c.SortBy = SortByLastName
	}
	if c.SortOrder == "" {
		c.SortOrder = SortAsc
	}
	return c
}

func (f CustomerForm) Validate() domain.FieldErrors {
	return domain.ValidateStruct(f, labels)
}

// AccountForm is the step-2 account configuration. Nil amounts are unset.
type AccountForm struct {
	AccountType           domain.AccountType   `json:"accountType" validate:"required,account_type"`
	InitialBalance        *decimal.Decimal     `json:"initialBalance" validate:"required,dgte=0"`
	DailyTransactionLimit *decimal.Decimal     `json:"dailyTransactionLimit" validate:"required,dgte=100"`
	Status                domain.AccountStatus `json:"status" validate:"required,account_status"`
	AgreementAccepted     bool                 `json:"agreementAccepted" validate:"required"`
	NotifyCustomer        bool                 `json:"notifyCustomer"`
}

// Account form field names, also used as touched-set keys.
const (
	FieldAccountType           = "accountType"
	FieldInitialBalance        = "initialBalance"
	FieldDailyTransactionLimit = "dailyTransactionLimit"
	FieldStatus                = "status"
	FieldAgreementAccepted     = "agreementAccepted"
	FieldNotifyCustomer        = "notifyCustomer"
)

var accountFields = []string{
	FieldAccountType,
	FieldInitialBalance,
	FieldDailyTransactionLimit,
	FieldStatus,
	FieldAgreementAccepted,
	FieldNotifyCustomer,
}

// newAccountForm is the form as first shown.
func newAccountForm() AccountForm {
	initial := decimal.Zero
	limit := decimal.NewFromInt(5000)
	return AccountForm{
		InitialBalance:        &initial,
		DailyTransactionLimit: &limit,
		Status:                domain.AccountStatusActive,
		NotifyCustomer:        true,
	}
}

// resetAccountForm is the form after an explicit reset: amounts and type are cleared.
func resetAccountForm() AccountForm {
	return AccountForm{
		Status:         domain.AccountStatusActive,
		NotifyCustomer: true,
	}
}

// Validate enforces the catalog values, initial balance >= 0, daily limit >= 100
// and an accepted agreement.
func (f AccountForm) Validate() domain.FieldErrors {
	return domain.ValidateStruct(f, labels)
}

// AccountPatch carries a partial account form update; nil fields are left alone.
type AccountPatch struct {
	AccountType           *domain.AccountType   `json:"accountType,omitempty"`
	InitialBalance        *decimal.Decimal      `json:"initialBalance,omitempty"`
	DailyTransactionLimit *decimal.Decimal      `json:"dailyTransactionLimit,omitempty"`
	Status                *domain.AccountStatus `json:"status,omitempty"`
	AgreementAccepted     *bool                 `json:"agreementAccepted,omitempty"`
	NotifyCustomer        *bool                 `json:"notifyCustomer,omitempty"`
}

// apply writes the patch into f and returns the names of the fields it set.
func (p AccountPatch) apply(f *AccountForm) []string {
	var set []string
	if p.AccountType != nil {
		f.AccountType = *p.AccountType
		set = append(set, FieldAccountType)
	}
	if p.InitialBalance != nil {
		v := *p.InitialBalance
		f.InitialBalance = &v
		set = append(set, FieldInitialBalance)
	}
	if p.DailyTransactionLimit != nil {
		v := *p.DailyTransactionLimit
		f.DailyTransactionLimit = &v
		set = append(set, FieldDailyTransactionLimit)
	}
	if p.Status != nil {
		f.Status = *p.Status
		set = append(set, FieldStatus)
	}
	if p.AgreementAccepted != nil {
		f.AgreementAccepted = *p.AgreementAccepted
		set = append(set, FieldAgreementAccepted)
	}
	if p.NotifyCustomer != nil {
		f.NotifyCustomer = *p.NotifyCustomer
		set = append(set, FieldNotifyCustomer)
	}
	return set
}

// SearchPatch updates the step-1 filter fields; nil fields are left alone.
type SearchPatch struct {
	CustomerSearch *string    `json:"customerSearch,omitempty"`
	CustomerType   *string    `json:"customerType,omitempty"`
	Status         *string    `json:"status,omitempty"`
	SortBy         *SortField `json:"sortBy,omitempty"`
	SortOrder      *SortOrder `json:"sortOrder,omitempty"`
}

func (p SearchPatch) apply(f *CustomerForm) {
	if p.CustomerSearch != nil {
		f.CustomerSearch = *p.CustomerSearch
	}
	if p.CustomerType != nil {
		f.CustomerType = *p.CustomerType
	}
	if p.Status != nil {
		f.Status = *p.Status
	}
	if p.SortBy != nil {
		f.SortBy = *p.SortBy
	}
	if p.SortOrder != nil {
		f.SortOrder = *p.SortOrder
	}
}

var labels = map[string]string{
	"customerSearch":           "Customer",
	"selectedCustomerId":       "Customer",
	FieldAccountType:           "Account Type",
	FieldInitialBalance:        "Initial Balance",
	FieldDailyTransactionLimit: "Daily Transaction Limit",
	FieldStatus:                "Account Status",
	FieldAgreementAccepted:     "Agreement Acceptance",
}

func fieldLabel(field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	return field
}
