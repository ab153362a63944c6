package bankapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"secure-bank-console/internal/core/domain"

	"github.com/shopspring/decimal"
)

// flexTime accepts RFC 3339 timestamps as well as the zone-less
// "2006-01-02T15:04:05.9999999" form the backend emits. Null and empty
// strings decode to the zero time.
type flexTime time.Time

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
	time.DateOnly,
}

func (t *flexTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = flexTime(parsed.UTC())
			return nil
		}
	}
	return fmt.Errorf("timestamp %q: unrecognised format", s)
}

func (t flexTime) Time() time.Time { return time.Time(t) }

type customerDTO struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customerId"`
	FirstName     string          `json:"firstName"`
	LastName      string          `json:"lastName"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	CustomerType  string          `json:"customerType"`
	Status        string          `json:"status"`
	TotalBalance  decimal.Decimal `json:"totalBalance"`
	AccountsCount int             `json:"accountsCount"`
	LastActivity  flexTime        `json:"lastActivity"`
	CreatedAt     flexTime        `json:"createdAt"`
	UpdatedAt     flexTime        `json:"updatedAt"`
}

func (d customerDTO) toDomain() domain.Customer {
	id := d.CustomerID
	if id == "" {
		id = d.ID
	}
	return domain.Customer{
		CustomerID:    id,
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		Email:         d.Email,
		Phone:         d.Phone,
		CustomerType:  domain.CustomerType(d.CustomerType),
		Status:        domain.CustomerStatus(d.Status),
		TotalBalance:  d.TotalBalance,
		AccountsCount: d.AccountsCount,
		LastActivity:  d.LastActivity.Time(),
		CreatedAt:     d.CreatedAt.Time(),
		UpdatedAt:     d.UpdatedAt.Time(),
	}
}

type accountDTO struct {
	AccountNumber string          `json:"accountNumber"`
	CustomerID    string          `json:"customerId"`
	AccountType   string          `json:"accountType"`
	Balance       decimal.Decimal `json:"balance"`
	// Some endpoints serialise the limit through its getter name.
	DailyTransactionLimit    *decimal.Decimal `json:"dailyTransactionLimit"`
	GetDailyTransactionLimit *decimal.Decimal `json:"getDailyTransactionLimit"`
	Status                   string           `json:"status"`
	CreatedAt                flexTime         `json:"createdAt"`
	UpdatedAt                flexTime         `json:"updatedAt"`
}

func (d accountDTO) limit() decimal.Decimal {
	switch {
	case d.DailyTransactionLimit != nil:
		return *d.DailyTransactionLimit
	case d.GetDailyTransactionLimit != nil:
		return *d.GetDailyTransactionLimit
	default:
		return decimal.Zero
	}
}

func (d accountDTO) toDomain() domain.Account {
	return domain.Account{
		AccountNumber:         d.AccountNumber,
		CustomerID:            d.CustomerID,
		AccountType:           domain.AccountType(d.AccountType),
		Balance:               d.Balance,
		DailyTransactionLimit: d.limit(),
		Status:                domain.AccountStatus(d.Status),
		CreatedAt:             d.CreatedAt.Time(),
		UpdatedAt:             d.UpdatedAt.Time(),
	}
}

func (d accountDTO) toCreateResponse() domain.CreateAccountResponse {
	return domain.CreateAccountResponse{
		AccountNumber:         d.AccountNumber,
		CustomerID:            d.CustomerID,
		AccountType:           domain.AccountType(d.AccountType),
		Balance:               d.Balance,
		DailyTransactionLimit: d.limit(),
		Status:                domain.AccountStatus(d.Status),
		CreatedAt:             d.CreatedAt.Time(),
	}
}

type freezeResponseDTO struct {
	AccountNumber         string   `json:"accountNumber"`
	PreviousStatus        string   `json:"previousStatus"`
	CurrentStatus         string   `json:"currentStatus"`
	FreezeReferenceNumber string   `json:"freezeReferenceNumber"`
	ActionTimestamp       flexTime `json:"actionTimestamp"`
	FreezeType            string   `json:"freezeType"`
	AuthorizedBy          string   `json:"authorizedBy"`
	NextReviewDate        string   `json:"nextReviewDate"`
	Message               string   `json:"message"`
}

func (d freezeResponseDTO) toDomain() domain.FreezeAccountResponse {
	return domain.FreezeAccountResponse{
		AccountNumber:         d.AccountNumber,
		PreviousStatus:        d.PreviousStatus,
		CurrentStatus:         d.CurrentStatus,
		FreezeReferenceNumber: d.FreezeReferenceNumber,
		ActionTimestamp:       d.ActionTimestamp.Time(),
		FreezeType:            d.FreezeType,
		AuthorizedBy:          d.AuthorizedBy,
		NextReviewDate:        d.NextReviewDate,
		Message:               d.Message,
	}
}
