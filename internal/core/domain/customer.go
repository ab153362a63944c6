package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CustomerType classifies a bank customer.
type CustomerType string

const (
	CustomerTypeBusiness   CustomerType = "BUSINESS"
	CustomerTypePersonal   CustomerType = "PERSONAL"
	CustomerTypeVIP        CustomerType = "VIP"
	CustomerTypeCorporate  CustomerType = "CORPORATE"
	CustomerTypeIndividual CustomerType = "INDIVIDUAL"
)

// CustomerStatus represents the lifecycle status of a customer.
type CustomerStatus string

const (
	CustomerStatusActive    CustomerStatus = "ACTIVE"
	CustomerStatusInactive  CustomerStatus = "INACTIVE"
	CustomerStatusSuspended CustomerStatus = "SUSPENDED"
	CustomerStatusPending   CustomerStatus = "PENDING"
	CustomerStatusClosed    CustomerStatus = "CLOSED"
)

// CustomerTypes lists every customer type the backend knows.
func CustomerTypes() []CustomerType {
	return []CustomerType{CustomerTypeIndividual, CustomerTypePersonal, CustomerTypeBusiness, CustomerTypeCorporate, CustomerTypeVIP}
}

func CustomerStatuses() []CustomerStatus {
	return []CustomerStatus{CustomerStatusActive, CustomerStatusInactive, CustomerStatusSuspended, CustomerStatusPending, CustomerStatusClosed}
}

// Customer is a bank customer as returned by the banking backend.
type Customer struct {
	CustomerID    string          `json:"customerId"`
	FirstName     string          `json:"firstName"`
	LastName      string          `json:"lastName"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone,omitempty"`
	CustomerType  CustomerType    `json:"customerType"`
	Status        CustomerStatus  `json:"status"`
	TotalBalance  decimal.Decimal `json:"totalBalance"`
	AccountsCount int             `json:"accountsCount"`
	LastActivity  time.Time       `json:"lastActivity"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// FullName returns "First Last".
func (c *Customer) FullName() string {
	return fmt.Sprintf("%s %s", c.FirstName, c.LastName)
}

// DisplayLabel returns "First Last (ID)", the text shown once a customer is picked.
func (c *Customer) DisplayLabel() string {
	return fmt.Sprintf("%s %s (%s)", c.FirstName, c.LastName, c.CustomerID)
}

func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

// CustomerList is one page of the customers screen: the customers matching
// the current criteria plus headline counts over the whole book.
type CustomerList struct {
	Customers       []Customer `json:"customers"`
	TotalCustomers  int        `json:"totalCustomers"`
	ActiveCustomers int        `json:"activeCustomers"`
	NewThisMonth    int        `json:"newThisMonth"`
}

// NewCustomerList counts over all, regardless of which customers are shown.
// A customer is new when created in now's calendar month.
func NewCustomerList(all, shown []Customer, now time.Time) CustomerList {
	list := CustomerList{Customers: shown, TotalCustomers: len(all)}
	if list.Customers == nil {
		list.Customers = []Customer{}
	}
	year, month, _ := now.Date()
	for _, c := range all {
		if c.IsActive() {
			list.ActiveCustomers++
		}
		if y, m, _ := c.CreatedAt.In(now.Location()).Date(); y == year && m == month {
			list.NewThisMonth++
		}
	}
	return list
}

// UpdateCustomerRequest is sent to PUT /customers/{id}/profile.
type UpdateCustomerRequest struct {
	CustomerID   string         `json:"customerId"`
	FirstName    string         `json:"firstName"`
	LastName     string         `json:"lastName"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone,omitempty"`
	CustomerType CustomerType   `json:"customerType"`
	Status       CustomerStatus `json:"status"`
}

// CustomerProfileForm holds the editable profile fields. Only a subset is
// forwarded to the backend; the rest is validated for the operator's benefit.
type CustomerProfileForm struct {
	FirstName    string `json:"firstName" validate:"required,min=2,max=50"`
	LastName     string `json:"lastName" validate:"required,min=2,max=50"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"omitempty,phone"`
	CustomerType string `json:"customerType" validate:"required,customer_type"`
	Status       string `json:"status" validate:"required,customer_status"`
	DateOfBirth  string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Occupation   string `json:"occupation" validate:"max=100"`
	NationalID   string `json:"nationalId" validate:"max=50"`
	Address      string `json:"address" validate:"max=200"`
}

var profileLabels = map[string]string{
	"firstName":    "First Name",
	"lastName":     "Last Name",
	"email":        "Email",
	"phone":        "Phone",
	"customerType": "Customer Type",
	"status":       "Status",
	"dateOfBirth":  "Date of Birth",
	"occupation":   "Occupation",
	"nationalId":   "National ID",
	"address":      "Address",
}

// Validate returns per-field messages; an empty map means the form is valid.
// Surrounding whitespace does not count towards any rule.
func (f CustomerProfileForm) Validate() FieldErrors {
	trimmed := f
	for _, s := range []*string{
		&trimmed.FirstName, &trimmed.LastName, &trimmed.Email, &trimmed.Phone,
		&trimmed.CustomerType, &trimmed.Status, &trimmed.DateOfBirth,
		&trimmed.Occupation, &trimmed.NationalID, &trimmed.Address,
	} {
		*s = strings.TrimSpace(*s)
	}
	return ValidateStruct(trimmed, profileLabels)
}

// ToRequest builds the backend update payload for the given customer.
func (f CustomerProfileForm) ToRequest(customerID string) UpdateCustomerRequest {
	return UpdateCustomerRequest{
		CustomerID:   customerID,
		FirstName:    strings.TrimSpace(f.FirstName),
		LastName:     strings.TrimSpace(f.LastName),
		Email:        strings.TrimSpace(f.Email),
		Phone:        strings.TrimSpace(f.Phone),
		CustomerType: CustomerType(f.CustomerType),
		Status:       CustomerStatus(f.Status),
	}
}
