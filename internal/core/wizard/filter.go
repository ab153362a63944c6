package wizard

import (
	"slices"
	"strings"

	"secure-bank-console/internal/core/domain"
)

// SortField is a customer attribute the result list can be ordered by.
type SortField string

const (
	SortByFirstName    SortField = "firstName"
	SortByLastName     SortField = "lastName"
	SortByCustomerType SortField = "customerType"
	SortByStatus       SortField = "status"
	SortByCreatedAt    SortField = "createdAt"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Criteria narrows and orders a customer list.
type Criteria struct {
	SearchText   string    `json:"searchText"`
	CustomerType string    `json:"customerType"`
	Status       string    `json:"status"`
	SortBy       SortField `json:"sortBy"`
	SortOrder    SortOrder `json:"sortOrder"`
}

// DefaultCriteria matches everything active, ordered by last name ascending.
func DefaultCriteria() Criteria {
	return Criteria{SortBy: SortByLastName, SortOrder: SortAsc}
}

// Filter returns the customers matching c, in the requested order.
// With no status filter only ACTIVE customers are returned. The input is not modified.
func Filter(customers []domain.Customer, c Criteria) []domain.Customer {
	return filter(customers, c, true)
}

// FilterAll is Filter without the implicit ACTIVE restriction: an empty
// status matches every customer.
func FilterAll(customers []domain.Customer, c Criteria) []domain.Customer {
	return filter(customers, c, false)
}

func filter(customers []domain.Customer, c Criteria, activeByDefault bool) []domain.Customer {
	search := strings.ToLower(c.SearchText)

	out := make([]domain.Customer, 0, len(customers))
	for _, cust := range customers {
		if search != "" && !matchesText(cust, search) {
			continue
		}
		if c.CustomerType != "" && string(cust.CustomerType) != c.CustomerType {
			continue
		}
		switch {
		case c.Status != "":
			if string(cust.Status) != c.Status {
				continue
			}
		case activeByDefault && !cust.IsActive():
			continue
		}
		out = append(out, cust)
	}

	cmp := comparator(c.SortBy)
	desc := c.SortOrder == SortDesc
	slices.SortStableFunc(out, func(a, b domain.Customer) int {
		if desc {
			return cmp(b, a)
		}
		return cmp(a, b)
	})
	return out
}

func matchesText(c domain.Customer, lower string) bool {
	return strings.Contains(strings.ToLower(c.FirstName), lower) ||
		strings.Contains(strings.ToLower(c.LastName), lower) ||
		strings.Contains(strings.ToLower(c.Email), lower) ||
		strings.Contains(strings.ToLower(c.CustomerID), lower)
}

// comparator falls back to last name for unknown fields.
func comparator(field SortField) func(a, b domain.Customer) int {
	fold := func(key func(domain.Customer) string) func(a, b domain.Customer) int {
		return func(a, b domain.Customer) int {
			return strings.Compare(strings.ToLower(key(a)), strings.ToLower(key(b)))
		}
	}

	switch field {
	case SortByFirstName:
		return fold(func(c domain.Customer) string { return c.FirstName })
	case SortByCustomerType:
		return fold(func(c domain.Customer) string { return string(c.CustomerType) })
	case SortByStatus:
		return fold(func(c domain.Customer) string { return string(c.Status) })
	case SortByCreatedAt:
		return func(a, b domain.Customer) int { return a.CreatedAt.Compare(b.CreatedAt) }
	default:
		return fold(func(c domain.Customer) string { return c.LastName })
	}
}

func activeOnly(customers []domain.Customer) []domain.Customer {
	out := make([]domain.Customer, 0, len(customers))
	for _, c := range customers {
		if c.IsActive() {
			out = append(out, c)
		}
	}
	return out
}
