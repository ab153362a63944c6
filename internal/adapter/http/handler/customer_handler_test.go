package handler

import (
	"context"
	"net/http"
	"testing"

	"secure-bank-console/internal/core/domain"
	"secure-bank-console/internal/core/wizard"
	"secure-bank-console/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCustomerList_PassesCriteria(t *testing.T) {
	e := newTestEnv(t)
	e.as(domain.RoleProfileUpdater)

	want := wizard.Criteria{
		SearchText: "doe",
		Status:     "SUSPENDED",
		SortBy:     wizard.SortByCreatedAt,
		SortOrder:  wizard.SortDesc,
	}
	e.customers.EXPECT().List(gomock.Any(), want).Return(&domain.CustomerList{
		Customers:       []domain.Customer{{CustomerID: "C-2", LastName: "Doe", Status: domain.CustomerStatusSuspended}},
		TotalCustomers:  7,
		ActiveCustomers: 5,
		NewThisMonth:    2,
	}, nil)

	w := e.do(http.MethodGet, "/api/v1/customers?search=+doe+&status=SUSPENDED&sortBy=createdAt&sortOrder=desc", nil)

	require.Equal(t, http.StatusOK, w.Code)
	got := decodeData[domain.CustomerList](t, w)
	require.Len(t, got.Customers, 1)
	assert.Equal(t, "C-2", got.Customers[0].CustomerID)
	assert.Equal(t, 7, got.TotalCustomers)
	assert.Equal(t, 5, got.ActiveCustomers)
	assert.Equal(t, 2, got.NewThisMonth)
}

func TestCustomerList_InvalidSort(t *testing.T) {
	e := newTestEnv(t)
	e.as(domain.RoleProfileUpdater)

	w := e.do(http.MethodGet, "/api/v1/customers?sortBy=password", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decodeErr(t, w)
	assert.Equal(t, "VAL_002", body.ErrorCode)
	assert.Contains(t, body.FieldErrors, "sortBy")
}

func TestCustomerGet(t *testing.T) {
	e := newTestEnv(t)
	e.as(domain.RoleProfileUpdater)
	e.customers.EXPECT().Get(gomock.Any(), "C-1").Return(&domain.Customer{CustomerID: "C-1", FirstName: "Jane"}, nil)
	e.customers.EXPECT().Get(gomock.Any(), "C-404").Return(nil, apperror.ErrNotFound("Customer"))

	w := e.do(http.MethodGet, "/api/v1/customers/C-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Jane", decodeData[domain.Customer](t, w).FirstName)

	w = e.do(http.MethodGet, "/api/v1/customers/C-404", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "BANK_002", decodeErr(t, w).ErrorCode)
}

func TestCustomerGet_RejectsUnsafeID(t *testing.T) {
	e := newTestEnv(t)
	e.as(domain.RoleProfileUpdater)

	w := e.do(http.MethodGet, "/api/v1/customers/C%201", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decodeErr(t, w).FieldErrors, "id")
}

func TestCustomerUpdateProfile(t *testing.T) {
	e := newTestEnv(t)
	e.as(domain.RoleProfileUpdater)

	e.customers.EXPECT().UpdateProfile(gomock.Any(), "C-1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, form domain.CustomerProfileForm) (*domain.Customer, error) {
			assert.Equal(t, "Jane", form.FirstName)
			assert.Equal(t, "jane@example.com", form.Email)
			return &domain.Customer{
				CustomerID:   "C-1",
				FirstName:    "Jane",
				CustomerType: domain.CustomerType("PERSONAL"),
				Status:       domain.CustomerStatusActive,
			}, nil
		},
	)
	entry := e.expectAudit()

	w := e.do(http.MethodPut, "/api/v1/customers/C-1/profile", map[string]string{
		"firstName":    "  Jane ",
		"lastName":     "Doe",
		"email":        "jane@example.com",
		"customerType": "PERSONAL",
		"status":       "ACTIVE",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.AuditActionProfileUpdate, entry.Action)
	assert.Equal(t, domain.ResourceCustomer, entry.ResourceType)
	assert.Equal(t, "C-1", entry.ResourceID)
	assert.Contains(t, entry.Details, `"customerType":"PERSONAL"`)
}

func TestCustomerUpdateProfile_FieldErrors(t *testing.T) {
	e := newTestEnv(t)
	e.as(domain.RoleProfileUpdater)
	e.customers.EXPECT().UpdateProfile(gomock.Any(), "C-1", gomock.Any()).Return(nil,
		apperror.ValidationFields("Please correct the highlighted fields", map[string]string{
			"email": "Please enter a valid email address",
		}))

	w := e.do(http.MethodPut, "/api/v1/customers/C-1/profile", map[string]string{"email": "nope"})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decodeErr(t, w)
	assert.Equal(t, "Please enter a valid email address", body.FieldErrors["email"])
}
