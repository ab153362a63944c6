package bankapi

import (
	"context"
	"net/http"

	"secure-bank-console/internal/core/domain"
)

const (
	pathCustomers       = "/customers"
	pathCustomer        = "/customers/{id}"
	pathCustomerByEmail = "/customers/GetByEmail/{email}"
	pathCustomerProfile = "/customers/{id}/profile"
)

// ListCustomers returns every customer known to the backend.
func (c *Client) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	var out []customerDTO
	r := c.request(ctx).SetResult(&out)
	if err := c.execute(r, http.MethodGet, pathCustomers); err != nil {
		return nil, err
	}

	customers := make([]domain.Customer, 0, len(out))
	for _, d := range out {
		customers = append(customers, d.toDomain())
	}
	return customers, nil
}

// GetCustomer fetches one customer by id.
func (c *Client) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	var out customerDTO
	r := c.request(ctx).SetPathParam("id", customerID).SetResult(&out)
	if err := c.execute(r, http.MethodGet, pathCustomer); err != nil {
		return nil, err
	}
	cust := out.toDomain()
	return &cust, nil
}

// GetCustomerByEmail resolves the customer record registered under email.
func (c *Client) GetCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	var out customerDTO
	r := c.request(ctx).SetPathParam("email", email).SetResult(&out)
	if err := c.execute(r, http.MethodGet, pathCustomerByEmail); err != nil {
		return nil, err
	}
	cust := out.toDomain()
	return &cust, nil
}

// UpdateCustomerProfile writes the editable profile fields.
func (c *Client) UpdateCustomerProfile(ctx context.Context, req domain.UpdateCustomerRequest) (*domain.Customer, error) {
	var out customerDTO
	r := c.request(ctx).
		SetPathParam("id", req.CustomerID).
		SetBody(req).
		SetResult(&out)
	if err := c.execute(r, http.MethodPut, pathCustomerProfile); err != nil {
		return nil, err
	}
	cust := out.toDomain()
	if cust.CustomerID == "" {
		cust.CustomerID = req.CustomerID
	}
	return &cust, nil
}
