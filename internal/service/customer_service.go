package service

import (
	"context"
	"time"

	"secure-bank-console/internal/core/domain"
	"secure-bank-console/internal/core/ports"
	"secure-bank-console/internal/core/wizard"
	"secure-bank-console/pkg/apperror"

	"github.com/rs/zerolog"
)

const customersPage = "/app/customers"

type customerService struct {
	api ports.CustomerAPI
	log zerolog.Logger
	now func() time.Time
}

func NewCustomerService(api ports.CustomerAPI, log zerolog.Logger) ports.CustomerService {
	return &customerService{api: api, log: log, now: time.Now}
}

// List returns the backend's customers filtered and sorted by criteria, with
// counts over the whole book. Unlike the wizard's picker, an empty status
// filter shows customers of every status.
func (s *customerService) List(ctx context.Context, criteria wizard.Criteria) (*domain.CustomerList, error) {
	customers, err := s.api.ListCustomers(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to load customers")
		return nil, backendError(err, "customers")
	}
	list := domain.NewCustomerList(customers, wizard.FilterAll(customers, criteria), s.now())
	return &list, nil
}

func (s *customerService) Get(ctx context.Context, customerID string) (*domain.Customer, error) {
	if customerID == "" {
		return nil, apperror.ErrMissingParam("customerId", customersPage)
	}
	c, err := s.api.GetCustomer(ctx, customerID)
	if err != nil {
		s.log.Error().Err(err).Str("customer_id", customerID).Msg("Failed to load customer")
		return nil, backendError(err, "customer")
	}
	return c, nil
}

// UpdateProfile validates the form and writes it to the backend.
func (s *customerService) UpdateProfile(ctx context.Context, customerID string, form domain.CustomerProfileForm) (*domain.Customer, error) {
	if customerID == "" {
		return nil, apperror.ErrMissingParam("customerId", customersPage)
	}
	if errs := form.Validate(); !errs.Valid() {
		return nil, apperror.ValidationFields("Please correct the highlighted fields", errs)
	}

	updated, err := s.api.UpdateCustomerProfile(ctx, form.ToRequest(customerID))
	if err != nil {
		s.log.Error().Err(err).Str("customer_id", customerID).Msg("Failed to update customer profile")
		return nil, backendError(err, "customer")
	}

	s.log.Info().Str("customer_id", customerID).Msg("Customer profile updated")
	return updated, nil
}
