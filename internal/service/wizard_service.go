package service

import (
	"context"
	"errors"
	"time"

	"secure-bank-console/config"
	"secure-bank-console/internal/core/domain"
	"secure-bank-console/internal/core/ports"
	"secure-bank-console/internal/core/wizard"
	"secure-bank-console/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type wizardService struct {
	store     ports.WizardStore
	customers ports.CustomerAPI
	accounts  ports.AccountAPI
	lockTTL   time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

// NewWizardService creates the account-opening wizard service.
func NewWizardService(
	store ports.WizardStore,
	customers ports.CustomerAPI,
	accounts ports.AccountAPI,
	cfg config.WizardConfig,
	log zerolog.Logger,
) ports.WizardService {
	lockTTL := cfg.SubmitLockTTL
	if lockTTL <= 0 {
		lockTTL = 30 * time.Second
	}
	return &wizardService{
		store:     store,
		customers: customers,
		accounts:  accounts,
		lockTTL:   lockTTL,
		log:       log,
		now:       time.Now,
	}
}

// Create starts a wizard over the current customer list.
func (s *wizardService) Create(ctx context.Context, p *domain.Principal) (*wizard.Session, error) {
	customers, err := s.customers.ListCustomers(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to load customers for wizard")
		return nil, backendError(err, "customers")
	}

	now := s.now().UTC()
	session := &wizard.Session{
		ID:        uuid.New().String(),
		Owner:     p.Subject,
		State:     wizard.New(customers),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, apperror.ErrCacheError(err)
	}

	s.log.Info().Str("wizard_id", session.ID).Str("owner", session.Owner).Int("customers", len(customers)).Msg("Wizard created")
	return session, nil
}

// load fetches a session and hides sessions owned by someone else.
func (s *wizardService) load(ctx context.Context, p *domain.Principal, id string) (*wizard.Session, error) {
	if id == "" {
		return nil, apperror.ErrMissingParam("wizardId", "/app/accounts/create")
	}
	session, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrWizardNotFound) {
			return nil, apperror.ErrWizardNotFound()
		}
		return nil, apperror.ErrCacheError(err)
	}
	if session.Owner != p.Subject {
		s.log.Warn().Str("wizard_id", id).Str("subject", p.Subject).Msg("Wizard accessed by non-owner")
		return nil, apperror.ErrWizardNotFound()
	}
	return session, nil
}

func (s *wizardService) save(ctx context.Context, session *wizard.Session) error {
	session.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, session); err != nil {
		return apperror.ErrCacheError(err)
	}
	return nil
}

// mutate loads, applies fn and saves. A rejected form still changes the
// touched set, so validation failures are persisted before being returned.
func (s *wizardService) mutate(ctx context.Context, p *domain.Principal, id string, fn func(*wizard.State) error) (*wizard.Session, error) {
	session, err := s.load(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if err := fn(session.State); err != nil {
		var verr *wizard.ValidationError
		if errors.As(err, &verr) {
			if saveErr := s.save(ctx, session); saveErr != nil {
				return nil, saveErr
			}
		}
		return nil, wizardError(err)
	}

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// wizardError maps state machine errors onto API errors.
func wizardError(err error) error {
	var (
		appErr *apperror.AppError
		verr   *wizard.ValidationError
	)
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.As(err, &verr):
		return apperror.ValidationFields(verr.Message, verr.Fields)
	case errors.Is(err, wizard.ErrWrongStep):
		return apperror.ErrInvalidTransition(err.Error())
	case errors.Is(err, wizard.ErrAlreadySubmitted):
		return apperror.ErrInvalidTransition(err.Error())
	case errors.Is(err, wizard.ErrSubmitInProgress):
		return apperror.ErrSubmissionInProgress()
	case errors.Is(err, wizard.ErrCustomerNotFound):
		return apperror.ErrNotFound("customer")
	default:
		return apperror.InternalError(err)
	}
}

func (s *wizardService) Get(ctx context.Context, p *domain.Principal, id string) (*wizard.Session, error) {
	return s.load(ctx, p, id)
}

func (s *wizardService) Search(ctx context.Context, p *domain.Principal, id string, patch wizard.SearchPatch) (*wizard.Session, error) {
	return s.mutate(ctx, p, id, func(st *wizard.State) error { return st.Search(patch) })
}

// ResetFilters reloads the customer list from the backend before re-running
// the default search, so customers added since Create show up.
func (s *wizardService) ResetFilters(ctx context.Context, p *domain.Principal, id string) (*wizard.Session, error) {
	if _, err := s.load(ctx, p, id); err != nil {
		return nil, err
	}
	customers, err := s.customers.ListCustomers(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("wizard_id", id).Msg("Failed to refresh customers for wizard")
		return nil, backendError(err, "customers")
	}
	return s.mutate(ctx, p, id, func(st *wizard.State) error {
		if err := st.ResetFilters(); err != nil {
			return err
		}
		st.SetCustomers(customers)
		return st.ResetFilters()
	})
}

func (s *wizardService) SelectCustomer(ctx context.Context, p *domain.Principal, id, customerID string) (*wizard.Session, error) {
	if customerID == "" {
		return nil, apperror.ValidationFields("Please select a customer", map[string]string{
			"selectedCustomerId": "Customer is required",
		})
	}
	return s.mutate(ctx, p, id, func(st *wizard.State) error { return st.SelectCustomer(customerID) })
}

func (s *wizardService) DeselectCustomer(ctx context.Context, p *domain.Principal, id string) (*wizard.Session, error) {
	return s.mutate(ctx, p, id, func(st *wizard.State) error { return st.DeselectCustomer() })
}

func (s *wizardService) Next(ctx context.Context, p *domain.Principal, id string) (*wizard.Session, error) {
	return s.mutate(ctx, p, id, func(st *wizard.State) error { return st.Next() })
}

func (s *wizardService) Back(ctx context.Context, p *domain.Principal, id string) (*wizard.Session, error) {
	return s.mutate(ctx, p, id, func(st *wizard.State) error { return st.Back() })
}

func (s *wizardService) ApplyPreset(ctx context.Context, p *domain.Principal, id string, code domain.AccountType) (*wizard.Session, error) {
	return s.mutate(ctx, p, id, func(st *wizard.State) error {
		_, err := st.ApplyPreset(code)
		if errors.Is(err, wizard.ErrUnknownPreset) {
			return apperror.ErrUnknownAccountType(string(code))
		}
		return err
	})
}

func (s *wizardService) UpdateAccount(ctx context.Context, p *domain.Principal, id string, patch wizard.AccountPatch) (*wizard.Session, error) {
	return s.mutate(ctx, p, id, func(st *wizard.State) error { return st.UpdateAccount(patch) })
}

func (s *wizardService) Confirm(ctx context.Context, p *domain.Principal, id string) (*wizard.Session, error) {
	return s.mutate(ctx, p, id, func(st *wizard.State) error { return st.Confirm() })
}

// Reset takes the submit lock so it cannot interleave with a submit in flight.
func (s *wizardService) Reset(ctx context.Context, p *domain.Principal, id string) (*wizard.Session, error) {
	if _, err := s.load(ctx, p, id); err != nil {
		return nil, err
	}
	release, err := s.lockSubmit(ctx, id)
	if err != nil {
		return nil, err
	}
	defer release()

	return s.mutate(ctx, p, id, func(st *wizard.State) error {
		s.clearStaleLoading(id, st)
		return st.Reset()
	})
}

// lockSubmit takes the per-wizard submit lock; release must be called once
// the guarded work is done.
func (s *wizardService) lockSubmit(ctx context.Context, id string) (release func(), err error) {
	acquired, err := s.store.AcquireSubmitLock(ctx, id, s.lockTTL)
	if err != nil {
		return nil, apperror.ErrCacheError(err)
	}
	if !acquired {
		return nil, apperror.ErrSubmissionInProgress()
	}
	return func() {
		if err := s.store.ReleaseSubmitLock(context.WithoutCancel(ctx), id); err != nil {
			s.log.Warn().Err(err).Str("wizard_id", id).Msg("Failed to release submit lock")
		}
	}, nil
}

// clearStaleLoading runs under the submit lock. A loading flag seen there was
// left by a submit that died before FinishSubmit was saved.
func (s *wizardService) clearStaleLoading(id string, st *wizard.State) {
	if st.ClearStaleLoading() {
		s.log.Warn().Str("wizard_id", id).Msg("Cleared stale submit flag")
	}
}

// Submit creates the account. The Redis lock serialises concurrent submits
// across replicas, so a loading flag found while holding it is stale and
// does not block the retry.
func (s *wizardService) Submit(ctx context.Context, p *domain.Principal, id string) (*wizard.Session, error) {
	session, err := s.load(ctx, p, id)
	if err != nil {
		return nil, err
	}

	release, err := s.lockSubmit(ctx, id)
	if err != nil {
		return nil, err
	}
	defer release()

	// Reload under the lock so a submit that finished in between is seen.
	if session, err = s.load(ctx, p, id); err != nil {
		return nil, err
	}
	s.clearStaleLoading(id, session.State)

	req, err := session.State.BeginSubmit()
	if err != nil {
		return nil, wizardError(err)
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	resp, callErr := s.accounts.CreateAccount(ctx, req)
	if callErr == nil && resp == nil {
		callErr = errors.New("bank api returned no account")
	}
	session.State.FinishSubmit(resp, callErr)

	// The loading flag must be cleared even if the caller went away.
	if err := s.save(context.WithoutCancel(ctx), session); err != nil {
		return nil, err
	}

	if callErr != nil {
		s.log.Error().Err(callErr).
			Str("wizard_id", id).
			Str("customer_id", req.CustomerID).
			Str("account_type", string(req.AccountType)).
			Msg("Failed to create account")
		return nil, backendError(callErr, "customer")
	}

	s.log.Info().
		Str("wizard_id", id).
		Str("customer_id", req.CustomerID).
		Str("account_number", resp.AccountNumber).
		Msg("Account created")
	return session, nil
}
