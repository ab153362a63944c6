// Package wizard is the three-step account-opening flow: pick a customer,
// configure the account, confirm and submit. It performs no I/O; callers load
// customers, persist State and call the banking backend.
package wizard

import (
	"errors"
	"fmt"
	"time"

	"secure-bank-console/internal/core/domain"
)

// Step is a wizard position.
type Step int

const (
	StepCustomerSelection    Step = 1
	StepAccountConfiguration Step = 2
	StepConfirmation         Step = 3
)

func (s Step) String() string {
	switch s {
	case StepCustomerSelection:
		return "CUSTOMER_SELECTION"
	case StepAccountConfiguration:
		return "ACCOUNT_CONFIGURATION"
	case StepConfirmation:
		return "CONFIRMATION"
	default:
		return fmt.Sprintf("STEP_%d", int(s))
	}
}

var (
	ErrWrongStep        = errors.New("operation not allowed at the current step")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrUnknownPreset    = errors.New("unknown account type")
	ErrSubmitInProgress = errors.New("submission already in progress")
	ErrAlreadySubmitted = errors.New("account already created for this wizard")
)

// ValidationError rejects a transition because a form is invalid.
type ValidationError struct {
	Message string
	Fields  domain.FieldErrors
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Result records a successful submission.
type Result struct {
	AccountNumber string                        `json:"accountNumber"`
	Message       string                        `json:"message"`
	Account       *domain.CreateAccountResponse `json:"account,omitempty"`
}

// State is everything one wizard session knows.
type State struct {
	CurrentStep      Step              `json:"currentStep"`
	SelectedCustomer *domain.Customer  `json:"selectedCustomer"`
	CustomerForm     CustomerForm      `json:"customerForm"`
	AccountForm      AccountForm       `json:"accountForm"`
	Customers        []domain.Customer `json:"customers"`
	Filtered         []domain.Customer `json:"filteredCustomers"`
	Touched          map[string]bool   `json:"touched"`
	Loading          bool              `json:"loading"`
	Result           *Result           `json:"result,omitempty"`
}

// New starts a wizard over the given customer list, showing active customers only.
func New(customers []domain.Customer) *State {
	return &State{
		CurrentStep:  StepCustomerSelection,
		CustomerForm: defaultCustomerForm(),
		AccountForm:  newAccountForm(),
		Customers:    customers,
		Filtered:     activeOnly(customers),
		Touched:      map[string]bool{},
	}
}

func (s *State) requireStep(step Step) error {
	if s.CurrentStep != step {
		return fmt.Errorf("%w: at %s, need %s", ErrWrongStep, s.CurrentStep, step)
	}
	return nil
}

// SetCustomers replaces the full customer list used by Search and Reset.
// The selected customer, if any, is kept as picked.
func (s *State) SetCustomers(customers []domain.Customer) {
	s.Customers = customers
}

// Search applies the patch to the filter fields and recomputes the filtered list.
func (s *State) Search(p SearchPatch) error {
	if err := s.requireStep(StepCustomerSelection); err != nil {
		return err
	}
	p.apply(&s.CustomerForm)
	s.Filtered = Filter(s.Customers, s.CustomerForm.Criteria())
	return nil
}

// ResetFilters restores the default filter fields and re-runs the search.
// The selection is kept.
func (s *State) ResetFilters() error {
	if err := s.requireStep(StepCustomerSelection); err != nil {
		return err
	}
	s.CustomerForm.CustomerSearch = ""
	s.CustomerForm.CustomerType = ""
	s.CustomerForm.Status = ""
	s.CustomerForm.SortBy = SortByLastName
	s.CustomerForm.SortOrder = SortAsc
	s.Filtered = Filter(s.Customers, s.CustomerForm.Criteria())
	return nil
}

// SelectCustomer picks a customer from the loaded list.
func (s *State) SelectCustomer(customerID string) error {
	if err := s.requireStep(StepCustomerSelection); err != nil {
		return err
	}
	for i := range s.Customers {
		if s.Customers[i].CustomerID == customerID {
			c := s.Customers[i]
			s.SelectedCustomer = &c
			s.CustomerForm.CustomerSearch = c.DisplayLabel()
			s.CustomerForm.SelectedCustomerID = c.CustomerID
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrCustomerNotFound, customerID)
}

func (s *State) DeselectCustomer() error {
	if err := s.requireStep(StepCustomerSelection); err != nil {
		return err
	}
	s.SelectedCustomer = nil
	s.CustomerForm.CustomerSearch = ""
	s.CustomerForm.SelectedCustomerID = ""
	return nil
}

// Next moves from customer selection to account configuration.
func (s *State) Next() error {
	if err := s.requireStep(StepCustomerSelection); err != nil {
		return err
	}
	if errs := s.customerErrors(); !errs.Valid() {
		return &ValidationError{Message: "Please select a customer", Fields: errs}
	}
	s.CurrentStep = StepAccountConfiguration
	return nil
}

// Back returns from account configuration to customer selection.
func (s *State) Back() error {
	if err := s.requireStep(StepAccountConfiguration); err != nil {
		return err
	}
	s.CurrentStep = StepCustomerSelection
	return nil
}

// ApplyPreset fills type, initial balance and daily limit from the catalog,
// overwriting earlier edits. Unknown codes leave the state untouched.
func (s *State) ApplyPreset(code domain.AccountType) (domain.AccountTypePreset, error) {
	if err := s.requireStep(StepAccountConfiguration); err != nil {
		return domain.AccountTypePreset{}, err
	}
	preset, ok := domain.FindPreset(code)
	if !ok {
		return domain.AccountTypePreset{}, fmt.Errorf("%w: %s", ErrUnknownPreset, code)
	}
	balance := preset.MinimumBalance
	limit := preset.DefaultDailyLimit
	s.AccountForm.AccountType = preset.Code
	s.AccountForm.InitialBalance = &balance
	s.AccountForm.DailyTransactionLimit = &limit
	return preset, nil
}

// UpdateAccount edits the account form and marks the edited fields touched.
func (s *State) UpdateAccount(p AccountPatch) error {
	if err := s.requireStep(StepAccountConfiguration); err != nil {
		return err
	}
	for _, f := range p.apply(&s.AccountForm) {
		s.Touched[f] = true
	}
	return nil
}

// Confirm moves to the confirmation step. On an invalid form every account
// field is marked touched and the step does not change.
func (s *State) Confirm() error {
	if err := s.requireStep(StepAccountConfiguration); err != nil {
		return err
	}
	errs := s.AccountForm.Validate().Merge(s.customerErrors())
	if !errs.Valid() {
		s.touchAll()
		return &ValidationError{Message: "Please complete all required fields", Fields: errs}
	}
	s.CurrentStep = StepConfirmation
	return nil
}

// BeginSubmit raises the loading flag and returns the request to send.
// Every BeginSubmit that succeeds must be paired with FinishSubmit.
func (s *State) BeginSubmit() (domain.AccountCreateRequest, error) {
	if s.Loading {
		return domain.AccountCreateRequest{}, ErrSubmitInProgress
	}
	if s.Result != nil {
		return domain.AccountCreateRequest{}, ErrAlreadySubmitted
	}
	if err := s.requireStep(StepConfirmation); err != nil {
		return domain.AccountCreateRequest{}, err
	}
	errs := s.AccountForm.Validate().Merge(s.customerErrors())
	if !errs.Valid() {
		return domain.AccountCreateRequest{}, &ValidationError{
			Message: "Please complete all required fields",
			Fields:  errs,
		}
	}

	s.Loading = true
	return domain.AccountCreateRequest{
		CustomerID:            s.SelectedCustomer.CustomerID,
		AccountType:           s.AccountForm.AccountType,
		InitialBalance:        *s.AccountForm.InitialBalance,
		DailyTransactionLimit: *s.AccountForm.DailyTransactionLimit,
		Status:                s.AccountForm.Status,
	}, nil
}

// FinishSubmit clears the loading flag and, on success, records the result.
func (s *State) FinishSubmit(resp *domain.CreateAccountResponse, err error) {
	s.Loading = false
	if err != nil || resp == nil {
		return
	}
	name := ""
	if s.SelectedCustomer != nil {
		name = s.SelectedCustomer.FullName()
	}
	s.Result = &Result{
		AccountNumber: resp.AccountNumber,
		Message:       fmt.Sprintf("Account %s created successfully for %s", resp.AccountNumber, name),
		Account:       resp,
	}
}

// Reset returns to step 1 with default forms and the active customer list.
// It is refused while a submit is outstanding.
func (s *State) Reset() error {
	if s.Loading {
		return ErrSubmitInProgress
	}
	s.CurrentStep = StepCustomerSelection
	s.SelectedCustomer = nil
	s.CustomerForm = defaultCustomerForm()
	s.AccountForm = resetAccountForm()
	s.Filtered = activeOnly(s.Customers)
	s.Touched = map[string]bool{}
	s.Result = nil
	return nil
}

// ClearStaleLoading drops a loading flag left by a submit that never reached
// FinishSubmit, and reports whether one was set. Only a holder of the submit
// lock may call it: with the lock held no call can be outstanding.
func (s *State) ClearStaleLoading() bool {
	stale := s.Loading
	s.Loading = false
	return stale
}

// VisibleErrors returns account form errors for touched fields only.
func (s *State) VisibleErrors() domain.FieldErrors {
	all := s.AccountForm.Validate()
	visible := domain.FieldErrors{}
	for field, msg := range all {
		if s.Touched[field] {
			visible[field] = msg
		}
	}
	return visible
}

// customerErrors is non-empty unless a customer is both selected and recorded on the form.
func (s *State) customerErrors() domain.FieldErrors {
	errs := s.CustomerForm.Validate()
	if s.SelectedCustomer == nil {
		errs.Required("selectedCustomerId", fieldLabel("selectedCustomerId"))
	}
	return errs
}

func (s *State) touchAll() {
	if s.Touched == nil {
		s.Touched = map[string]bool{}
	}
	for _, f := range accountFields {
		s.Touched[f] = true
	}
}

// Session is a persisted wizard owned by one principal.
type Session struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	State     *State    `json:"state"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
