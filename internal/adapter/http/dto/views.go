package dto

import (
	"encoding/json"
	"slices"
	"time"

	"secure-bank-console/internal/core/domain"
	"secure-bank-console/internal/core/wizard"
)

// LoginResponse tells the client where to send the browser.
type LoginResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

// PrincipalResponse is GET /auth/me.
type PrincipalResponse struct {
	Subject   string    `json:"subject"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Roles     []string  `json:"roles"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// NewPrincipalResponse flattens realm and resource roles into one sorted, de-duplicated list.
func NewPrincipalResponse(p *domain.Principal) PrincipalResponse {
	roles := slices.Clone(p.RealmRoles)
	for _, rs := range p.ResourceRoles {
		roles = append(roles, rs...)
	}
	slices.Sort(roles)
	roles = slices.Compact(roles)
	if roles == nil {
		roles = []string{}
	}
	return PrincipalResponse{
		Subject:   p.Subject,
		Username:  p.Username,
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Roles:     roles,
		ExpiresAt: p.ExpiresAt,
	}
}

// AccountTypesResponse carries the static catalogs used by the account forms.
type AccountTypesResponse struct {
	Presets       []domain.AccountTypePreset `json:"presets"`
	FreezeTypes   []domain.Option            `json:"freezeTypes"`
	FreezeReasons []domain.Option            `json:"freezeReasons"`
}

func NewAccountTypesResponse() AccountTypesResponse {
	return AccountTypesResponse{
		Presets:       domain.Presets(),
		FreezeTypes:   domain.FreezeTypes(),
		FreezeReasons: domain.FreezeReasons(),
	}
}

// HistoryEntry is one audit record with its details inlined as JSON.
type HistoryEntry struct {
	ID        string             `json:"id"`
	Actor     string             `json:"actor"`
	Action    domain.AuditAction `json:"action"`
	Details   json.RawMessage    `json:"details,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}

func NewHistory(logs []domain.AuditLog) []HistoryEntry {
	out := make([]HistoryEntry, 0, len(logs))
	for _, l := range logs {
		e := HistoryEntry{
			ID:        l.ID.String(),
			Actor:     l.Actor,
			Action:    l.Action,
			CreatedAt: l.CreatedAt,
		}
		if l.Details != "" && json.Valid([]byte(l.Details)) {
			e.Details = json.RawMessage(l.Details)
		}
		out = append(out, e)
	}
	return out
}

// WizardView is what clients see of a wizard session. The full customer
// list stays server side; only the filtered page is sent.
type WizardView struct {
	ID                string              `json:"id"`
	CurrentStep       int                 `json:"currentStep"`
	StepName          string              `json:"stepName"`
	SelectedCustomer  *domain.Customer    `json:"selectedCustomer"`
	CustomerForm      wizard.CustomerForm `json:"customerForm"`
	AccountForm       wizard.AccountForm  `json:"accountForm"`
	FilteredCustomers []domain.Customer   `json:"filteredCustomers"`
	Touched           map[string]bool     `json:"touched"`
	Errors            domain.FieldErrors  `json:"errors"`
	Loading           bool                `json:"loading"`
	Result            *wizard.Result      `json:"result,omitempty"`
	UpdatedAt         time.Time           `json:"updatedAt"`
}

func NewWizardView(s *wizard.Session) WizardView {
	st := s.State
	filtered := st.Filtered
	if filtered == nil {
		filtered = []domain.Customer{}
	}
	touched := st.Touched
	if touched == nil {
		touched = map[string]bool{}
	}
	return WizardView{
		ID:                s.ID,
		CurrentStep:       int(st.CurrentStep),
		StepName:          st.CurrentStep.String(),
		SelectedCustomer:  st.SelectedCustomer,
		CustomerForm:      st.CustomerForm,
		AccountForm:       st.AccountForm,
		FilteredCustomers: filtered,
		Touched:           touched,
		Errors:            st.VisibleErrors(),
		Loading:           st.Loading,
		Result:            st.Result,
		UpdatedAt:         s.UpdatedAt,
	}
}
