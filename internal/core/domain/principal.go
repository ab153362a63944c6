package domain

import (
	"slices"
	"strings"
	"time"
)

// Role names granted by the identity provider.
const (
	RoleCustomerViewer = "CUSTOMER_VIEWER"
	RoleReportViewer   = "REPORT_VIEWER"
	RoleAccountCreator = "ACCOUNT_CREATOR"
	RoleAccountFreezer = "ACCOUNT_FREEZER"
	RoleProfileUpdater = "PROFILE_UPDATER"
)

// Principal is the authenticated staff member behind a request.
type Principal struct {
	Subject       string              `json:"subject"`
	Username      string              `json:"username"`
	Email         string              `json:"email"`
	FirstName     string              `json:"firstName"`
	LastName      string              `json:"lastName"`
	RealmRoles    []string            `json:"realmRoles"`
	ResourceRoles map[string][]string `json:"resourceRoles"`
	Authenticated bool                `json:"authenticated"`
	ExpiresAt     time.Time           `json:"expiresAt"`
	TokenID       string              `json:"-"`
}

func (p *Principal) IsAuthenticated() bool {
	return p != nil && p.Authenticated
}

// HasRole reports whether role is granted on any resource or on the realm.
// An empty role is never granted.
func (p *Principal) HasRole(role string) bool {
	if p == nil || role == "" {
		return false
	}
	for _, roles := range p.ResourceRoles {
		if slices.Contains(roles, role) {
			return true
		}
	}
	return slices.Contains(p.RealmRoles, role)
}

// ContactEmail is the address the backend knows this user by.
func (p *Principal) ContactEmail() string {
	if p.Email != "" {
		return p.Email
	}
	return NormalizeEnterpriseEmail(p.Username)
}

const externalMarker = "#EXT#"

// NormalizeEnterpriseEmail turns a guest-account username such as
// "john_contoso.com#EXT#@tenant.onmicrosoft.com" into "john@contoso.com".
// Usernames without the marker pass through with only the first "_" replaced.
func NormalizeEnterpriseEmail(username string) string {
	local, _, _ := strings.Cut(username, externalMarker)
	return strings.Replace(local, "_", "@", 1)
}
