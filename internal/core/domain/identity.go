package domain

import "strings"

// Role is the authorization tag the backend attaches to every account.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleCompany  Role = "COMPANY"
	RoleAdmin    Role = "ADMIN"
	RoleMember   Role = "MEMBER"
)

// ParseRole normalises a wire role string. Unknown values return ok=false.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	switch r {
	case RoleCustomer, RoleCompany, RoleAdmin, RoleMember:
		return r, true
	}
	return "", false
}

// Landing paths used after a successful login.
const (
	PathHome             = "/"
	PathLogin            = "/login"
	PathCompanies        = "/companies"
	PathCompanyDashboard = "/company-dashboard"
	PathAdminDashboard   = "/admin-dashboard"
	PathMemberDashboard  = "/member-dashboard"
)

// Identity is the authenticated user as seen by the storefront.
// A nil *Identity means "not logged in"; a non-nil one always carries a
// token and a valid role.
type Identity struct {
	Token           string `json:"-"`
	Role            Role   `json:"role"`
	ID              string `json:"id"`
	CompanyID       string `json:"companyId,omitempty"`
	IsCompanyActive bool   `json:"isCompanyActive"`
}

// Complete reports whether the identity satisfies the token+role invariant.
func (i *Identity) Complete() bool {
	return i != nil && i.Token != "" && i.Role != ""
}

// Clone returns a detached copy so callers cannot mutate manager state.
func (i *Identity) Clone() *Identity {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}

// LandingPath is where a freshly logged-in user is sent.
func (i *Identity) LandingPath() string {
	if i == nil {
		return PathLogin
	}
	switch i.Role {
	case RoleCompany:
		return PathCompanyDashboard
	case RoleAdmin:
		return PathAdminDashboard
	case RoleMember:
		return PathMemberDashboard
	default:
		return PathCompanies
	}
}

// RegistrationProfile is the payload forwarded to the backend on sign-up.
type RegistrationProfile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}
