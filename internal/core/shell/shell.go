// Package shell builds the role-dependent navigation chrome.
package shell

import "github.com/cargorent/storefront/internal/core/domain"

const Brand = "CarGoRent"

type Link struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Shell is the top-level chrome rendered around every view.
type Shell struct {
	Brand         string      `json:"brand"`
	Links         []Link      `json:"links"`
	Role          domain.Role `json:"role,omitempty"`
	CompanyActive *bool       `json:"companyActive,omitempty"`
}

// Build returns the navigation for id; nil means an anonymous visitor.
func Build(id *domain.Identity) Shell {
	s := Shell{Brand: Brand, Links: []Link{{Label: "Companies", Path: domain.PathCompanies}}}
	if !id.Complete() {
		s.Links = append(s.Links,
			Link{Label: "Login", Path: domain.PathLogin},
			Link{Label: "Register", Path: "/register"},
		)
		return s
	}

	s.Role = id.Role
	switch id.Role {
	case domain.RoleCustomer:
		s.Links = append(s.Links,
			Link{Label: "Cart", Path: "/cart"},
			Link{Label: "My Orders", Path: "/orders"},
		)
	case domain.RoleCompany:
		active := id.IsCompanyActive
		s.CompanyActive = &active
		s.Links = append(s.Links, Link{Label: "Dashboard", Path: domain.PathCompanyDashboard})
	case domain.RoleAdmin:
		s.Links = append(s.Links, Link{Label: "Admin", Path: domain.PathAdminDashboard})
	case domain.RoleMember:
		s.Links = append(s.Links, Link{Label: "Dashboard", Path: domain.PathMemberDashboard})
	}
	s.Links = append(s.Links, Link{Label: "Logout", Path: "/logout"})
	return s
}
