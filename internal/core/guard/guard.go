// Package guard decides whether a view may render for the current session.
package guard

import (
	"net/url"

	"github.com/cargorent/storefront/internal/core/domain"
)

// Outcome is the kind of decision the guard took.
type Outcome int

const (
	// Wait means the session is still being restored; nothing is decided yet.
	Wait Outcome = iota
	Allow
	// RedirectLogin sends an anonymous visitor to the login view and keeps
	// the requested location so login can return there.
	RedirectLogin
	// RedirectHome sends a logged-in user without the right role to the
	// landing page.
	RedirectHome
)

func (o Outcome) String() string {
	switch o {
	case Wait:
		return "wait"
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	}
	return "unknown"
}

// RedirectParam carries the preserved location on the login URL.
const RedirectParam = "redirect"

// Decision is the guard's verdict. Location is set for redirects.
type Decision struct {
	Outcome  Outcome
	Location string
}

// Decide is a pure function of the restore flag, the identity, the roles a
// view admits and the requested location. An empty permitted set admits any
// logged-in identity.
func Decide(restored bool, id *domain.Identity, permitted []domain.Role, requested string) Decision {
	if !restored {
		return Decision{Outcome: Wait}
	}
	if !id.Complete() {
		return Decision{Outcome: RedirectLogin, Location: LoginLocation(requested)}
	}
	if len(permitted) > 0 && !hasRole(permitted, id.Role) {
		return Decision{Outcome: RedirectHome, Location: domain.PathHome}
	}
	return Decision{Outcome: Allow}
}

// LoginLocation builds the login URL that remembers requested.
func LoginLocation(requested string) string {
	if !IsLocalPath(requested) {
		return domain.PathLogin
	}
	return domain.PathLogin + "?" + url.Values{RedirectParam: {requested}}.Encode()
}

// IsLocalPath accepts only same-origin absolute paths, so a preserved
// location can never bounce the user to another site.
func IsLocalPath(p string) bool {
	if len(p) == 0 || p[0] != '/' {
		return false
	}
	if len(p) > 1 && (p[1] == '/' || p[1] == '\\') {
		return false
	}
	u, err := url.Parse(p)
	return err == nil && u.Scheme == "" && u.Host == ""
}

// AfterLogin picks where a fresh login goes: the preserved location when
// there is a safe one, otherwise the role's landing page.
func AfterLogin(id *domain.Identity, preserved string) string {
	if IsLocalPath(preserved) && preserved != domain.PathLogin {
		return preserved
	}
	return id.LandingPath()
}

func hasRole(roles []domain.Role, r domain.Role) bool {
	for _, allowed := range roles {
		if allowed == r {
			return true
		}
	}
	return false
}
