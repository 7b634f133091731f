package guard

import (
	"testing"

	"github.com/cargorent/storefront/internal/core/domain"
)

func TestDecide_WaitsWhileRestoring(t *testing.T) {
	d := Decide(false, nil, []domain.Role{domain.RoleCustomer}, "/cart")
	if d.Outcome != Wait || d.Location != "" {
		t.Fatalf("expected wait, got %+v", d)
	}

	// Even a present identity must not be judged before restore finishes.
	d = Decide(false, &domain.Identity{Token: "t", Role: domain.RoleCompany}, []domain.Role{domain.RoleCustomer}, "/cart")
	if d.Outcome != Wait {
		t.Fatalf("expected wait, got %+v", d)
	}
}

func TestDecide_AnonymousGoesToLoginWithDestination(t *testing.T) {
	d := Decide(true, nil, []domain.Role{domain.RoleAdmin}, "/admin-dashboard?tab=companies")
	if d.Outcome != RedirectLogin {
		t.Fatalf("expected login redirect, got %+v", d)
	}
	want := "/login?redirect=%2Fadmin-dashboard%3Ftab%3Dcompanies"
	if d.Location != want {
		t.Fatalf("expected %s, got %s", want, d.Location)
	}
}

func TestDecide_WrongRoleGoesHome(t *testing.T) {
	company := &domain.Identity{Token: "t", Role: domain.RoleCompany}
	d := Decide(true, company, []domain.Role{domain.RoleCustomer}, "/orders")
	if d.Outcome != RedirectHome || d.Location != "/" {
		t.Fatalf("expected home redirect, got %+v", d)
	}
}

func TestDecide_Allows(t *testing.T) {
	customer := &domain.Identity{Token: "t", Role: domain.RoleCustomer}
	if d := Decide(true, customer, []domain.Role{domain.RoleCustomer}, "/cart"); d.Outcome != Allow {
		t.Fatalf("expected allow, got %+v", d)
	}
	if d := Decide(true, customer, nil, "/profile"); d.Outcome != Allow {
		t.Fatalf("empty role set should admit any identity, got %+v", d)
	}
}

func TestDecide_IncompleteIdentityIsAnonymous(t *testing.T) {
	d := Decide(true, &domain.Identity{Role: domain.RoleAdmin}, []domain.Role{domain.RoleAdmin}, "/admin-dashboard")
	if d.Outcome != RedirectLogin {
		t.Fatalf("expected login redirect for tokenless identity, got %+v", d)
	}
}

func TestLoginLocation_DropsForeignTargets(t *testing.T) {
	for _, p := range []string{"", "https://evil.example", "//evil.example/x", "/\\evil.example", "relative"} {
		if got := LoginLocation(p); got != "/login" {
			t.Fatalf("%q: expected bare /login, got %s", p, got)
		}
	}
}

func TestAfterLogin(t *testing.T) {
	member := &domain.Identity{Token: "t", Role: domain.RoleMember}
	if got := AfterLogin(member, "/cart"); got != "/cart" {
		t.Fatalf("expected preserved path, got %s", got)
	}
	if got := AfterLogin(member, ""); got != "/member-dashboard" {
		t.Fatalf("expected member landing, got %s", got)
	}
	if got := AfterLogin(member, "//evil.example"); got != "/member-dashboard" {
		t.Fatalf("expected member landing for foreign target, got %s", got)
	}
	if got := AfterLogin(member, "/login"); got != "/member-dashboard" {
		t.Fatalf("login must not return to itself, got %s", got)
	}
}
