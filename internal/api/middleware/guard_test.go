package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cargorent/storefront/internal/core/domain"
)

func guardContext(target string, session *stubSession) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	SetWorkspace(c, &stubWorkspace{clientID: "c1", session: session})
	return c, rec
}

func customer() *domain.Identity {
	return &domain.Identity{Token: "tok", Role: domain.RoleCustomer, ID: "7"}
}

func TestRouteGuard(t *testing.T) {
	tests := []struct {
		name       string
		session    *stubSession
		permitted  []domain.Role
		wantCode   int
		wantLoc    string
		wantCalled bool
	}{
		{"restoring waits", newStubSession(false, nil), []domain.Role{domain.RoleCustomer}, http.StatusAccepted, "", false},
		{"anonymous to login", newStubSession(true, nil), []domain.Role{domain.RoleCustomer}, http.StatusSeeOther, "/login?redirect=%2Fcart%3Fx%3D1", false},
		{"wrong role to home", newStubSession(true, &domain.Identity{Token: "t", Role: domain.RoleAdmin}), []domain.Role{domain.RoleCustomer}, http.StatusSeeOther, "/", false},
		{"permitted allowed", newStubSession(true, customer()), []domain.Role{domain.RoleCustomer}, http.StatusOK, "", true},
		{"empty set admits any identity", newStubSession(true, customer()), nil, http.StatusOK, "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := guardContext("/cart?x=1", tc.session)

			called := false
			handler := RouteGuard(tc.permitted...)(func(c echo.Context) error {
				called = true
				return c.NoContent(http.StatusOK)
			})
			if err := handler(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}

			if called != tc.wantCalled {
				t.Fatalf("next called = %v, want %v", called, tc.wantCalled)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			if got := rec.Header().Get(echo.HeaderLocation); got != tc.wantLoc {
				t.Fatalf("expected location %q, got %q", tc.wantLoc, got)
			}
			if tc.wantCode == http.StatusAccepted && rec.Header().Get("Retry-After") != "1" {
				t.Fatalf("expected Retry-After header")
			}
		})
	}
}

func TestRequireSession(t *testing.T) {
	tests := []struct {
		name      string
		session   *stubSession
		permitted []domain.Role
		wantErr   error
	}{
		{"anonymous", newStubSession(true, nil), nil, domain.ErrUnauthenticated},
		{"wrong role", newStubSession(true, &domain.Identity{Token: "t", Role: domain.RoleCompany}), []domain.Role{domain.RoleCustomer}, domain.ErrForbidden},
		{"permitted", newStubSession(true, customer()), []domain.Role{domain.RoleCustomer}, nil},
		{"any identity", newStubSession(true, customer()), nil, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := guardContext("/api/cart/checkout", tc.session)
			err := RequireSession(tc.permitted...)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})(c)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestRequireSession_WaitsForRestore(t *testing.T) {
	session := newStubSession(false, nil)
	c, _ := guardContext("/api/session", session)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	c.SetRequest(c.Request().WithContext(ctx))

	err := RequireSession()(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})(c)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded while restoring, got %v", err)
	}
}

func TestRouteGuard_MissingWorkspace(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/cart", nil), httptest.NewRecorder())
	err := RouteGuard()(func(c echo.Context) error { return nil })(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 HTTPError, got %v", err)
	}
}
