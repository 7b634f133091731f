package ports

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/cargorent/storefront/internal/core/domain"
)

// SessionSnapshot is a point-in-time view of a client's session.
type SessionSnapshot struct {
	Restored bool
	Identity *domain.Identity
}

// SessionService owns who is logged in for one client.
type SessionService interface {
	Restore(ctx context.Context)
	AwaitRestored(ctx context.Context) error
	Current() SessionSnapshot
	Login(ctx context.Context, email, password string) (*domain.Identity, error)
	Logout(ctx context.Context)
	Register(ctx context.Context, profile domain.RegistrationProfile) (json.RawMessage, error)
	RefreshCompanyStatus(ctx context.Context) error
}

// CartService owns the not-yet-ordered rental selections of one client.
type CartService interface {
	Initialize(ctx context.Context)
	Items() domain.Cart
	AddItem(ctx context.Context, v domain.Vehicle, start, end domain.Date) (domain.CartLineItem, error)
	RemoveItem(ctx context.Context, cartLineID string) error
	Clear(ctx context.Context) error
	Total() decimal.Decimal
	Checkout(ctx context.Context, token string) ([]domain.PlacedOrder, error)
}

// Workspace bundles the state holders of one browser client.
type Workspace interface {
	ClientID() string
	Session() SessionService
	Cart() CartService
}

// WorkspaceResolver hands out the workspace of a client, creating it on
// first use.
type WorkspaceResolver interface {
	Resolve(ctx context.Context, clientID string) (Workspace, error)
}

// RefreshScheduler queues a company-status refresh for a client.
type RefreshScheduler interface {
	Schedule(clientID string)
}
