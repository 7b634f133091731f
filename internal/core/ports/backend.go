package ports

import (
	"context"
	"encoding/json"

	"github.com/cargorent/storefront/internal/core/domain"
)

// IdentityProvider is the backend's authentication surface.
type IdentityProvider interface {
	// CurrentIdentity resolves the identity behind a stored bearer token.
	// The returned identity carries token.
	CurrentIdentity(ctx context.Context, token string) (*domain.Identity, error)
	Authenticate(ctx context.Context, email, password string) (*domain.Identity, error)
	// Register returns the backend's payload untouched.
	Register(ctx context.Context, profile domain.RegistrationProfile) (json.RawMessage, error)
}

// OrderPlacer submits orders on behalf of an authenticated customer.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, token string, req domain.OrderRequest) (*domain.PlacedOrder, error)
}
