package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cargorent/storefront/internal/core/domain"
)

func TestWorkspaceRegistry_ResolveIsStablePerClient(t *testing.T) {
	store := newStubStore()
	idp := &stubIdentityProvider{}
	reg, err := NewWorkspaceRegistry(store, idp, &stubOrderPlacer{}, RegistryConfig{CacheSize: 4}, zerolog.Nop())
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	a1, _ := reg.Resolve(context.Background(), "client-a")
	a2, _ := reg.Resolve(context.Background(), "client-a")
	b, _ := reg.Resolve(context.Background(), "client-b")

	if a1 != a2 {
		t.Fatalf("expected the same workspace for the same client")
	}
	if a1 == b {
		t.Fatalf("expected distinct workspaces for distinct clients")
	}
	if reg.Len() != 2 {
		t.Fatalf("expected 2 cached workspaces, got %d", reg.Len())
	}
}

func TestWorkspaceRegistry_NamespacesAreIsolated(t *testing.T) {
	store := newStubStore()
	reg, _ := NewWorkspaceRegistry(store, &stubIdentityProvider{}, &stubOrderPlacer{}, RegistryConfig{}, zerolog.Nop())
	ctx := context.Background()

	a, _ := reg.Resolve(ctx, "client-a")
	b, _ := reg.Resolve(ctx, "client-b")

	_, _ = a.Cart().AddItem(ctx, corolla(10, 1), domain.NewDate(2024, 1, 1), domain.NewDate(2024, 1, 2))

	if len(b.Cart().Items()) != 0 {
		t.Fatalf("client-b sees client-a's cart")
	}
	if !store.has(NamespaceKey("client-a", CartKey)) {
		t.Fatalf("expected cart under client-a namespace")
	}
	if store.has(NamespaceKey("client-b", CartKey)) {
		t.Fatalf("client-b cart should not have been written")
	}
}

func TestWorkspaceRegistry_RestoresInBackground(t *testing.T) {
	store := newStubStore()
	store.data[NamespaceKey("client-a", CredentialKey)] = []byte("tok")
	idp := &stubIdentityProvider{
		currentFn: func(token string) (*domain.Identity, error) {
			return &domain.Identity{Token: token, Role: domain.RoleCustomer, ID: "1"}, nil
		},
	}
	reg, _ := NewWorkspaceRegistry(store, idp, &stubOrderPlacer{}, RegistryConfig{RestoreTimeout: time.Second}, zerolog.Nop())

	ws, _ := reg.Resolve(context.Background(), "client-a")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := ws.Session().AwaitRestored(ctx); err != nil {
		t.Fatalf("restore did not finish: %v", err)
	}
	if id := ws.Session().Current().Identity; id == nil || id.Role != domain.RoleCustomer {
		t.Fatalf("unexpected identity %+v", id)
	}
}

func TestWorkspaceRegistry_EvictedWorkspaceRehydrates(t *testing.T) {
	store := newStubStore()
	reg, _ := NewWorkspaceRegistry(store, &stubIdentityProvider{}, &stubOrderPlacer{}, RegistryConfig{CacheSize: 1}, zerolog.Nop())
	ctx := context.Background()

	a, _ := reg.Resolve(ctx, "client-a")
	line, _ := a.Cart().AddItem(ctx, corolla(10, 1), domain.NewDate(2024, 1, 1), domain.NewDate(2024, 1, 2))

	_, _ = reg.Resolve(ctx, "client-b") // evicts client-a

	again, _ := reg.Resolve(ctx, "client-a")
	if again == a {
		t.Fatalf("expected a rebuilt workspace after eviction")
	}
	items := again.Cart().Items()
	if len(items) != 1 || items[0].CartLineID != line.CartLineID {
		t.Fatalf("cart not rehydrated: %+v", items)
	}
}

func TestWorkspaceRegistry_RejectsEmptyClientID(t *testing.T) {
	reg, _ := NewWorkspaceRegistry(newStubStore(), &stubIdentityProvider{}, &stubOrderPlacer{}, RegistryConfig{}, zerolog.Nop())
	if _, err := reg.Resolve(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty client id")
	}
}
