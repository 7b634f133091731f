package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"github.com/cargorent/storefront/internal/core/ports"
)

const (
	defaultWorkspaceCacheSize = 10_000
	defaultRestoreTimeout     = 10 * time.Second
)

// Workspace is the application context of one browser client: one session
// manager and one cart manager sharing the client's namespace.
type Workspace struct {
	clientID string
	session  *SessionManager
	cart     *CartManager
}

func (w *Workspace) ClientID() string              { return w.clientID }
func (w *Workspace) Session() ports.SessionService { return w.session }
func (w *Workspace) Cart() ports.CartService       { return w.cart }

// RegistryConfig tunes a WorkspaceRegistry. Zero values pick defaults.
type RegistryConfig struct {
	CacheSize      int
	RestoreTimeout time.Duration
}

// WorkspaceRegistry creates workspaces lazily and keeps the recently used
// ones in memory. An evicted workspace is rebuilt from the store on its next
// request, exactly like a browser reload.
type WorkspaceRegistry struct {
	store          ports.KeyValueStore
	idp            ports.IdentityProvider
	orders         ports.OrderPlacer
	log            zerolog.Logger
	restoreTimeout time.Duration

	mu    sync.Mutex
	cache *lru.Cache[string, *Workspace]
}

func NewWorkspaceRegistry(
	store ports.KeyValueStore,
	idp ports.IdentityProvider,
	orders ports.OrderPlacer,
	cfg RegistryConfig,
	log zerolog.Logger,
) (*WorkspaceRegistry, error) {
	size := cfg.CacheSize
	if size <= 0 {
		size = defaultWorkspaceCacheSize
	}
	timeout := cfg.RestoreTimeout
	if timeout <= 0 {
		timeout = defaultRestoreTimeout
	}

	cache, err := lru.New[string, *Workspace](size)
	if err != nil {
		return nil, fmt.Errorf("workspace cache: %w", err)
	}

	return &WorkspaceRegistry{
		store:          store,
		idp:            idp,
		orders:         orders,
		log:            log,
		restoreTimeout: timeout,
		cache:          cache,
	}, nil
}

// Resolve returns the workspace of clientID. A new workspace loads its cart
// before returning and restores its session in the background; callers that
// need the session must wait on AwaitRestored or treat it as pending.
func (r *WorkspaceRegistry) Resolve(ctx context.Context, clientID string) (ports.Workspace, error) {
	if clientID == "" {
		return nil, fmt.Errorf("resolve workspace: empty client id")
	}

	r.mu.Lock()
	ws, ok := r.cache.Get(clientID)
	if !ok {
		ws = r.newWorkspace(clientID)
		r.cache.Add(clientID, ws)
	}
	r.mu.Unlock()

	if !ok {
		go r.restore(ws)
	}
	ws.cart.Initialize(ctx)
	return ws, nil
}

func (r *WorkspaceRegistry) newWorkspace(clientID string) *Workspace {
	store := newClientStore(r.store, clientID)
	log := r.log.With().Str("client_id", clientID).Logger()
	return &Workspace{
		clientID: clientID,
		session:  NewSessionManager(store, r.idp, log),
		cart:     NewCartManager(store, r.orders, log),
	}
}

func (r *WorkspaceRegistry) restore(ws *Workspace) {
	ctx, cancel := context.WithTimeout(context.Background(), r.restoreTimeout)
	defer cancel()
	ws.session.Restore(ctx)
}

// Len reports how many workspaces are cached.
func (r *WorkspaceRegistry) Len() int {
	return r.cache.Len()
}
