package middleware

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/cargorent/storefront/internal/core/domain"
	"github.com/cargorent/storefront/internal/core/ports"
)

type stubSession struct {
	restored bool
	identity *domain.Identity
	ready    chan struct{}
}

func newStubSession(restored bool, id *domain.Identity) *stubSession {
	s := &stubSession{restored: restored, identity: id, ready: make(chan struct{})}
	if restored {
		close(s.ready)
	}
	return s
}

func (s *stubSession) Restore(context.Context) {}

func (s *stubSession) AwaitRestored(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *stubSession) Current() ports.SessionSnapshot {
	return ports.SessionSnapshot{Restored: s.restored, Identity: s.identity.Clone()}
}

func (s *stubSession) Login(context.Context, string, string) (*domain.Identity, error) {
	return nil, nil
}

func (s *stubSession) Logout(context.Context) {}

func (s *stubSession) Register(context.Context, domain.RegistrationProfile) (json.RawMessage, error) {
	return nil, nil
}

func (s *stubSession) RefreshCompanyStatus(context.Context) error { return nil }

type stubWorkspace struct {
	ports.Workspace
	clientID string
	session  *stubSession
}

func (w *stubWorkspace) ClientID() string              { return w.clientID }
func (w *stubWorkspace) Session() ports.SessionService { return w.session }

type stubResolver struct {
	mu       sync.Mutex
	resolved []string
	session  *stubSession
}

func (r *stubResolver) Resolve(_ context.Context, clientID string) (ports.Workspace, error) {
	r.mu.Lock()
	r.resolved = append(r.resolved, clientID)
	r.mu.Unlock()
	s := r.session
	if s == nil {
		s = newStubSession(true, nil)
	}
	return &stubWorkspace{clientID: clientID, session: s}, nil
}
