package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/cargorent/storefront/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub store
// ---------------------------------------------------------------------------

type stubStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	setErr  error
	getErr  error
	deletes []string
}

func newStubStore() *stubStore {
	return &stubStore{data: make(map[string][]byte)}
}

func (s *stubStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	v, ok := s.data[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *stubStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *stubStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, key)
	delete(s.data, key)
	return nil
}

func (s *stubStore) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[key]
	return ok
}

// ---------------------------------------------------------------------------
// Backend stubs
// ---------------------------------------------------------------------------

type stubIdentityProvider struct {
	mu sync.Mutex

	currentFn      func(token string) (*domain.Identity, error)
	authenticateFn func(email, password string) (*domain.Identity, error)
	registerFn     func(p domain.RegistrationProfile) (json.RawMessage, error)

	currentCalls int
}

func (p *stubIdentityProvider) CurrentIdentity(_ context.Context, token string) (*domain.Identity, error) {
	p.mu.Lock()
	p.currentCalls++
	p.mu.Unlock()
	return p.currentFn(token)
}

func (p *stubIdentityProvider) Authenticate(_ context.Context, email, password string) (*domain.Identity, error) {
	return p.authenticateFn(email, password)
}

func (p *stubIdentityProvider) Register(_ context.Context, profile domain.RegistrationProfile) (json.RawMessage, error) {
	return p.registerFn(profile)
}

func (p *stubIdentityProvider) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentCalls
}

type stubOrderPlacer struct {
	placed  []domain.OrderRequest
	tokens  []string
	failAt  int // 1-based call number that fails; 0 = never
	failErr error
}

func (o *stubOrderPlacer) PlaceOrder(_ context.Context, token string, req domain.OrderRequest) (*domain.PlacedOrder, error) {
	if o.failAt != 0 && len(o.placed)+1 == o.failAt {
		return nil, o.failErr
	}
	o.placed = append(o.placed, req)
	o.tokens = append(o.tokens, token)
	return &domain.PlacedOrder{OrderID: int64(len(o.placed)), Status: "PENDING"}, nil
}
