// Package memory holds process-local implementations of the state store and
// submit lock. State is lost on restart; use it for development and tests.
package memory

import (
	"context"
	"sync"

	"github.com/cargorent/storefront/internal/core/domain"
)

type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewStore() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }

// SubmitLock is the single-process counterpart of the Redis lock.
type SubmitLock struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewSubmitLock() *SubmitLock {
	return &SubmitLock{held: make(map[string]struct{})}
}

func (l *SubmitLock) Acquire(_ context.Context, clientID, op string) (func(), error) {
	key := clientID + ":" + op

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, busy := l.held[key]; busy {
		return nil, domain.ErrSubmitInFlight
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}, nil
}
