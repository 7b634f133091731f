package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/cargorent/storefront/internal/api/metrics"
	"github.com/cargorent/storefront/internal/core/domain"
	"github.com/cargorent/storefront/internal/core/ports"
)

// CredentialKey is where the bearer token lives in a client namespace.
const CredentialKey = "token"

// SessionManager is the single source of truth for who is logged in on one
// client and what they may do.
type SessionManager struct {
	store ports.KeyValueStore
	idp   ports.IdentityProvider
	log   zerolog.Logger

	restoreOnce sync.Once
	ready       chan struct{}

	mu       sync.RWMutex
	identity *domain.Identity
	restored bool
	// epoch advances on every logout; a restore that started in an older
	// epoch must not bring the session back.
	epoch uint64
}

func NewSessionManager(store ports.KeyValueStore, idp ports.IdentityProvider, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		store: store,
		idp:   idp,
		log:   log,
		ready: make(chan struct{}),
	}
}

// Restore turns a persisted credential into a live identity, or discards it.
// Only the first call does any work; it always ends in the restored state.
func (s *SessionManager) Restore(ctx context.Context) {
	s.restoreOnce.Do(func() {
		s.mu.RLock()
		epoch := s.epoch
		s.mu.RUnlock()

		id := s.restore(ctx)

		s.mu.Lock()
		if s.epoch == epoch {
			s.identity = id
		}
		s.restored = true
		s.mu.Unlock()
		close(s.ready)
	})
}

func (s *SessionManager) restore(ctx context.Context) *domain.Identity {
	raw, err := s.store.Get(ctx, CredentialKey)
	if errors.Is(err, domain.ErrKeyNotFound) {
		metrics.SessionRestoresTotal.WithLabelValues("anonymous").Inc()
		return nil
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("stored credential unreadable, starting anonymous")
		metrics.SessionRestoresTotal.WithLabelValues("store_error").Inc()
		return nil
	}

	token := string(raw)
	if token == "" {
		s.discardCredential(ctx)
		metrics.SessionRestoresTotal.WithLabelValues("anonymous").Inc()
		return nil
	}

	id, err := s.idp.CurrentIdentity(ctx, token)
	if err != nil || !id.Complete() {
		s.log.Info().Err(err).Msg("session restoration failed, discarding credential")
		s.discardCredential(ctx)
		metrics.SessionRestoresTotal.WithLabelValues("rejected").Inc()
		return nil
	}

	s.log.Debug().Str("role", string(id.Role)).Str("user_id", id.ID).Msg("session restored")
	metrics.SessionRestoresTotal.WithLabelValues("restored").Inc()
	return id.Clone()
}

// AwaitRestored blocks until Restore has finished or ctx is done.
func (s *SessionManager) AwaitRestored(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *SessionManager) Current() ports.SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ports.SessionSnapshot{Restored: s.restored, Identity: s.identity.Clone()}
}

// Login authenticates against the backend and adopts the returned identity.
// On failure nothing changes and the backend error is returned as is.
func (s *SessionManager) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	if err := s.AwaitRestored(ctx); err != nil {
		return nil, err
	}

	id, err := s.idp.Authenticate(ctx, email, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}
	if !id.Complete() {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("login: incomplete identity: %w", domain.ErrBackendUnavailable)
	}

	if err := s.store.Set(ctx, CredentialKey, []byte(id.Token)); err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("login: persist credential: %w", err)
	}

	s.mu.Lock()
	s.identity = id.Clone()
	s.mu.Unlock()

	metrics.LoginsTotal.WithLabelValues(string(id.Role)).Inc()
	s.log.Info().Str("role", string(id.Role)).Str("user_id", id.ID).Msg("logged in")
	return id.Clone(), nil
}

// Logout forgets the credential. It never fails; a store error only means
// the stale token will be rejected on the next restore.
func (s *SessionManager) Logout(ctx context.Context) {
	if err := s.AwaitRestored(ctx); err != nil {
		s.log.Warn().Err(err).Msg("logout before restore finished")
	}

	s.mu.Lock()
	s.identity = nil
	s.epoch++
	s.mu.Unlock()

	s.discardCredential(context.WithoutCancel(ctx))
}

// Register forwards the profile. It does not log the caller in.
func (s *SessionManager) Register(ctx context.Context, profile domain.RegistrationProfile) (json.RawMessage, error) {
	return s.idp.Register(ctx, profile)
}

// RefreshCompanyStatus re-reads the company approval flag for a company
// session. Running it twice is harmless.
func (s *SessionManager) RefreshCompanyStatus(ctx context.Context) error {
	if err := s.AwaitRestored(ctx); err != nil {
		return err
	}

	s.mu.RLock()
	cur := s.identity.Clone()
	s.mu.RUnlock()
	if cur == nil || cur.Role != domain.RoleCompany {
		return nil
	}

	fresh, err := s.idp.CurrentIdentity(ctx, cur.Token)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			s.dropIfCurrent(ctx, cur.Token)
		}
		return fmt.Errorf("refresh company status: %w", err)
	}

	s.mu.Lock()
	if s.identity != nil && s.identity.Token == cur.Token {
		s.identity.IsCompanyActive = fresh.IsCompanyActive
		s.identity.CompanyID = fresh.CompanyID
	}
	s.mu.Unlock()
	return nil
}

// dropIfCurrent ends the session only if it still belongs to token; a login
// that happened meanwhile wins.
func (s *SessionManager) dropIfCurrent(ctx context.Context, token string) {
	s.mu.Lock()
	if s.identity == nil || s.identity.Token != token {
		s.mu.Unlock()
		return
	}
	s.identity = nil
	s.mu.Unlock()
	s.discardCredential(ctx)
}

func (s *SessionManager) discardCredential(ctx context.Context) {
	if err := s.store.Delete(ctx, CredentialKey); err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		s.log.Warn().Err(err).Msg("failed to delete stored credential")
	}
}
