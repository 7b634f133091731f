package service

import (
	"context"

	"github.com/cargorent/storefront/internal/core/ports"
)

const namespacePrefix = "storefront:client:"

// NamespaceKey is the fully qualified store key of key for clientID.
func NamespaceKey(clientID, key string) string {
	return namespacePrefix + clientID + ":" + key
}

// clientStore confines a shared store to one client's keys, the way each
// browser only ever sees its own local storage.
type clientStore struct {
	inner    ports.KeyValueStore
	clientID string
}

func newClientStore(inner ports.KeyValueStore, clientID string) *clientStore {
	return &clientStore{inner: inner, clientID: clientID}
}

func (s *clientStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.inner.Get(ctx, NamespaceKey(s.clientID, key))
}

func (s *clientStore) Set(ctx context.Context, key string, value []byte) error {
	return s.inner.Set(ctx, NamespaceKey(s.clientID, key), value)
}

func (s *clientStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, NamespaceKey(s.clientID, key))
}
