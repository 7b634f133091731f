package ports

import "context"

// KeyValueStore is the persisted per-client state. Get returns
// domain.ErrKeyNotFound when nothing is stored under key.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// StateStore is the shared backing store all client namespaces live in.
type StateStore interface {
	KeyValueStore
	Ping(ctx context.Context) error
}

// SubmitLock keeps one client from running the same submission twice at
// once. Acquire returns domain.ErrSubmitInFlight while another holder is
// active; release is safe to call more than once.
type SubmitLock interface {
	Acquire(ctx context.Context, clientID, op string) (release func(), err error)
}
