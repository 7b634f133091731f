// Package sealed encrypts selected values before they reach the state store.
package sealed

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"

	"github.com/cargorent/storefront/internal/core/ports"
)

const nonceSize = 24

var ErrCorrupt = errors.New("sealed value corrupt")

// Store seals the values of keys whose last segment is one of the
// configured names and passes every other key through untouched.
type Store struct {
	inner  ports.StateStore
	key    [32]byte
	sealed map[string]struct{}
}

// New derives the secretbox key from secret. names are bare key names such
// as "token"; they match any client namespace.
func New(inner ports.StateStore, secret string, names ...string) (*Store, error) {
	if secret == "" {
		return nil, errors.New("sealed: empty secret")
	}
	s := &Store{
		inner:  inner,
		key:    sha256.Sum256([]byte("storefront/sealed:" + secret)),
		sealed: make(map[string]struct{}, len(names)),
	}
	for _, n := range names {
		s.sealed[n] = struct{}{}
	}
	return s, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.inner.Get(ctx, key)
	if err != nil || !s.applies(key) {
		return v, err
	}
	return s.open(v)
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if !s.applies(key) {
		return s.inner.Set(ctx, key, value)
	}
	box, err := s.seal(value)
	if err != nil {
		return err
	}
	return s.inner.Set(ctx, key, box)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

func (s *Store) applies(key string) bool {
	name := key
	if i := strings.LastIndexByte(key, ':'); i >= 0 {
		name = key[i+1:]
	}
	_, ok := s.sealed[name]
	return ok
}

func (s *Store) seal(plain []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("seal nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], plain, &nonce, &s.key), nil
}

func (s *Store) open(box []byte) ([]byte, error) {
	if len(box) < nonceSize+secretbox.Overhead {
		return nil, ErrCorrupt
	}
	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])
	plain, ok := secretbox.Open(nil, box[nonceSize:], &nonce, &s.key)
	if !ok {
		return nil, ErrCorrupt
	}
	return plain, nil
}
