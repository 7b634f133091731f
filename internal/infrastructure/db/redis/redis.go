package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultTimeout    = 5 * time.Second
	defaultClientName = "storefront"
)

// Config describes the Redis deployment that holds client state and submit
// locks.
type Config struct {
	Addr     string
	Password string
	DB       int
	// ClientName shows up in CLIENT LIST so storefront connections can be
	// told apart on a shared instance.
	ClientName string
	Timeout    time.Duration
	// StateTTL expires idle client namespaces; zero keeps them forever.
	StateTTL time.Duration
	LockTTL  time.Duration
}

func (c Config) options() *redis.Options {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	name := c.ClientName
	if name == "" {
		name = defaultClientName
	}
	return &redis.Options{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		ClientName:   name,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
}

// Connect dials Redis and pings it once.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts := cfg.options()
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// Backend is the state store and submit lock sharing one connection pool.
type Backend struct {
	Store *Store
	Lock  *SubmitLock

	client *redis.Client
}

// Open connects and builds the client state store and the submit lock on top
// of the same client.
func Open(ctx context.Context, cfg Config) (*Backend, error) {
	client, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Backend{
		Store:  NewStore(client, cfg.StateTTL),
		Lock:   NewSubmitLock(client, cfg.LockTTL),
		client: client,
	}, nil
}

func (b *Backend) Close() error {
	return b.client.Close()
}
