package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/cargorent/storefront/internal/core/domain"
)

const defaultLockTTL = 30 * time.Second

// releaseScript deletes the lock only if it still holds our token, so a
// holder whose TTL lapsed cannot free somebody else's lock.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SubmitLock guards in-flight submissions with SET NX.
// Key format: submit:<client_id>:<op>
type SubmitLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSubmitLock creates a SubmitLock. The TTL bounds how long a crashed
// holder can block the client.
func NewSubmitLock(client *redis.Client, ttl time.Duration) *SubmitLock {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &SubmitLock{client: client, ttl: ttl}
}

func (l *SubmitLock) Acquire(ctx context.Context, clientID, op string) (func(), error) {
	key := l.key(clientID, op)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("submit lock: %w", err)
	}
	if !ok {
		return nil, domain.ErrSubmitInFlight
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// Detached so a cancelled request still frees its lock.
			ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
			defer cancel()
			_ = releaseScript.Run(ctx, l.client, []string{key}, token).Err()
		})
	}, nil
}

func (l *SubmitLock) key(clientID, op string) string {
	return fmt.Sprintf("submit:%s:%s", clientID, op)
}
