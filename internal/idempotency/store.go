package idempotency

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Store guards side effects that must happen at most once per key, e.g.
// a refund intent for a given session transition. Keys expire so a
// crashed orchestration can be retried after the TTL.
type Store interface {
	// Begin claims the key. False means another call already holds it.
	Begin(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release frees the key early, for use when the guarded work failed
	// and should be retryable immediately.
	Release(ctx context.Context, key string) error
}

type redisStore struct {
	rdb *redis.Client
}

func NewRedisStore(addr string) Store {
	return &redisStore{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (s *redisStore) Begin(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, "idem:"+key, "1", ttl).Result()
}

func (s *redisStore) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, "idem:"+key).Err()
}

// TransitionKey is the canonical key for a session lifecycle side effect.
func TransitionKey(sessionID fmt.Stringer, event string) string {
	return fmt.Sprintf("session:%s:%s", sessionID, event)
}
