// theme/store_redis.go
package theme

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultStoreTimeout bounds store round-trips issued without a caller
// context (LoadActive and SaveActive run inside registry calls).
const defaultStoreTimeout = 5 * time.Second

// RedisStore persists the selection in a single Redis key, so several
// instances pointed at the same Redis agree on the active theme.
type RedisStore struct {
	client  redis.UniversalClient
	key     string
	timeout time.Duration
}

// NewRedisStore creates a store using the given client. An empty key
// defaults to "lumen:active_theme".
func NewRedisStore(client redis.UniversalClient, key string) *RedisStore {
	if key == "" {
		key = "lumen:active_theme"
	}
	return &RedisStore{
		client:  client,
		key:     key,
		timeout: defaultStoreTimeout,
	}
}

// LoadActive reads the stored directory key. A missing key means no
// selection has been saved yet.
func (s *RedisStore) LoadActive() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	val, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return val, nil
}

// SaveActive writes the directory key. The value never expires.
func (s *RedisStore) SaveActive(dir string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	return s.client.Set(ctx, s.key, dir, 0).Err()
}

// Ping verifies the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
