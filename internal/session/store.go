package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/run-bigpig/carpick/internal/config"
)

// ErrNotFound marks a true cache miss (expired or never created), as opposed
// to a transient store error. Callers use the distinction to decide whether
// to create a fresh session.
var ErrNotFound = errors.New("session: not found")

// Store is the key-value collaborator boundary. Implementations must be safe
// to call with no guaranteed availability.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// RedisStore is the production Store.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Store backed by the configured Redis instance.
// Connectivity is not checked here; every operation degrades individually.
func NewRedisStore(cfg config.RedisConfig) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

// NewRedisStoreFromClient wraps an existing client, used by tests.
func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get fetches a key, mapping redis misses to ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// SetWithTTL upserts a key with a bounded lifetime.
func (s *RedisStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// Del removes a key.
func (s *RedisStore) Del(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
