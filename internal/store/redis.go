package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mgirard/lux-rentals/api/internal/domain"
)

// RedisBlobStore is the Redis-backed BlobStore used in production.
type RedisBlobStore struct {
	client *redis.Client
}

// NewRedisBlobStore connects to Redis and verifies the connection with a ping
// before returning. The caller owns the returned store and should Close it on
// shutdown.
func NewRedisBlobStore(ctx context.Context, addr, password string) (*RedisBlobStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("store.NewRedisBlobStore: ping %s: %w", addr, err)
	}

	return &RedisBlobStore{client: client}, nil
}

// Close releases the underlying connection pool.
func (r *RedisBlobStore) Close() error {
	return r.client.Close()
}

// Get returns the value stored under key.
// redis.Nil is mapped to domain.ErrNotFound so callers never see the driver error.
func (r *RedisBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("store.RedisBlobStore.Get: %q: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("store.RedisBlobStore.Get: %q: %w", key, err)
	}
	return v, nil
}

// Set stores value under key. A zero ttl persists the key indefinitely.
func (r *RedisBlobStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("store.RedisBlobStore.Set: %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (r *RedisBlobStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("store.RedisBlobStore.Delete: %q: %w", key, err)
	}
	return nil
}
