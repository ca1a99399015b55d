// Package store contains all persistence logic for the booking API.
//
// The persistence model is deliberately simple: whole collections are
// serialized as JSON snapshot blobs and rewritten in full on every mutation.
// BlobStore is the opaque key-value substrate those blobs live in; the
// canonical implementation is Redis, with an in-memory implementation for
// tests and single-process use.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mgirard/lux-rentals/api/internal/domain"
)

// Snapshot blob keys. Session records use the "session:" prefix plus the
// token id.
const (
	KeyBookings      = "bookings"
	KeyUsers         = "users"
	sessionKeyPrefix = "session:"
)

// BlobStore is the minimal key-value contract the ledger, directory, and
// session store need. A zero ttl means the entry never expires.
// Get returns domain.ErrNotFound for absent (or expired) keys.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// MemoryBlobStore is a process-local BlobStore. It honors TTLs lazily: an
// expired entry is treated as absent on the next Get.
type MemoryBlobStore struct {
	mu      sync.RWMutex
	data    map[string][]byte
	expires map[string]time.Time
}

// NewMemoryBlobStore returns an empty in-memory blob store.
func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{
		data:    make(map[string][]byte),
		expires: make(map[string]time.Time),
	}
}

// Get returns the value stored under key, or domain.ErrNotFound.
func (m *MemoryBlobStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("store.MemoryBlobStore.Get: %q: %w", key, domain.ErrNotFound)
	}
	if exp, has := m.expires[key]; has && time.Now().After(exp) {
		return nil, fmt.Errorf("store.MemoryBlobStore.Get: %q: %w", key, domain.ErrNotFound)
	}

	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set stores value under key, replacing any previous value.
func (m *MemoryBlobStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v

	if ttl > 0 {
		m.expires[key] = time.Now().Add(ttl)
	} else {
		delete(m.expires, key)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (m *MemoryBlobStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	delete(m.expires, key)
	return nil
}
