// Package testutil provides shared helpers for integration tests.
// Helpers in this package skip automatically when required environment
// variables are not set, so unit tests can run without a running Redis.
package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/mgirard/lux-rentals/api/internal/store"
)

// NewBlobStore opens a store.RedisBlobStore connected to the instance named
// by the TEST_REDIS_ADDR environment variable.
//
// The test is skipped automatically if TEST_REDIS_ADDR is not set, so
// integration tests are opt-in and never break CI environments that lack a
// Redis. The store is closed automatically when the test (and all its
// subtests) finish. Tests share the instance, so every key they touch should
// go through Key to stay collision-free.
func NewBlobStore(t *testing.T) *store.RedisBlobStore {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set; skipping Redis integration test")
	}

	blob, err := store.NewRedisBlobStore(context.Background(), addr, os.Getenv("TEST_REDIS_PASSWORD"))
	if err != nil {
		t.Fatalf("testutil.NewBlobStore: %v", err)
	}

	t.Cleanup(func() { _ = blob.Close() })
	return blob
}

// Key returns a key namespaced to the current test and registers a cleanup
// that deletes it, so integration tests leave no residue behind.
func Key(t *testing.T, blob *store.RedisBlobStore, suffix string) string {
	t.Helper()

	key := "test:" + t.Name() + ":" + suffix
	t.Cleanup(func() { _ = blob.Delete(context.Background(), key) })
	return key
}
