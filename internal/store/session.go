package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mgirard/lux-rentals/api/internal/domain"
)

// SessionStore holds the server-side session records: one redacted identity
// per live token id. Deleting the record revokes the token even before it
// expires.
type SessionStore interface {
	// Save stores the identity under the token id for the given ttl.
	Save(ctx context.Context, tokenID string, ident domain.Identity, ttl time.Duration) error

	// Get returns the identity for a token id.
	// Returns domain.ErrNotFound for unknown, expired, or revoked sessions.
	Get(ctx context.Context, tokenID string) (domain.Identity, error)

	// Delete revokes the session. Deleting an absent session is not an error.
	Delete(ctx context.Context, tokenID string) error
}

// Sessions is the blob-store-backed SessionStore.
// Records live under "session:<tokenID>" and expire via the blob store's TTL.
type Sessions struct {
	blob BlobStore
}

// NewSessions constructs a SessionStore over the given blob store.
func NewSessions(blob BlobStore) *Sessions {
	return &Sessions{blob: blob}
}

// Save stores the redacted identity as a JSON record.
func (s *Sessions) Save(ctx context.Context, tokenID string, ident domain.Identity, ttl time.Duration) error {
	raw, err := json.Marshal(ident)
	if err != nil {
		return fmt.Errorf("store.Sessions.Save: encode identity: %w", err)
	}
	if err := s.blob.Set(ctx, sessionKeyPrefix+tokenID, raw, ttl); err != nil {
		return fmt.Errorf("store.Sessions.Save: %w", err)
	}
	return nil
}

// Get returns the identity for a live session.
func (s *Sessions) Get(ctx context.Context, tokenID string) (domain.Identity, error) {
	raw, err := s.blob.Get(ctx, sessionKeyPrefix+tokenID)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("store.Sessions.Get: %w", err)
	}

	var ident domain.Identity
	if err := json.Unmarshal(raw, &ident); err != nil {
		return domain.Identity{}, fmt.Errorf("store.Sessions.Get: decode identity: %w", err)
	}
	return ident, nil
}

// Delete revokes the session unconditionally.
func (s *Sessions) Delete(ctx context.Context, tokenID string) error {
	if err := s.blob.Delete(ctx, sessionKeyPrefix+tokenID); err != nil {
		return fmt.Errorf("store.Sessions.Delete: %w", err)
	}
	return nil
}
