package auth

import (
	"context"

	"github.com/mgirard/lux-rentals/api/internal/domain"
)

type contextKey int

const (
	identityKey contextKey = iota
	tokenIDKey
)

// WithIdentity returns a context carrying the authenticated identity.
func WithIdentity(ctx context.Context, ident domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

// IdentityFrom extracts the authenticated identity from the context.
// ok is false when the request was not authenticated.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	ident, ok := ctx.Value(identityKey).(domain.Identity)
	return ident, ok
}

// WithTokenID returns a context carrying the session token id of the request.
func WithTokenID(ctx context.Context, tokenID string) context.Context {
	return context.WithValue(ctx, tokenIDKey, tokenID)
}

// TokenIDFrom extracts the session token id from the context.
func TokenIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(tokenIDKey).(string)
	return id, ok
}
