package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mgirard/lux-rentals/api/internal/auth"
	"github.com/mgirard/lux-rentals/api/internal/domain"
	"github.com/mgirard/lux-rentals/api/internal/httputil"
)

// Authenticator resolves a bearer token to an identity plus the session token
// id. service.AuthService satisfies it. Defining the interface here (in the
// consumer package) lets middleware tests inject a stub.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Identity, string, error)
}

// NewAuthenticator returns a middleware that resolves the Authorization
// header. Requests without a bearer token pass through unauthenticated —
// gating is the job of RequireAuth/RequireAdmin on the routes that need it.
// A token that is present but invalid is rejected with 401 rather than
// silently downgraded to anonymous.
func NewAuthenticator(a Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ident, tokenID, err := a.Authenticate(r.Context(), token)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "unauthenticated", "invalid or expired session token")
				return
			}

			ctx := auth.WithIdentity(r.Context(), ident)
			ctx = auth.WithTokenID(ctx, tokenID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects unauthenticated requests with 401.
// Wire it after NewAuthenticator.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.IdentityFrom(r.Context()); !ok {
			writeAuthError(w, http.StatusUnauthorized, "unauthenticated", "sign in to perform this action")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose identity does not carry the
// administrator role. Unauthenticated requests get 401, authenticated
// non-admins 403.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := auth.IdentityFrom(r.Context())
		if !ok {
			writeAuthError(w, http.StatusUnauthorized, "unauthenticated", "sign in to perform this action")
			return
		}
		if !ident.IsAdmin() {
			writeAuthError(w, http.StatusForbidden, "unauthorized", "administrator role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. ok is false when the header is absent or not a bearer scheme.
func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(prefix):])
	return token, token != ""
}

// writeAuthError writes the shared JSON error envelope, so middleware
// rejections have exactly the shape of handler ones.
func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	httputil.WriteError(w, status, code, message)
}
