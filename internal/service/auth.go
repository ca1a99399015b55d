package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mgirard/lux-rentals/api/internal/auth"
	"github.com/mgirard/lux-rentals/api/internal/domain"
	"github.com/mgirard/lux-rentals/api/internal/store"
)

// AuthService implements registration, login, logout, and token resolution.
// Credentials are bcrypt hashes; sessions are server-side records keyed by
// the token id, so logout genuinely revokes a token.
type AuthService struct {
	users      store.Directory
	sessions   store.SessionStore
	jwtSecret  string
	sessionTTL time.Duration

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

// NewAuthService constructs an AuthService.
func NewAuthService(users store.Directory, sessions store.SessionStore, jwtSecret string, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// WithClock overrides the service's notion of "now". Test hook.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// Register creates a new standard-role account and opens a session for it.
//
// The email uniqueness check is exact and case-sensitive. Registration fails
// before any account is created when the email is taken.
func (s *AuthService) Register(ctx context.Context, name, email, password, phone string) (domain.Identity, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return domain.Identity{}, "", fmt.Errorf("service.AuthService.Register: %w", domain.Validationf("name is required"))
	}
	if email == "" {
		return domain.Identity{}, "", fmt.Errorf("service.AuthService.Register: %w", domain.Validationf("email is required"))
	}
	if len(password) < 6 {
		return domain.Identity{}, "", fmt.Errorf("service.AuthService.Register: %w", domain.Validationf("password must be at least 6 characters"))
	}

	if _, err := s.users.FindByEmail(email); err == nil {
		return domain.Identity{}, "", fmt.Errorf("service.AuthService.Register: %w", domain.ErrDuplicateEmail)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.Identity{}, "", fmt.Errorf("service.AuthService.Register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Identity{}, "", fmt.Errorf("service.AuthService.Register: hash password: %w", err)
	}

	account, err := s.users.Create(ctx, domain.Account{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleStandard,
		JoinDate:     s.now().UTC().Truncate(24 * time.Hour),
		Phone:        strings.TrimSpace(phone),
	})
	if err != nil {
		return domain.Identity{}, "", fmt.Errorf("service.AuthService.Register: %w", err)
	}

	return s.openSession(ctx, account.Identity())
}

// Login verifies the credentials and opens a session.
// Unknown email and wrong password both return domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Identity, string, error) {
	account, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Identity{}, "", fmt.Errorf("service.AuthService.Login: %w", domain.ErrInvalidCredentials)
		}
		return domain.Identity{}, "", fmt.Errorf("service.AuthService.Login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return domain.Identity{}, "", fmt.Errorf("service.AuthService.Login: %w", domain.ErrInvalidCredentials)
	}

	return s.openSession(ctx, account.Identity())
}

// Logout revokes the session unconditionally. Logging out an already-dead
// session succeeds.
func (s *AuthService) Logout(ctx context.Context, tokenID string) error {
	if err := s.sessions.Delete(ctx, tokenID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("service.AuthService.Logout: %w", err)
	}
	return nil
}

// Authenticate resolves a bearer token to the identity of its live session.
// Returns domain.ErrUnauthenticated for invalid tokens and revoked or expired
// sessions.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Identity, string, error) {
	claims, err := auth.ParseToken(s.jwtSecret, token)
	if err != nil {
		return domain.Identity{}, "", fmt.Errorf("service.AuthService.Authenticate: %w", err)
	}

	ident, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Identity{}, "", fmt.Errorf("service.AuthService.Authenticate: session revoked or expired: %w", domain.ErrUnauthenticated)
		}
		return domain.Identity{}, "", fmt.Errorf("service.AuthService.Authenticate: %w", err)
	}

	return ident, claims.ID, nil
}

// ListUsers returns every account as a redacted identity, for the admin
// directory view.
func (s *AuthService) ListUsers() []domain.Identity {
	accounts := s.users.List()
	out := make([]domain.Identity, len(accounts))
	for i, a := range accounts {
		out[i] = a.Identity()
	}
	return out
}

// openSession mints a token for the identity and stores the session record
// under the token id.
func (s *AuthService) openSession(ctx context.Context, ident domain.Identity) (domain.Identity, string, error) {
	token, tokenID, err := auth.NewToken(s.jwtSecret, ident, s.sessionTTL)
	if err != nil {
		return domain.Identity{}, "", fmt.Errorf("service.AuthService: open session: %w", err)
	}
	if err := s.sessions.Save(ctx, tokenID, ident, s.sessionTTL); err != nil {
		return domain.Identity{}, "", fmt.Errorf("service.AuthService: open session: %w", err)
	}
	return ident, token, nil
}
