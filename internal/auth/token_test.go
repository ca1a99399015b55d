package auth_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgirard/lux-rentals/api/internal/auth"
	"github.com/mgirard/lux-rentals/api/internal/domain"
)

const testSecret = "test-signing-secret"

func testIdentity() domain.Identity {
	return domain.Identity{ID: 42, Email: "client@example.com", Role: domain.RoleStandard}
}

func TestNewToken_ParseRoundTrip(t *testing.T) {
	token, tokenID, err := auth.NewToken(testSecret, testIdentity(), time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, tokenID)

	claims, err := auth.ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, tokenID, claims.ID)
	assert.Equal(t, strconv.FormatInt(42, 10), claims.Subject)
	assert.Equal(t, string(domain.RoleStandard), claims.Role)
}

func TestNewToken_UniqueTokenIDs(t *testing.T) {
	_, a, err := auth.NewToken(testSecret, testIdentity(), time.Hour)
	require.NoError(t, err)
	_, b, err := auth.NewToken(testSecret, testIdentity(), time.Hour)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestNewToken_Rejections(t *testing.T) {
	_, _, err := auth.NewToken("", testIdentity(), time.Hour)
	assert.Error(t, err)

	_, _, err = auth.NewToken(testSecret, domain.Identity{}, time.Hour)
	assert.Error(t, err)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, _, err := auth.NewToken(testSecret, testIdentity(), time.Hour)
	require.NoError(t, err)

	_, err = auth.ParseToken("some-other-secret", token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestParseToken_Expired(t *testing.T) {
	claims := auth.Claims{
		Role: string(domain.RoleStandard),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "expired-token",
			Subject:   "42",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = auth.ParseToken(testSecret, token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := auth.ParseToken(testSecret, "not.a.jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

// Tokens signed with "none" must never verify, whatever the claims say.
func TestParseToken_NoneAlgorithmRejected(t *testing.T) {
	claims := auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "unsigned",
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = auth.ParseToken(testSecret, token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
