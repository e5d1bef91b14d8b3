package identity_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storyreel-client/internal/identity"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-signing-key"))
	require.NoError(t, err)
	return signed
}

func TestCurrentUserID_ReadsSubjectClaim(t *testing.T) {
	userID := uuid.New()
	token := signToken(t, jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	provider := identity.New(token)
	assert.True(t, provider.IsSignedIn())

	got, err := provider.CurrentUserID()
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestCurrentUserID_EmptyToken(t *testing.T) {
	provider := identity.New("")
	assert.False(t, provider.IsSignedIn())

	_, err := provider.CurrentUserID()
	assert.ErrorIs(t, err, identity.ErrNotSignedIn)
}

func TestCurrentUserID_ExpiredToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	provider := identity.New(token)
	assert.False(t, provider.IsSignedIn())

	_, err := provider.CurrentUserID()
	assert.ErrorIs(t, err, identity.ErrTokenExpired)
}

func TestCurrentUserID_MissingSubject(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	provider := identity.New(token)
	assert.True(t, provider.IsSignedIn())

	_, err := provider.CurrentUserID()
	assert.ErrorIs(t, err, identity.ErrNotSignedIn)
}

func TestCurrentUserID_NonUUIDSubject(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub": "user-42",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := identity.New(token).CurrentUserID()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid user id")
}

func TestCurrentUserID_GarbageToken(t *testing.T) {
	provider := identity.New("not.a.jwt")
	assert.False(t, provider.IsSignedIn())

	_, err := provider.CurrentUserID()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse token")
}
