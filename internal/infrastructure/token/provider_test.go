package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekgus419/go-api-boilerplate/internal/domain/apperrors"
)

func newTestProvider() *Provider {
	return NewProvider("test-secret", 15*time.Minute, 24*time.Hour)
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	provider := newTestProvider()

	tokenString, err := provider.GenerateAccessToken("john_doe")
	require.NoError(t, err)

	claims, err := provider.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "john_doe", claims.Subject)
	assert.Equal(t, ScopeAccess, claims.Scope)
}

func TestGenerateRefreshTokenScope(t *testing.T) {
	provider := newTestProvider()

	tokenString, err := provider.GenerateRefreshToken("john_doe")
	require.NoError(t, err)

	claims, err := provider.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, ScopeRefresh, claims.Scope)
}

func TestValidateExpiredToken(t *testing.T) {
	provider := NewProvider("test-secret", -time.Minute, -time.Minute)

	tokenString, err := provider.GenerateAccessToken("john_doe")
	require.NoError(t, err)

	_, err = provider.ValidateToken(tokenString)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateMalformedToken(t *testing.T) {
	provider := newTestProvider()

	for _, tokenString := range []string{"", "not.a.jwt", "garbage"} {
		_, err := provider.ValidateToken(tokenString)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	}
}

func TestValidateWrongSecret(t *testing.T) {
	other := NewProvider("other-secret", 15*time.Minute, 24*time.Hour)

	tokenString, err := other.GenerateAccessToken("john_doe")
	require.NoError(t, err)

	_, err = newTestProvider().ValidateToken(tokenString)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestValidateRejectsNonHMAC(t *testing.T) {
	// A token signed with "none" must never be accepted.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		Scope:            ScopeAccess,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "john_doe"},
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestProvider().ValidateToken(tokenString)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestValidateMissingSubject(t *testing.T) {
	provider := newTestProvider()

	tokenString, err := provider.generate("", ScopeAccess, time.Minute)
	require.NoError(t, err)

	_, err = provider.ValidateToken(tokenString)
	assert.ErrorIs(t, err, apperrors.ErrSubjectMissing)
}
