// Package token issues and validates the HS256 access and refresh tokens
// used by the auth endpoints and the bearer middleware.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ekgus419/go-api-boilerplate/internal/domain/apperrors"
)

const (
	ScopeAccess  = "access"
	ScopeRefresh = "refresh"
)

type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

type Provider struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewProvider(secret string, accessTTL, refreshTTL time.Duration) *Provider {
	return &Provider{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (p *Provider) GenerateAccessToken(username string) (string, error) {
	return p.generate(username, ScopeAccess, p.accessTTL)
}

func (p *Provider) GenerateRefreshToken(username string) (string, error) {
	return p.generate(username, ScopeRefresh, p.refreshTTL)
}

func (p *Provider) generate(username, scope string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

// ValidateToken parses and verifies a token, translating library errors into
// the sentinel errors the HTTP layer maps to 401.
func (p *Provider) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidToken
		}
		return p.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}
	if !parsed.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, apperrors.ErrSubjectMissing
	}

	return claims, nil
}
