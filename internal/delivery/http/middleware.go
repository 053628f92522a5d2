package http

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ekgus419/go-api-boilerplate/internal/domain/apperrors"
	"github.com/ekgus419/go-api-boilerplate/internal/infrastructure/token"
)

// usernameKey is where BearerAuth stashes the authenticated subject.
const usernameKey = "username"

// BearerAuth validates the Authorization header and requires an access
// scope token. Refresh tokens are only accepted by the auth endpoints.
func BearerAuth(provider *token.Provider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return apperrors.ErrInvalidToken
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return apperrors.ErrInvalidToken
			}

			claims, err := provider.ValidateToken(parts[1])
			if err != nil {
				return err
			}
			if claims.Scope != token.ScopeAccess {
				return apperrors.ErrInvalidTokenScope
			}

			c.Set(usernameKey, claims.Subject)
			return next(c)
		}
	}
}

// CurrentUsername returns the subject set by BearerAuth.
func CurrentUsername(c echo.Context) string {
	username, _ := c.Get(usernameKey).(string)
	return username
}
