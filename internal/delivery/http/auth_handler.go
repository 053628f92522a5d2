package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ekgus419/go-api-boilerplate/internal/application/dto"
	"github.com/ekgus419/go-api-boilerplate/internal/application/interfaces"
)

type AuthHandler struct {
	authService interfaces.AuthService
}

func NewAuthHandler(authService interfaces.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /v1/auth/login and returns an access/refresh pair.
func (h *AuthHandler) Login(c echo.Context) error {
	req := new(dto.LoginRequest)
	if err := c.Bind(req); err != nil {
		return dto.ValidationErrors{"body": "malformed request body"}
	}
	if err := req.Validate(); err != nil {
		return err
	}

	tokens, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Success(tokens, ""))
}

// Refresh handles POST /v1/auth/refresh. The refresh token stays the same;
// only a new access token is issued.
func (h *AuthHandler) Refresh(c echo.Context) error {
	req := new(dto.RefreshTokenRequest)
	if err := c.Bind(req); err != nil {
		return dto.ValidationErrors{"body": "malformed request body"}
	}
	if err := req.Validate(); err != nil {
		return err
	}

	accessToken, err := h.authService.RefreshAccessToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	tokens := &dto.TokenResponse{AccessToken: accessToken, RefreshToken: req.RefreshToken}
	return c.JSON(http.StatusOK, dto.Success(tokens, "Token refreshed successfully"))
}

// Logout handles POST /v1/auth/logout and invalidates the session.
func (h *AuthHandler) Logout(c echo.Context) error {
	req := new(dto.LogoutRequest)
	if err := c.Bind(req); err != nil {
		return dto.ValidationErrors{"body": "malformed request body"}
	}
	if err := req.Validate(); err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), req.Username, req.RefreshToken); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Success(nil, "Logged out successfully"))
}
