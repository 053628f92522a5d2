// Package http wires the echo server: routes, auth middleware, request
// logging and the centralized error handler.
package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/ekgus419/go-api-boilerplate/internal/infrastructure/token"
)

// NewServer builds the echo instance with all routes registered.
func NewServer(
	userHandler *UserHandler,
	authHandler *AuthHandler,
	tokenProvider *token.Provider,
	log *zap.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = NewErrorHandler(log)
	e.Use(middleware.Recover())
	e.Use(requestLogger(log))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]bool{"ok": true})
	})

	authMW := BearerAuth(tokenProvider)

	v1 := e.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout)

	users := v1.Group("/users")
	users.POST("", userHandler.CreateUser)
	users.GET("", userHandler.ListUsers, authMW)
	users.GET("/me", userHandler.GetProfile, authMW)
	users.GET("/:id", userHandler.GetUser, authMW)
	users.PATCH("/:id/password", userHandler.UpdatePassword, authMW)
	users.DELETE("/:id", userHandler.DeleteUser, authMW)
	users.PATCH("/:id/soft-delete", userHandler.SoftDeleteUser, authMW)

	return e
}

func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	})
}
