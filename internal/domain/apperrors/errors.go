// Package apperrors declares the sentinel errors shared across the service
// and delivery layers. The HTTP error handler maps each one to a status code
// and the common response envelope.
package apperrors

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTokenExpired      = errors.New("token expired")
	ErrInvalidToken      = errors.New("invalid token")
	ErrSubjectMissing    = errors.New("invalid token: subject missing")
	ErrInvalidTokenScope = errors.New("invalid token scope")
	ErrRefreshMismatch   = errors.New("refresh token is invalid or has been logged out")

	ErrTooManyRequests = errors.New("too many requests, please try again later")

	ErrInvalidSortColumn = errors.New("invalid sort column")
)
