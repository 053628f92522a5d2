package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ekgus419/go-api-boilerplate/internal/application/dto"
	"github.com/ekgus419/go-api-boilerplate/internal/domain/apperrors"
)

// NewErrorHandler translates service errors into the common response
// envelope. Validation failures carry their field map as data with status
// "fail"; everything else is an "error" with a message.
func NewErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			code = http.StatusInternalServerError
			body dto.CommonResponse
		)

		var validationErrs dto.ValidationErrors
		var httpErr *echo.HTTPError

		switch {
		case errors.As(err, &validationErrs):
			code = http.StatusUnprocessableEntity
			body = dto.Fail(validationErrs)
		case errors.As(err, &httpErr):
			code = httpErr.Code
			body = dto.Error(messageOf(httpErr))
		default:
			code = statusOf(err)
			if code == http.StatusInternalServerError {
				log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
				body = dto.Error("Internal Server Error")
			} else {
				body = dto.Error(err.Error())
			}
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, body)
		}
		if writeErr != nil {
			log.Error("error response write failed", zap.Error(writeErr))
		}
	}
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrUserAlreadyExists),
		errors.Is(err, apperrors.ErrInvalidSortColumn):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrSubjectMissing),
		errors.Is(err, apperrors.ErrInvalidTokenScope),
		errors.Is(err, apperrors.ErrRefreshMismatch):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrTooManyRequests):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func messageOf(httpErr *echo.HTTPError) string {
	if msg, ok := httpErr.Message.(string); ok {
		return msg
	}
	return http.StatusText(httpErr.Code)
}
