package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ekgus419/go-api-boilerplate/internal/application/dto"
	"github.com/ekgus419/go-api-boilerplate/internal/application/interfaces"
	"github.com/ekgus419/go-api-boilerplate/internal/domain/repositories"
)

type UserHandler struct {
	userService interfaces.UserService
}

func NewUserHandler(userService interfaces.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers handles GET /v1/users with paging and sorting query params.
func (h *UserHandler) ListUsers(c echo.Context) error {
	q := repositories.ListQuery{
		Page:   queryInt(c, "page", 1),
		Size:   queryInt(c, "size", 10),
		SortBy: c.QueryParam("sort_by"),
		Order:  c.QueryParam("order"),
	}

	errs := dto.ValidationErrors{}
	if q.Page < 1 {
		errs["page"] = "must be at least 1"
	}
	if q.Size < 1 {
		errs["size"] = "must be at least 1"
	}
	if q.Order != "" && !strings.EqualFold(q.Order, "asc") && !strings.EqualFold(q.Order, "desc") {
		errs["order"] = "must be 'asc' or 'desc'"
	}
	if len(errs) > 0 {
		return errs
	}

	page, err := h.userService.ListUsers(c.Request().Context(), q)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Success(page, ""))
}

// GetProfile handles GET /v1/users/me for the authenticated user.
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.userService.GetProfile(c.Request().Context(), CurrentUsername(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Success(user, ""))
}

// GetUser handles GET /v1/users/:id.
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathId(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Success(user, ""))
}

// CreateUser handles POST /v1/users.
func (h *UserHandler) CreateUser(c echo.Context) error {
	req := new(dto.CreateUserRequest)
	if err := c.Bind(req); err != nil {
		return dto.ValidationErrors{"body": "malformed request body"}
	}
	if err := req.Validate(); err != nil {
		return err
	}

	user, err := h.userService.CreateUser(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.Success(user, ""))
}

// UpdatePassword handles PATCH /v1/users/:id/password.
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	id, err := pathId(c)
	if err != nil {
		return err
	}

	req := new(dto.UpdatePasswordRequest)
	if err := c.Bind(req); err != nil {
		return dto.ValidationErrors{"body": "malformed request body"}
	}
	if err := req.Validate(); err != nil {
		return err
	}

	if err := h.userService.UpdatePassword(c.Request().Context(), id, req.Password); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Success(nil, "Password updated successfully"))
}

// DeleteUser handles DELETE /v1/users/:id.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := pathId(c)
	if err != nil {
		return err
	}

	if err := h.userService.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Success(nil, "User deleted successfully"))
}

// SoftDeleteUser handles PATCH /v1/users/:id/soft-delete.
func (h *UserHandler) SoftDeleteUser(c echo.Context) error {
	id, err := pathId(c)
	if err != nil {
		return err
	}

	if err := h.userService.SoftDeleteUser(c.Request().Context(), id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Success(nil, "User soft deleted successfully"))
}

func pathId(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, dto.ValidationErrors{"id": "must be a valid uuid"}
	}
	return id, nil
}

func queryInt(c echo.Context, name string, defaultValue int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return value
}
