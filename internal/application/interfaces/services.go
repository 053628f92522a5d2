// Package interfaces declares the service contracts the delivery layer
// depends on, keeping handlers decoupled from concrete implementations.
package interfaces

import (
	"context"

	"github.com/google/uuid"

	"github.com/ekgus419/go-api-boilerplate/internal/application/dto"
	"github.com/ekgus419/go-api-boilerplate/internal/domain/repositories"
)

type UserService interface {
	ListUsers(ctx context.Context, q repositories.ListQuery) (*dto.PaginatedResponse, error)
	GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	GetProfile(ctx context.Context, username string) (*dto.UserResponse, error)
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, password string) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
	SoftDeleteUser(ctx context.Context, id uuid.UUID) error
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*dto.TokenResponse, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, username, refreshToken string) error
}
