package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ekgus419/go-api-boilerplate/internal/domain/entities"
)

// ListQuery carries offset pagination and sorting for user listings.
// Page is 1-based; SortBy must be one of the repository's sortable columns.
type ListQuery struct {
	Page   int
	Size   int
	SortBy string
	Order  string
}

type UserRepository interface {
	Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error)
	FindById(ctx context.Context, id uuid.UUID) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindAll(ctx context.Context, q ListQuery) ([]*entities.User, error)
	Count(ctx context.Context) (int64, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, refreshToken string) error
	Delete(ctx context.Context, id uuid.UUID) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
