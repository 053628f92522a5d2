package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ekgus419/go-api-boilerplate/internal/domain/apperrors"
	"github.com/ekgus419/go-api-boilerplate/internal/domain/entities"
	"github.com/ekgus419/go-api-boilerplate/internal/domain/repositories"
)

// Columns clients may sort listings by. Anything else is rejected before it
// reaches the query builder.
var sortableColumns = map[string]bool{
	"username":   true,
	"email":      true,
	"type":       true,
	"status":     true,
	"created_at": true,
	"updated_at": true,
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error) {
	userModel := modelFromEntity(user.GetUser())

	// Soft-deleted rows keep their unique slots while staying invisible to
	// the Find* duplicate checks, so the index has the last word.
	if err := r.db.WithContext(ctx).Create(userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUserAlreadyExists
		}
		return nil, err
	}

	// Read back the created row to return what was actually persisted.
	return r.FindById(ctx, userModel.Id)
}

func (r *UserRepository) FindById(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var userModel UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return userModel.toEntity(), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	var userModel UserModel
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return userModel.toEntity(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var userModel UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return userModel.toEntity(), nil
}

func (r *UserRepository) FindAll(ctx context.Context, q repositories.ListQuery) ([]*entities.User, error) {
	query := r.db.WithContext(ctx).Model(&UserModel{})

	if q.SortBy != "" {
		if !sortableColumns[q.SortBy] {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidSortColumn, q.SortBy)
		}
		direction := "asc"
		if strings.EqualFold(q.Order, "desc") {
			direction = "desc"
		}
		query = query.Order(q.SortBy + " " + direction)
	}

	var userModels []UserModel
	if err := query.Offset((q.Page - 1) * q.Size).Limit(q.Size).Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userModels[i].toEntity())
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&UserModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	return r.updateColumn(ctx, id, "password", hashedPassword)
}

func (r *UserRepository) UpdateRefreshToken(ctx context.Context, id uuid.UUID, refreshToken string) error {
	return r.updateColumn(ctx, id, "current_refresh_token", refreshToken)
}

// Delete removes the row permanently, bypassing the soft-delete hook.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Unscoped().Delete(&UserModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// SoftDelete stamps deleted_at; the row survives but disappears from reads.
func (r *UserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&UserModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) updateColumn(ctx context.Context, id uuid.UUID, column string, value interface{}) error {
	result := r.db.WithContext(ctx).Model(&UserModel{}).Where("id = ?", id).Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
