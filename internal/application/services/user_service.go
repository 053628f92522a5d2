package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ekgus419/go-api-boilerplate/internal/application/dto"
	"github.com/ekgus419/go-api-boilerplate/internal/application/interfaces"
	"github.com/ekgus419/go-api-boilerplate/internal/application/mapper"
	"github.com/ekgus419/go-api-boilerplate/internal/domain/apperrors"
	"github.com/ekgus419/go-api-boilerplate/internal/domain/entities"
	"github.com/ekgus419/go-api-boilerplate/internal/domain/repositories"
	"github.com/ekgus419/go-api-boilerplate/internal/infrastructure/cache"
	"github.com/ekgus419/go-api-boilerplate/internal/infrastructure/mailer"
	"github.com/ekgus419/go-api-boilerplate/internal/messaging"
)

const profileCacheTTL = 24 * time.Hour

type UserService struct {
	userRepo  repositories.UserRepository
	cache     *cache.RedisCache
	mailer    *mailer.Mailer
	publisher *messaging.Publisher
	log       *zap.Logger
}

func NewUserService(
	userRepo repositories.UserRepository,
	redisCache *cache.RedisCache,
	mailService *mailer.Mailer,
	publisher *messaging.Publisher,
	log *zap.Logger,
) interfaces.UserService {
	return &UserService{
		userRepo:  userRepo,
		cache:     redisCache,
		mailer:    mailService,
		publisher: publisher,
		log:       log,
	}
}

func (s *UserService) ListUsers(ctx context.Context, q repositories.ListQuery) (*dto.PaginatedResponse, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 {
		q.Size = 10
	}

	users, err := s.userRepo.FindAll(ctx, q)
	if err != nil {
		return nil, err
	}

	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	page := dto.NewPaginatedResponse(mapper.NewUserResponsesFromEntities(users), total, q.Page, q.Size)
	return &page, nil
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	return mapper.NewUserResponseFromEntity(user), nil
}

// GetProfile serves the authenticated user's profile through the redis
// cache when possible, falling back to the database on a miss.
func (s *UserService) GetProfile(ctx context.Context, username string) (*dto.UserResponse, error) {
	if cached, err := s.cache.GetProfile(ctx, username); err == nil && cached != nil {
		return mapper.NewUserResponseFromEntity(cached), nil
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	if err := s.cache.SetProfile(ctx, username, user, profileCacheTTL); err != nil {
		s.log.Warn("profile cache write failed", zap.String("username", username), zap.Error(err))
	}

	return mapper.NewUserResponseFromEntity(user), nil
}

func (s *UserService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	existing, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrUserAlreadyExists
	}

	existing, err = s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrUserAlreadyExists
	}

	newUser := entities.NewUser(req.Username, req.Email, req.FullName, req.Password)
	if err := newUser.HashPassword(); err != nil {
		return nil, err
	}

	validatedUser, err := entities.NewValidatedUser(newUser)
	if err != nil {
		return nil, err
	}

	createdUser, err := s.userRepo.Create(ctx, validatedUser)
	if err != nil {
		return nil, err
	}

	// Welcome mail and lifecycle event are best-effort.
	if err := s.mailer.SendWelcome(createdUser.Email, createdUser.Username); err != nil {
		s.log.Warn("welcome mail failed", zap.String("email", createdUser.Email), zap.Error(err))
	}
	if err := s.publisher.PublishUserCreated(userEvent(createdUser)); err != nil {
		s.log.Warn("user.created publish failed", zap.Error(err))
	}

	return mapper.NewUserResponseFromEntity(createdUser), nil
}

func (s *UserService) UpdatePassword(ctx context.Context, id uuid.UUID, password string) error {
	user, err := s.userRepo.FindById(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.ErrUserNotFound
	}

	if err := user.UpdatePassword(password); err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, id, user.Password); err != nil {
		return err
	}

	s.invalidateProfile(ctx, user.Username)
	return nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.FindById(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.ErrUserNotFound
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateSession(ctx, user.Username)
	if err := s.publisher.PublishUserDeleted(userEvent(user)); err != nil {
		s.log.Warn("user.deleted publish failed", zap.Error(err))
	}
	return nil
}

func (s *UserService) SoftDeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.FindById(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.ErrUserNotFound
	}

	if err := s.userRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.invalidateSession(ctx, user.Username)
	return nil
}

func (s *UserService) invalidateProfile(ctx context.Context, username string) {
	if err := s.cache.DeleteProfile(ctx, username); err != nil {
		s.log.Warn("profile cache invalidation failed", zap.String("username", username), zap.Error(err))
	}
}

// invalidateSession drops the cached profile and any live refresh token so
// a removed account cannot keep minting access tokens until the TTL runs out.
func (s *UserService) invalidateSession(ctx context.Context, username string) {
	s.invalidateProfile(ctx, username)
	if err := s.cache.DeleteRefreshToken(ctx, username); err != nil {
		s.log.Warn("refresh token cache invalidation failed", zap.String("username", username), zap.Error(err))
	}
}

func userEvent(user *entities.User) messaging.UserEvent {
	return messaging.UserEvent{
		UserId:     user.Id.String(),
		Username:   user.Username,
		Email:      user.Email,
		OccurredAt: time.Now(),
	}
}
