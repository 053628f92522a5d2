package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ekgus419/go-api-boilerplate/internal/application/dto"
	"github.com/ekgus419/go-api-boilerplate/internal/application/interfaces"
	"github.com/ekgus419/go-api-boilerplate/internal/domain/apperrors"
	"github.com/ekgus419/go-api-boilerplate/internal/domain/repositories"
	"github.com/ekgus419/go-api-boilerplate/internal/infrastructure/cache"
	"github.com/ekgus419/go-api-boilerplate/internal/infrastructure/ratelimit"
	"github.com/ekgus419/go-api-boilerplate/internal/infrastructure/token"
)

type AuthService struct {
	userRepo      repositories.UserRepository
	tokenProvider *token.Provider
	cache         *cache.RedisCache
	loginLimiter  *ratelimit.KeyedLimiter
	refreshTTL    time.Duration
	log           *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokenProvider *token.Provider,
	redisCache *cache.RedisCache,
	loginLimiter *ratelimit.KeyedLimiter,
	refreshTTL time.Duration,
	log *zap.Logger,
) interfaces.AuthService {
	return &AuthService{
		userRepo:      userRepo,
		tokenProvider: tokenProvider,
		cache:         redisCache,
		loginLimiter:  loginLimiter,
		refreshTTL:    refreshTTL,
		log:           log,
	}
}

// Login verifies credentials and issues an access/refresh token pair. The
// refresh token is persisted on the user row; refresh and logout compare
// against it, so issuing a new pair invalidates the previous session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*dto.TokenResponse, error) {
	if !s.loginLimiter.Allow(username) {
		return nil, apperrors.ErrTooManyRequests
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	if err := user.CheckPassword(password); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, err := s.tokenProvider.GenerateAccessToken(user.Username)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokenProvider.GenerateRefreshToken(user.Username)
	if err != nil {
		return nil, err
	}

	user.SetRefreshToken(refreshToken)
	if err := s.userRepo.UpdateRefreshToken(ctx, user.Id, user.CurrentRefreshToken); err != nil {
		return nil, err
	}
	if err := s.cache.SetRefreshToken(ctx, user.Username, refreshToken, s.refreshTTL); err != nil {
		s.log.Warn("refresh token cache write failed", zap.String("username", username), zap.Error(err))
	}

	return &dto.TokenResponse{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// RefreshAccessToken exchanges a valid refresh token for a new access
// token. The presented token must match the one stored at login.
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokenProvider.ValidateToken(refreshToken)
	if err != nil {
		return "", err
	}
	if claims.Scope != token.ScopeRefresh {
		return "", apperrors.ErrInvalidTokenScope
	}

	stored, err := s.storedRefreshToken(ctx, claims.Subject)
	if err != nil {
		return "", err
	}
	if stored != refreshToken {
		return "", apperrors.ErrRefreshMismatch
	}

	return s.tokenProvider.GenerateAccessToken(claims.Subject)
}

// Logout invalidates the current session by clearing the stored refresh
// token. The presented token must match the stored one.
func (s *AuthService) Logout(ctx context.Context, username, refreshToken string) error {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.ErrUserNotFound
	}

	if user.CurrentRefreshToken != refreshToken {
		return apperrors.ErrRefreshMismatch
	}

	user.ClearRefreshToken()
	if err := s.userRepo.UpdateRefreshToken(ctx, user.Id, user.CurrentRefreshToken); err != nil {
		return err
	}
	if err := s.cache.DeleteRefreshToken(ctx, username); err != nil {
		s.log.Warn("refresh token cache delete failed", zap.String("username", username), zap.Error(err))
	}
	return nil
}

// storedRefreshToken resolves the refresh token recorded for username. The
// user row is loaded first so a removed account cannot refresh even while a
// cached token is still live; the cache then serves the token on a hit.
func (s *AuthService) storedRefreshToken(ctx context.Context, username string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperrors.ErrUserNotFound
	}

	if cached, err := s.cache.GetRefreshToken(ctx, username); err == nil && cached != "" {
		return cached, nil
	}
	return user.CurrentRefreshToken, nil
}
