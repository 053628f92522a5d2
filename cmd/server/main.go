package main

import (
	"context"
	"errors"
	"log"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ekgus419/go-api-boilerplate/internal/application/services"
	"github.com/ekgus419/go-api-boilerplate/internal/config"
	"github.com/ekgus419/go-api-boilerplate/internal/delivery/http"
	"github.com/ekgus419/go-api-boilerplate/internal/infrastructure/cache"
	"github.com/ekgus419/go-api-boilerplate/internal/infrastructure/db/postgres"
	"github.com/ekgus419/go-api-boilerplate/internal/infrastructure/logging"
	"github.com/ekgus419/go-api-boilerplate/internal/infrastructure/mailer"
	"github.com/ekgus419/go-api-boilerplate/internal/infrastructure/ratelimit"
	"github.com/ekgus419/go-api-boilerplate/internal/infrastructure/token"
	"github.com/ekgus419/go-api-boilerplate/internal/messaging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	db, err := postgres.Connect(cfg.Database, logging.NewGormLogger(logger, cfg.Database.SQLEcho))
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	redisCache := cache.NewRedisCache(cfg.Redis, logger)
	defer redisCache.Close()

	publisher, err := messaging.NewPublisher(cfg.Nats, logger)
	if err != nil {
		logger.Fatal("nats connection failed", zap.Error(err))
	}
	defer publisher.Close()

	tokenProvider := token.NewProvider(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	mail := mailer.New(cfg.Mail, logger)

	loginLimiter := ratelimit.NewKeyedLimiter(cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow)
	defer loginLimiter.Stop()

	userRepo := postgres.NewUserRepository(db)
	userService := services.NewUserService(userRepo, redisCache, mail, publisher, logger)
	authService := services.NewAuthService(userRepo, tokenProvider, redisCache, loginLimiter, cfg.JWT.RefreshExpiration, logger)

	server := http.NewServer(
		http.NewUserHandler(userService),
		http.NewAuthHandler(authService),
		tokenProvider,
		logger,
	)

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := server.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
