// Package cache wraps redis for refresh-token bookkeeping and profile
// caching. When no redis address is configured the cache runs disabled and
// every operation is a no-op, so the API works without a redis deployment.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ekgus419/go-api-boilerplate/internal/config"
	"github.com/ekgus419/go-api-boilerplate/internal/domain/entities"
)

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(cfg config.RedisConfig, log *zap.Logger) *RedisCache {
	if cfg.Addr == "" {
		log.Info("redis not configured, cache disabled")
		return &RedisCache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis connection failed, cache disabled", zap.Error(err))
		return &RedisCache{}
	}

	log.Info("connected to redis", zap.String("addr", cfg.Addr))
	return &RedisCache{client: client}
}

// NewRedisCacheWithClient is used by tests to inject a prepared client.
func NewRedisCacheWithClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Enabled() bool {
	return c.client != nil
}

func (c *RedisCache) SetRefreshToken(ctx context.Context, username, token string, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	return c.client.Set(ctx, "refresh:"+username, token, ttl).Err()
}

// GetRefreshToken returns an empty string on a miss or when disabled.
func (c *RedisCache) GetRefreshToken(ctx context.Context, username string) (string, error) {
	if c.client == nil {
		return "", nil
	}
	token, err := c.client.Get(ctx, "refresh:"+username).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

func (c *RedisCache) DeleteRefreshToken(ctx context.Context, username string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, "refresh:"+username).Err()
}

func (c *RedisCache) SetProfile(ctx context.Context, username string, user *entities.User, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "profile:"+username, data, ttl).Err()
}

// GetProfile returns nil on a miss or when disabled.
func (c *RedisCache) GetProfile(ctx context.Context, username string) (*entities.User, error) {
	if c.client == nil {
		return nil, nil
	}
	data, err := c.client.Get(ctx, "profile:"+username).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var user entities.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *RedisCache) DeleteProfile(ctx context.Context, username string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, "profile:"+username).Err()
}

func (c *RedisCache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
