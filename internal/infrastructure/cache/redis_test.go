package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekgus419/go-api-boilerplate/internal/domain/entities"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisCacheWithClient(client), mr
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetRefreshToken(ctx, "john_doe", "refresh-token", time.Hour))

	token, err := c.GetRefreshToken(ctx, "john_doe")
	require.NoError(t, err)
	assert.Equal(t, "refresh-token", token)

	mr.FastForward(2 * time.Hour)

	token, err = c.GetRefreshToken(ctx, "john_doe")
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestDeleteRefreshToken(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetRefreshToken(ctx, "john_doe", "refresh-token", time.Hour))
	require.NoError(t, c.DeleteRefreshToken(ctx, "john_doe"))

	token, err := c.GetRefreshToken(ctx, "john_doe")
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestProfileRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	user := entities.NewUser("john_doe", "john@example.com", "John Doe", "hash")
	require.NoError(t, c.SetProfile(ctx, user.Username, user, time.Hour))

	cached, err := c.GetProfile(ctx, "john_doe")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, user.Id, cached.Id)
	assert.Equal(t, "john@example.com", cached.Email)

	require.NoError(t, c.DeleteProfile(ctx, "john_doe"))
	cached, err = c.GetProfile(ctx, "john_doe")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestDisabledCacheIsNoOp(t *testing.T) {
	c := &RedisCache{}
	ctx := context.Background()

	assert.False(t, c.Enabled())
	assert.NoError(t, c.SetRefreshToken(ctx, "john_doe", "token", time.Hour))

	token, err := c.GetRefreshToken(ctx, "john_doe")
	require.NoError(t, err)
	assert.Empty(t, token)

	profile, err := c.GetProfile(ctx, "john_doe")
	require.NoError(t, err)
	assert.Nil(t, profile)

	assert.NoError(t, c.Close())
}
