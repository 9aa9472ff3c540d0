package cache_test

import (
	"context"
	"errors"
	"testing"

	"coating/infras/otel/mocks"
	"coating/shared/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type submissionState struct {
	Status string `json:"status"`
	Code   string `json:"code"`
}

func newCache(t *testing.T) (cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewRedisCache(client, mocks.NewOtel()), server
}

func TestRedisCache_SaveAndGet(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	t.Run("struct value", func(t *testing.T) {
		require.NoError(t, c.Save(ctx, "submission:booking:f-1", submissionState{Status: "succeeded", Code: "BK12AB34"}, 60))

		var got submissionState
		require.NoError(t, c.Get(ctx, "submission:booking:f-1", &got))
		assert.Equal(t, "BK12AB34", got.Code)
	})

	t.Run("string value", func(t *testing.T) {
		require.NoError(t, c.Save(ctx, "revoked:t-1", "1", 60))

		var got string
		require.NoError(t, c.Get(ctx, "revoked:t-1", &got))
		assert.Equal(t, "1", got)
	})

	t.Run("missing key", func(t *testing.T) {
		var got string
		err := c.Get(ctx, "revoked:unknown", &got)

		require.Error(t, err)
		assert.True(t, errors.Is(err, cache.Nil))
	})
}

func TestRedisCache_SaveIfAbsent(t *testing.T) {
	c, server := newCache(t)
	ctx := context.Background()

	saved, err := c.SaveIfAbsent(ctx, "submission:lock:f-1", "1", 30)
	require.NoError(t, err)
	assert.True(t, saved)

	saved, err = c.SaveIfAbsent(ctx, "submission:lock:f-1", "1", 30)
	require.NoError(t, err)
	assert.False(t, saved)

	server.FastForward(31e9)

	saved, err = c.SaveIfAbsent(ctx, "submission:lock:f-1", "1", 30)
	require.NoError(t, err)
	assert.True(t, saved)
}

func TestRedisCache_DeleteAndClear(t *testing.T) {
	c, server := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "projects:all", "[]", 60))
	require.NoError(t, c.Save(ctx, "projects:marine", "[]", 60))
	require.NoError(t, c.Save(ctx, "revoked:t-1", "1", 60))

	require.NoError(t, c.Delete(ctx, "revoked:t-1"))
	assert.False(t, server.Exists("revoked:t-1"))

	require.NoError(t, c.Clear(ctx, "projects:*"))
	assert.False(t, server.Exists("projects:all"))
	assert.False(t, server.Exists("projects:marine"))
}
