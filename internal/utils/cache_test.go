package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestCache_NilClientIsDisabled(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, SetCache(ctx, nil, "k", map[string]int{"a": 1}, time.Minute))

	var dest map[string]int
	found, err := GetCache(ctx, nil, "k", &dest)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, dest)

	gen, err := CacheGeneration(ctx, nil, "g")
	require.NoError(t, err)
	assert.Zero(t, gen)
	assert.NoError(t, BumpGeneration(ctx, nil, "g"))
}

func TestCache_RoundTripAndTTL(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRedis(t)

	var dest map[int]string
	found, err := GetCache(ctx, rdb, "k", &dest)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetCache(ctx, rdb, "k", map[int]string{2023: "x"}, time.Minute))
	found, err = GetCache(ctx, rdb, "k", &dest)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, map[int]string{2023: "x"}, dest)

	mr.FastForward(2 * time.Minute)
	found, err = GetCache(ctx, rdb, "k", &dest)
	require.NoError(t, err)
	assert.False(t, found, "entry expires with its TTL")
}

func TestCacheGeneration(t *testing.T) {
	ctx := context.Background()
	_, rdb := newTestRedis(t)
	key := ResponsesGenerationKey(3)

	gen, err := CacheGeneration(ctx, rdb, key)
	require.NoError(t, err)
	assert.Zero(t, gen)

	require.NoError(t, BumpGeneration(ctx, rdb, key))
	require.NoError(t, BumpGeneration(ctx, rdb, key))
	gen, err = CacheGeneration(ctx, rdb, key)
	require.NoError(t, err)
	assert.Equal(t, int64(2), gen)
}

func TestResponsesCacheKeys(t *testing.T) {
	assert.Equal(t, "responses:user:12:gen", ResponsesGenerationKey(12))
	assert.Equal(t, "responses:user:12:g0", ResponsesCacheKey(12, 0))
	assert.NotEqual(t, ResponsesCacheKey(12, 1), ResponsesCacheKey(12, 2))
}
