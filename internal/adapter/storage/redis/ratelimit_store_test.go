package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateLimitStore(t *testing.T) *RateLimitStore {
	t.Helper()
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	return NewRateLimitStore(client)
}

func TestRateLimitStore_Allow_WithinLimit(t *testing.T) {
	store := newRateLimitStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		result, err := store.Allow(ctx, "client-a:transfers", 5, time.Minute)
		require.NoError(t, err)
		assert.True(t, result.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, int64(5), result.Limit)
	}
}

func TestRateLimitStore_Allow_ExceedsLimit(t *testing.T) {
	store := newRateLimitStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.Allow(ctx, "client-b:sync", 3, time.Minute)
		require.NoError(t, err)
	}

	result, err := store.Allow(ctx, "client-b:sync", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, int64(0), result.Remaining)
	assert.Greater(t, result.ResetAt, time.Now().Unix()-int64(time.Minute.Seconds()))
}

func TestRateLimitStore_Allow_KeysAreIndependent(t *testing.T) {
	store := newRateLimitStore(t)
	ctx := context.Background()

	result, err := store.Allow(ctx, "client-c:transfers", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, result.Allowed)

	result, err = store.Allow(ctx, "client-c:transfers", 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, result.Allowed, "same key should be throttled")

	result, err = store.Allow(ctx, "client-d:transfers", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, result.Allowed, "other clients are unaffected")
}

func TestRateLimitStore_Allow_RemainingCountsDown(t *testing.T) {
	store := newRateLimitStore(t)
	ctx := context.Background()

	result, err := store.Allow(ctx, "client-e:proxy", 3, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Remaining)

	result, err = store.Allow(ctx, "client-e:proxy", 3, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Remaining)
}
