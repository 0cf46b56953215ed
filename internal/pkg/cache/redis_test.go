package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return &RedisClient{Client: client}, mr
}

func TestJSONRoundTrip(t *testing.T) {
	rc, _ := newTestClient(t)
	ctx := context.Background()

	type payload struct{ Name string }
	require.NoError(t, rc.SetJSON(ctx, "k", payload{Name: "Cheese"}, time.Minute))

	var got payload
	require.NoError(t, rc.GetJSON(ctx, "k", &got))
	assert.Equal(t, "Cheese", got.Name)

	assert.ErrorIs(t, rc.GetJSON(ctx, "missing", &got), ErrMiss)
}

func TestDeletePattern(t *testing.T) {
	rc, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("products:list:a", "1"))
	require.NoError(t, mr.Set("products:list:b", "2"))
	require.NoError(t, mr.Set("stats:today", "3"))

	require.NoError(t, rc.DeletePattern(ctx, "products:list:*"))

	assert.False(t, mr.Exists("products:list:a"))
	assert.False(t, mr.Exists("products:list:b"))
	assert.True(t, mr.Exists("stats:today"))
}

func TestLock(t *testing.T) {
	rc, mr := newTestClient(t)
	ctx := context.Background()

	ok, err := rc.AcquireLock(ctx, "lock:x", "owner-1", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = rc.AcquireLock(ctx, "lock:x", "owner-2", time.Second)
	require.NoError(t, err)
	assert.False(t, ok)

	// a foreign owner cannot release it
	require.NoError(t, rc.ReleaseLock(ctx, "lock:x", "owner-2"))
	assert.True(t, mr.Exists("lock:x"))

	require.NoError(t, rc.ReleaseLock(ctx, "lock:x", "owner-1"))
	assert.False(t, mr.Exists("lock:x"))
}
