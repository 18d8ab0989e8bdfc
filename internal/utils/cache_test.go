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

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewCache(rdb, time.Minute), mr
}

type cachedValue struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestCache_GetMiss(t *testing.T) {
	c, _ := newTestCache(t)
	var v cachedValue
	found, err := c.Get(context.Background(), "missing", &v)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_SetGet(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", cachedValue{Name: "a", Count: 3}))

	var v cachedValue
	found, err := c.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, cachedValue{Name: "a", Count: 3}, v)
	assert.Equal(t, time.Minute, mr.TTL("k"))

	mr.FastForward(2 * time.Minute)
	found, err = c.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_DeletePrefix(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "analytics:a", 1))
	require.NoError(t, c.Set(ctx, "analytics:b", 2))
	require.NoError(t, c.Set(ctx, "other:c", 3))

	require.NoError(t, c.DeletePrefix(ctx, "analytics:"))
	assert.False(t, mr.Exists("analytics:a"))
	assert.False(t, mr.Exists("analytics:b"))
	assert.True(t, mr.Exists("other:c"))

	// Nothing left to delete
	require.NoError(t, c.DeletePrefix(ctx, "analytics:"))
}

func TestCache_ErrorWhenRedisDown(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()
	var v cachedValue
	_, err := c.Get(context.Background(), "k", &v)
	require.Error(t, err)
}
