package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"sportshop/pkg/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func TestNoop(t *testing.T) {
	var c cache.Cache = cache.Noop{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", entry{Name: "ball"}, time.Minute))
	var got entry
	found, err := c.Get(ctx, "k", &got)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, c.Delete(ctx, "k"))
}

func TestRedis(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	ctx := context.Background()
	c, err := cache.NewRedis(ctx, cache.Config{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	key := "test:" + uuid.NewString()
	var got entry
	found, err := c.Get(ctx, key, &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, key, []entry{{Name: "ball", Price: 12.5}}, time.Minute))
	var list []entry
	found, err = c.Get(ctx, key, &list)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []entry{{Name: "ball", Price: 12.5}}, list)

	require.NoError(t, c.Delete(ctx, key))
	found, err = c.Get(ctx, key, &list)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNewRedis_Unreachable(t *testing.T) {
	_, err := cache.NewRedis(context.Background(), cache.Config{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
