package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	in := payload{Name: "rice", Price: 3421.7}
	require.NoError(t, mc.Set(ctx, "k1", in, time.Minute))

	var out payload
	require.NoError(t, mc.Get(ctx, "k1", &out))
	assert.Equal(t, in, out)
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()

	var out payload
	err := mc.Get(context.Background(), "absent", &out)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "k1", payload{Name: "rice"}, 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	var out payload
	assert.ErrorIs(t, mc.Get(ctx, "k1", &out), ErrCacheMiss)
}

func TestMemoryCacheDelete(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "k1", payload{Name: "rice"}, time.Minute))
	require.NoError(t, mc.Delete(ctx, "k1"))

	var out payload
	assert.ErrorIs(t, mc.Get(ctx, "k1", &out), ErrCacheMiss)
}

func TestMemoryCacheLRUEviction(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "a", payload{Name: "a"}, time.Minute))
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, mc.Set(ctx, "b", payload{Name: "b"}, time.Minute))
	time.Sleep(2 * time.Millisecond)

	// Touch "a" so "b" becomes the eviction candidate.
	var out payload
	require.NoError(t, mc.Get(ctx, "a", &out))
	time.Sleep(2 * time.Millisecond)

	require.NoError(t, mc.Set(ctx, "c", payload{Name: "c"}, time.Minute))

	assert.NoError(t, mc.Get(ctx, "a", &out))
	assert.ErrorIs(t, mc.Get(ctx, "b", &out), ErrCacheMiss)
	assert.NoError(t, mc.Get(ctx, "c", &out))
}
