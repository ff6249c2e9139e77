package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache(10)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "k1", payload{Name: "redis", Count: 3}, time.Minute))

	var got payload
	require.NoError(t, c.GetJSON(ctx, "k1", &got))
	assert.Equal(t, "redis", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestMemoryCache_Miss(t *testing.T) {
	c := NewMemoryCache(10)

	var got payload
	err := c.GetJSON(context.Background(), "absent", &got)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(10)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "short", payload{Name: "x"}, time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	var got payload
	err := c.GetJSON(ctx, "short", &got)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryCache_DeletePattern(t *testing.T) {
	c := NewMemoryCache(10)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "jobradar:crawl:a", payload{}, time.Minute))
	require.NoError(t, c.SetJSON(ctx, "jobradar:crawl:b", payload{}, time.Minute))
	require.NoError(t, c.SetJSON(ctx, "jobradar:health", payload{}, time.Minute))

	removed, err := c.DeletePattern(ctx, "jobradar:crawl")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	var got payload
	assert.ErrorIs(t, c.GetJSON(ctx, "jobradar:crawl:a", &got), ErrMiss)
	assert.NoError(t, c.GetJSON(ctx, "jobradar:health", &got))
}

func TestMemoryCache_ZeroSizeFallsBack(t *testing.T) {
	c := NewMemoryCache(0)
	require.NotNil(t, c)
	require.NoError(t, c.SetJSON(context.Background(), "k", payload{}, time.Minute))
}
