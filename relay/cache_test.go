package relay

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetbot/types"
)

func TestCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewCache(mr.Addr(), time.Minute, zerolog.Nop())
	defer c.Close()

	bot := &types.Bot{
		ID:     "abc123",
		Status: "joined",
		Recordings: []types.Recording{
			{ID: "r1", Status: "processing"},
		},
	}
	c.Set(context.Background(), bot)

	got, ok := c.Get(context.Background(), "abc123")
	require.True(t, ok)
	assert.Equal(t, bot, got)
}

func TestCacheMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewCache(mr.Addr(), time.Minute, zerolog.Nop())
	defer c.Close()

	_, ok := c.Get(context.Background(), "never-seen")
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewCache(mr.Addr(), 3*time.Second, zerolog.Nop())
	defer c.Close()

	c.Set(context.Background(), &types.Bot{ID: "abc123", Status: "joined"})
	mr.FastForward(5 * time.Second)

	_, ok := c.Get(context.Background(), "abc123")
	assert.False(t, ok)
}

func TestCacheCorruptEntryIsMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewCache(mr.Addr(), time.Minute, zerolog.Nop())
	defer c.Close()

	require.NoError(t, mr.Set(cacheKey("abc123"), "{not json"))

	_, ok := c.Get(context.Background(), "abc123")
	assert.False(t, ok)
}

func TestCacheUnavailableRedisIsMiss(t *testing.T) {
	c := NewCache("127.0.0.1:1", time.Minute, zerolog.Nop())
	defer c.Close()

	// Never load-bearing: an unreachable Redis degrades to a miss.
	_, ok := c.Get(context.Background(), "abc123")
	assert.False(t, ok)
	c.Set(context.Background(), &types.Bot{ID: "abc123"})
}
