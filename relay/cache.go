package relay

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"meetbot/types"
)

// Cache is a short-TTL read-through cache of bot payloads, there to absorb
// aggressive pollers hitting the same bot id. It is never load-bearing:
// every cache failure is treated as a miss and the provider is asked
// directly.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

// NewCache connects to Redis at addr. Entries expire after ttl.
func NewCache(addr string, ttl time.Duration, log zerolog.Logger) *Cache {
	return &Cache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: ttl,
		log: log.With().Str("component", "cache").Logger(),
	}
}

func cacheKey(botID string) string {
	return "meetbot:bot:" + botID
}

// Get returns the cached payload for botID if one is still fresh.
func (c *Cache) Get(ctx context.Context, botID string) (*types.Bot, bool) {
	raw, err := c.rdb.Get(ctx, cacheKey(botID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Debug().Err(err).Str("bot_id", botID).Msg("cache read failed")
		}
		return nil, false
	}

	var bot types.Bot
	if err := json.Unmarshal(raw, &bot); err != nil {
		c.log.Debug().Err(err).Str("bot_id", botID).Msg("cache entry corrupt")
		return nil, false
	}
	return &bot, true
}

// Set stores the payload under the bot's id with the cache TTL.
func (c *Cache) Set(ctx context.Context, bot *types.Bot) {
	raw, err := json.Marshal(bot)
	if err != nil {
		c.log.Debug().Err(err).Str("bot_id", bot.ID).Msg("cache encode failed")
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(bot.ID), raw, c.ttl).Err(); err != nil {
		c.log.Debug().Err(err).Str("bot_id", bot.ID).Msg("cache write failed")
	}
}

// Close releases the Redis connection.
func (c *Cache) Close() error {
	return c.rdb.Close()
}
