package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// QuotationListKey caches the serialized list response.
const QuotationListKey = "quotations:list"

// Cache is a thin Redis wrapper. A nil or unconnected cache degrades to
// no-ops, so callers never branch on availability.
type Cache struct {
	client *redis.Client
}

// New connects to Redis when addr is set; otherwise, or on a failed ping,
// it returns a disabled cache.
func New(ctx context.Context, addr, password string, log zerolog.Logger) *Cache {
	if addr == "" {
		return &Cache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", addr).Msg("redis unavailable, caching disabled")
		client.Close()
		return &Cache{}
	}

	log.Info().Str("addr", addr).Msg("redis cache connected")
	return &Cache{client: client}
}

func (c *Cache) Enabled() bool { return c != nil && c.client != nil }

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if !c.Enabled() {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *Cache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if !c.Enabled() {
		return
	}
	c.client.Set(ctx, key, data, ttl)
}

func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}
	c.client.Del(ctx, keys...)
}

func (c *Cache) Close() {
	if c.Enabled() {
		c.client.Close()
	}
}
