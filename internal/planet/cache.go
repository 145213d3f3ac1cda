package planet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a read-through cache of planets by ID. Failures are logged and
// treated as misses; the repository stays the source of truth.
type Cache interface {
	Get(ctx context.Context, id int) (*Planet, bool)
	Set(ctx context.Context, p *Planet)
	Invalidate(ctx context.Context, id int)
}

type RedisCache struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// NewCache returns a no-op cache when client is nil.
func NewCache(client redis.Cmdable, prefix string, ttl time.Duration, logger *slog.Logger) Cache {
	if client == nil {
		logger.Debug("Planet cache disabled")
		return noopCache{}
	}

	return &RedisCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger.With("component", "planet_cache"),
	}
}

func (c *RedisCache) key(id int) string {
	return fmt.Sprintf("%s:planet:%d", c.prefix, id)
}

func (c *RedisCache) Get(ctx context.Context, id int) (*Planet, bool) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("Cache read failed", "planet_id", id, "error", err)
		return nil, false
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		c.logger.Warn("Discarding undecodable cache entry", "planet_id", id, "error", err)
		c.Invalidate(ctx, id)
		return nil, false
	}

	p, err := rec.toPlanet()
	if err != nil {
		c.logger.Warn("Discarding invalid cache entry", "planet_id", id, "error", err)
		c.Invalidate(ctx, id)
		return nil, false
	}
	return p, true
}

func (c *RedisCache) Set(ctx context.Context, p *Planet) {
	data, err := json.Marshal(recordOf(p))
	if err != nil {
		c.logger.Warn("Failed to encode planet for cache", "planet_id", p.ID(), "error", err)
		return
	}

	if err := c.client.Set(ctx, c.key(p.ID()), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Cache write failed", "planet_id", p.ID(), "error", err)
	}
}

func (c *RedisCache) Invalidate(ctx context.Context, id int) {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		c.logger.Warn("Cache invalidation failed", "planet_id", id, "error", err)
	}
}

type noopCache struct{}

func (noopCache) Get(context.Context, int) (*Planet, bool) { return nil, false }
func (noopCache) Set(context.Context, *Planet)             {}
func (noopCache) Invalidate(context.Context, int)          {}
