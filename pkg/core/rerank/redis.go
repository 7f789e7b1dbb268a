package rerank

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// redisCache stores re-ranking results in redis so multiple scheduler
// processes share one cache. Cache failures are treated as misses; the
// collaborator is advisory and so is its cache.
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCache creates a redis-backed recommendation cache.
func NewRedisCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) RecommendationCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &redisCache{client: client, ttl: ttl, logger: logger}
}

const redisKeyPrefix = "scheduler:rerank:"

func (c *redisCache) Get(ctx context.Context, key string) ([]Annotation, bool) {
	raw, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("Rerank cache read failed", zap.Error(err))
		return nil, false
	}

	var annotations []Annotation
	if err := json.Unmarshal(raw, &annotations); err != nil {
		c.logger.Warn("Rerank cache entry corrupt, ignoring", zap.Error(err))
		return nil, false
	}
	return annotations, true
}

func (c *redisCache) Store(ctx context.Context, key string, annotations []Annotation) {
	raw, err := json.Marshal(annotations)
	if err != nil {
		c.logger.Warn("Failed to encode rerank cache entry", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, redisKeyPrefix+key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("Rerank cache write failed", zap.Error(err))
	}
}
