package embedding

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const redisKeyPrefix = "emb:"

// RedisCache is the shared second-level embedding cache. Every
// operation is best effort: a redis outage degrades to API calls, it
// never fails an embedding request.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisCache{client: client, ttl: ttl}
}

func redisKey(text string) string {
	sum := sha1.Sum([]byte(text))
	return redisKeyPrefix + hex.EncodeToString(sum[:])
}

func (c *RedisCache) Get(ctx context.Context, text string) ([]float64, bool) {
	raw, err := c.client.Get(ctx, redisKey(text)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Warnf("redis embedding cache get failed: %v", err)
		return nil, false
	}

	var vector []float64
	if err := json.Unmarshal(raw, &vector); err != nil {
		log.Warnf("redis embedding cache holds malformed vector: %v", err)
		return nil, false
	}
	return vector, true
}

func (c *RedisCache) Put(ctx context.Context, text string, vector []float64) {
	raw, err := json.Marshal(vector)
	if err != nil {
		log.Warnf("failed to marshal embedding for cache: %v", err)
		return
	}
	if err := c.client.Set(ctx, redisKey(text), raw, c.ttl).Err(); err != nil {
		log.Warnf("redis embedding cache set failed: %v", err)
	}
}
