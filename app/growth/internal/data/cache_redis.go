package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/source"
)

const redisKeyPrefix = "growth:api_cache"

type redisCache struct {
	data *Data
	ttl  time.Duration
}

// NewRedisCache key 过期时间与缓存有效期一致，过期即视为未命中
func NewRedisCache(data *Data, ttl time.Duration) source.CacheStore {
	return &redisCache{data: data, ttl: ttl}
}

type redisEntry struct {
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

func redisKey(key source.Key) string {
	return fmt.Sprintf("%s:%s:%s:%s", redisKeyPrefix, key.AccountID, key.Source, key.Query)
}

func (c *redisCache) Get(ctx context.Context, key source.Key) (*source.Entry, error) {
	ctx, cancel := c.data.withTimeout(ctx)
	defer cancel()

	b, err := c.data.rdb.Get(ctx, redisKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var e redisEntry
	if err := json.Unmarshal(b, &e); err != nil {
		return nil, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return &source.Entry{Payload: e.Payload, CreatedAt: e.CreatedAt}, nil
}

func (c *redisCache) Put(ctx context.Context, key source.Key, payload json.RawMessage, createdAt time.Time) error {
	ctx, cancel := c.data.withTimeout(ctx)
	defer cancel()

	b, err := json.Marshal(redisEntry{Payload: payload, CreatedAt: createdAt})
	if err != nil {
		return err
	}
	return c.data.rdb.Set(ctx, redisKey(key), b, c.ttl).Err()
}
