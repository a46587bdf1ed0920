package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/growth_radar/app/growth/internal/conf"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/source"
)

// NewCacheStore 按 data.cache.driver 选择数据源缓存的存储
func NewCacheStore(c *conf.Data, g *conf.Growth, data *Data, logger log.Logger) source.CacheStore {
	helper := log.NewHelper(logger)
	driver := "postgres"
	if c.Cache != nil && c.Cache.Driver != "" {
		driver = c.Cache.Driver
	}

	switch driver {
	case "redis":
		if data.rdb != nil {
			ttl := time.Duration(g.CacheTTLHours()) * time.Hour
			helper.Infof("数据源缓存使用 redis, ttl=%v", ttl)
			return NewRedisCache(data, ttl)
		}
		helper.Warn("未配置 redis，数据源缓存回退到 postgres")
	case "memory":
		helper.Info("数据源缓存使用进程内存")
		return source.NewMemoryStore()
	}
	return NewPostgresCache(data)
}

type postgresCache struct {
	data *Data
}

func NewPostgresCache(data *Data) source.CacheStore {
	return &postgresCache{data: data}
}

func (c *postgresCache) Get(ctx context.Context, key source.Key) (*source.Entry, error) {
	ctx, cancel := c.data.withTimeout(ctx)
	defer cancel()

	var (
		payload   []byte
		createdAt time.Time
	)
	err := c.data.db.QueryRowContext(ctx, `
		SELECT data, created_at FROM api_cache
		WHERE user_id = $1 AND source = $2 AND query = $3`,
		key.AccountID, string(key.Source), key.Query).Scan(&payload, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &source.Entry{Payload: json.RawMessage(payload), CreatedAt: createdAt}, nil
}

// Put 同一个键后写覆盖先写
func (c *postgresCache) Put(ctx context.Context, key source.Key, payload json.RawMessage, createdAt time.Time) error {
	ctx, cancel := c.data.withTimeout(ctx)
	defer cancel()

	_, err := c.data.db.ExecContext(ctx, `
		INSERT INTO api_cache (user_id, source, query, data, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, source, query)
		DO UPDATE SET data = EXCLUDED.data, created_at = EXCLUDED.created_at`,
		key.AccountID, string(key.Source), key.Query, []byte(payload), createdAt)
	return err
}
