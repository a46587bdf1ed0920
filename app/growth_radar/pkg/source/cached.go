package source

import (
	"context"
	"encoding/json"
	"time"

	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/logger"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/metrics"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/model"
)

// DefaultTTL 缓存有效期
const DefaultTTL = 24 * time.Hour

// Cached 为数据源加上 (account, source, query) 维度的缓存
type Cached struct {
	source  model.Source
	fetcher Fetcher
	store   CacheStore
	ttl     time.Duration
	now     func() time.Time
}

// NewCached 创建带缓存的数据源，store 为 nil 时每次都直接请求
func NewCached(src model.Source, fetcher Fetcher, store CacheStore, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cached{
		source:  src,
		fetcher: fetcher,
		store:   store,
		ttl:     ttl,
		now:     time.Now,
	}
}

// WithClock 替换时钟，测试使用
func (c *Cached) WithClock(now func() time.Time) *Cached {
	c.now = now
	return c
}

// Source 数据源名称
func (c *Cached) Source() model.Source {
	return c.source
}

// Fetch 优先返回未过期的缓存；未命中时请求数据源并写回缓存。
// 任何失败都只记录日志并返回 nil，由调用方按缺失处理。
func (c *Cached) Fetch(ctx context.Context, accountID, query string) json.RawMessage {
	log := logger.Log.WithField("source", c.source).WithField("query", query)
	key := Key{AccountID: accountID, Source: c.source, Query: query}

	if c.store != nil {
		entry, err := c.store.Get(ctx, key)
		switch {
		case err != nil:
			metrics.CacheLookups.WithLabelValues(string(c.source), "error").Inc()
			log.Warnf("读取缓存失败，按未命中处理: %v", err)
		case entry != nil && c.now().Sub(entry.CreatedAt) < c.ttl:
			metrics.CacheLookups.WithLabelValues(string(c.source), "hit").Inc()
			log.Debugf("缓存命中 (写入于 %s)", entry.CreatedAt.Format(time.RFC3339))
			return entry.Payload
		default:
			metrics.CacheLookups.WithLabelValues(string(c.source), "miss").Inc()
		}
	}

	payload, err := c.fetcher.Fetch(ctx, query)
	if err != nil {
		metrics.SourceFetches.WithLabelValues(string(c.source), "error").Inc()
		log.Errorf("数据源请求失败: %v", err)
		return nil
	}
	if len(payload) == 0 || string(payload) == "null" {
		metrics.SourceFetches.WithLabelValues(string(c.source), "empty").Inc()
		log.Warn("数据源没有返回可用数据")
		return nil
	}
	metrics.SourceFetches.WithLabelValues(string(c.source), "ok").Inc()

	if c.store != nil {
		if err := c.store.Put(ctx, key, payload, c.now()); err != nil {
			log.Errorf("写入缓存失败: %v", err)
		}
	}
	return payload
}
