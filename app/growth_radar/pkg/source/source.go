package source

import (
	"context"
	"encoding/json"
	"time"

	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/model"
)

// Fetcher 定义通用的数据源接口，返回 nil 载荷表示没有可用数据
type Fetcher interface {
	Fetch(ctx context.Context, query string) (json.RawMessage, error)
}

// FetcherFunc 函数适配 Fetcher
type FetcherFunc func(ctx context.Context, query string) (json.RawMessage, error)

func (f FetcherFunc) Fetch(ctx context.Context, query string) (json.RawMessage, error) {
	return f(ctx, query)
}

// Key 缓存键 (account, source, query)
type Key struct {
	AccountID string
	Source    model.Source
	Query     string
}

// Entry 缓存条目
type Entry struct {
	Payload   json.RawMessage
	CreatedAt time.Time
}

// CacheStore 缓存存储，未命中时返回 (nil, nil)；Put 对同一个键覆盖写入
type CacheStore interface {
	Get(ctx context.Context, key Key) (*Entry, error)
	Put(ctx context.Context, key Key, payload json.RawMessage, createdAt time.Time) error
}
