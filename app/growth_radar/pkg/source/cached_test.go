package source

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/model"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func countingFetcher(calls *int32, payload string, err error) Fetcher {
	return FetcherFunc(func(ctx context.Context, query string) (json.RawMessage, error) {
		n := atomic.AddInt32(calls, 1)
		if err != nil {
			return nil, err
		}
		if payload == "" {
			return nil, nil
		}
		// 每次请求的载荷都不同，用来区分是否命中缓存
		return json.RawMessage(`{"q":"` + query + `","n":` + strconv.Itoa(int(n)) + `,"v":` + payload + `}`), nil
	})
}

func TestCached_HitWithinTTLIsByteIdentical(t *testing.T) {
	var calls int32
	clock := &fakeClock{t: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)}
	c := NewCached(model.SourceNews, countingFetcher(&calls, `1`, nil), NewMemoryStore(), DefaultTTL).
		WithClock(clock.Now)

	first := c.Fetch(context.Background(), "u1", "fitness")
	clock.Advance(23 * time.Hour)
	second := c.Fetch(context.Background(), "u1", "fitness")

	require.NotNil(t, first)
	assert.Equal(t, int32(1), calls)
	assert.Equal(t, []byte(first), []byte(second))
}

func TestCached_StaleEntryIsRefetched(t *testing.T) {
	var calls int32
	clock := &fakeClock{t: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryStore()
	c := NewCached(model.SourceYouTube, countingFetcher(&calls, `1`, nil), store, DefaultTTL).
		WithClock(clock.Now)

	first := c.Fetch(context.Background(), "u1", "UC123")
	clock.Advance(DefaultTTL)
	second := c.Fetch(context.Background(), "u1", "UC123")

	assert.Equal(t, int32(2), calls)
	assert.NotEqual(t, string(first), string(second))
	assert.Equal(t, 1, store.Len(), "upsert keeps one entry per key")

	entry, err := store.Get(context.Background(), Key{AccountID: "u1", Source: model.SourceYouTube, Query: "UC123"})
	require.NoError(t, err)
	assert.Equal(t, string(second), string(entry.Payload))
	assert.Equal(t, clock.Now(), entry.CreatedAt)
}

func TestCached_KeyIncludesAccountAndSource(t *testing.T) {
	var calls int32
	store := NewMemoryStore()
	news := NewCached(model.SourceNews, countingFetcher(&calls, `1`, nil), store, DefaultTTL)
	social := NewCached(model.SourceSocial, countingFetcher(&calls, `1`, nil), store, DefaultTTL)

	news.Fetch(context.Background(), "u1", "fitness")
	news.Fetch(context.Background(), "u2", "fitness")
	social.Fetch(context.Background(), "u1", "fitness")

	assert.Equal(t, int32(3), calls)
	assert.Equal(t, 3, store.Len())
}

func TestCached_FailuresAreAbsentAndNotCached(t *testing.T) {
	var calls int32
	store := NewMemoryStore()

	failing := NewCached(model.SourceNews, countingFetcher(&calls, `1`, errors.New("dial tcp: timeout")), store, DefaultTTL)
	assert.Nil(t, failing.Fetch(context.Background(), "u1", "fitness"))

	empty := NewCached(model.SourceYouTube, countingFetcher(&calls, "", nil), store, DefaultTTL)
	assert.Nil(t, empty.Fetch(context.Background(), "u1", "UC404"))

	assert.Equal(t, 0, store.Len())
	assert.Equal(t, int32(2), calls)
}

type brokenStore struct{ puts int }

func (b *brokenStore) Get(context.Context, Key) (*Entry, error) {
	return nil, errors.New("connection refused")
}

func (b *brokenStore) Put(context.Context, Key, json.RawMessage, time.Time) error {
	b.puts++
	return errors.New("connection refused")
}

func TestCached_StoreErrorsDegradeToFetch(t *testing.T) {
	var calls int32
	store := &brokenStore{}
	c := NewCached(model.SourceSocial, countingFetcher(&calls, `1`, nil), store, DefaultTTL)

	payload := c.Fetch(context.Background(), "u1", "fitness")

	assert.NotNil(t, payload)
	assert.Equal(t, int32(1), calls)
	assert.Equal(t, 1, store.puts)
}
