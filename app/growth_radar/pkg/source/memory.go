package source

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MemoryStore 进程内缓存，CLI 和测试使用
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[Key]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[Key]Entry)}
}

var _ CacheStore = (*MemoryStore)(nil)

func (s *MemoryStore) Get(_ context.Context, key Key) (*Entry, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return &Entry{Payload: bytes.Clone(e.Payload), CreatedAt: e.CreatedAt}, nil
}

func (s *MemoryStore) Put(_ context.Context, key Key, payload json.RawMessage, createdAt time.Time) error {
	e := Entry{Payload: bytes.Clone(payload), CreatedAt: createdAt}
	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
	return nil
}

// Len 当前条目数
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
