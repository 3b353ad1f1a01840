package store

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-process store. Entries expire after the configured TTL,
// which keeps a dev server from growing without bound.
type Memory struct {
	cache *gocache.Cache
}

// NewMemory creates an in-memory store. A zero ttl means entries never
// expire.
func NewMemory(ttl time.Duration) *Memory {
	if ttl == 0 {
		ttl = gocache.NoExpiration
	}
	return &Memory{
		cache: gocache.New(ttl, 10*time.Minute),
	}
}

func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	buf := make([]byte, len(value))
	copy(buf, value)
	m.cache.Set(key, buf, gocache.DefaultExpiration)
	return nil
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.cache.Get(key)
	if !ok {
		return nil, ErrNotFound
	}
	return v.([]byte), nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.cache.Delete(key)
	return nil
}
