package repository

import (
	"context"
	"sync"
)

// MemoryCache keeps entries in process memory. Used directly in tests and as
// the failover target when the configured backend is down.
type MemoryCache struct {
	entries sync.Map
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, ok := c.entries.Load(key)
	if !ok {
		return nil, nil
	}
	stored := val.([]byte)
	out := make([]byte, len(stored))
	copy(out, stored)
	return out, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	c.entries.Store(key, stored)
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.entries.Delete(key)
	return nil
}
