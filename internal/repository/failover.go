package repository

import (
	"context"
	"sync/atomic"
	"time"

	"homefix/internal/domain"
	"homefix/internal/metrics"

	"github.com/rs/zerolog"
)

// FailoverCache serves from the primary backend and switches to the fallback
// when the primary errors. Reads retry the primary after a recovery window.
type FailoverCache struct {
	primary   domain.CacheStore
	fallback  domain.CacheStore
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck time.Time
}

func NewFailoverCache(primary, fallback domain.CacheStore, logger *zerolog.Logger) *FailoverCache {
	return &FailoverCache{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (c *FailoverCache) Get(ctx context.Context, key string) ([]byte, error) {
	if !c.isDown.Load() {
		val, err := c.primary.Get(ctx, key)
		if err == nil {
			return val, nil
		}
		c.markDown(err)
	}

	// Try to recover after 1 minute
	if c.isDown.Load() && time.Since(c.lastCheck) > time.Minute {
		val, err := c.primary.Get(ctx, key)
		if err == nil {
			c.isDown.Store(false)
			return val, nil
		}
		c.lastCheck = time.Now()
	}

	return c.fallback.Get(ctx, key)
}

func (c *FailoverCache) Set(ctx context.Context, key string, value []byte) error {
	if !c.isDown.Load() {
		err := c.primary.Set(ctx, key, value)
		if err == nil {
			return nil
		}
		c.markDown(err)
	}

	return c.fallback.Set(ctx, key, value)
}

func (c *FailoverCache) Delete(ctx context.Context, key string) error {
	if !c.isDown.Load() {
		err := c.primary.Delete(ctx, key)
		if err == nil {
			return nil
		}
		c.markDown(err)
	}

	return c.fallback.Delete(ctx, key)
}

func (c *FailoverCache) markDown(err error) {
	c.logger.Error().Err(err).Msg("Primary cache failed, falling back to memory")
	metrics.IncCacheFailover()
	c.isDown.Store(true)
	c.lastCheck = time.Now()
}
