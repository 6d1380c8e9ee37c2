package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// FailoverSearchCache prefers the primary cache and falls back to the
// secondary when the primary errors, probing for recovery after a cooldown.
type FailoverSearchCache struct {
	primary  SearchCache
	fallback SearchCache
	logger   *zerolog.Logger

	isDown    atomic.Bool
	mu        sync.Mutex
	lastCheck time.Time
}

const recoveryCooldown = time.Minute

func NewFailoverSearchCache(primary, fallback SearchCache, logger *zerolog.Logger) *FailoverSearchCache {
	return &FailoverSearchCache{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (c *FailoverSearchCache) markDown(err error) {
	c.logger.Error().Err(err).Msg("primary search cache failed, falling back to memory")
	c.isDown.Store(true)
	c.mu.Lock()
	c.lastCheck = time.Now()
	c.mu.Unlock()
}

// shouldProbe reports whether enough time has passed to retry the primary.
func (c *FailoverSearchCache) shouldProbe() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if time.Since(c.lastCheck) < recoveryCooldown {
		return false
	}
	c.lastCheck = time.Now()
	return true
}

func (c *FailoverSearchCache) Get(ctx context.Context, text string) ([]models.Item, bool, error) {
	if !c.isDown.Load() {
		items, ok, err := c.primary.Get(ctx, text)
		if err == nil {
			return items, ok, nil
		}
		c.markDown(err)
	} else if c.shouldProbe() {
		items, ok, err := c.primary.Get(ctx, text)
		if err == nil {
			c.isDown.Store(false)
			return items, ok, nil
		}
	}

	return c.fallback.Get(ctx, text)
}

func (c *FailoverSearchCache) Set(ctx context.Context, text string, items []models.Item) error {
	if !c.isDown.Load() {
		err := c.primary.Set(ctx, text, items)
		if err == nil {
			return nil
		}
		c.markDown(err)
	}
	return c.fallback.Set(ctx, text, items)
}

func (c *FailoverSearchCache) Invalidate(ctx context.Context) error {
	// Both sides are always invalidated so a recovered primary cannot serve
	// results from before the mutation.
	var primaryErr error
	if !c.isDown.Load() {
		if primaryErr = c.primary.Invalidate(ctx); primaryErr != nil {
			c.markDown(primaryErr)
		}
	}
	return c.fallback.Invalidate(ctx)
}
