package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"shareit/internal/models"
)

type memoryEntry struct {
	items     []models.Item
	expiresAt time.Time
}

// MemorySearchCache is the in-process fallback used when Redis is down.
type MemorySearchCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

func NewMemorySearchCache(ttl time.Duration) *MemorySearchCache {
	return &MemorySearchCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func (c *MemorySearchCache) Get(ctx context.Context, text string) ([]models.Item, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[strings.ToLower(text)]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false, nil
	}
	return entry.items, true, nil
}

func (c *MemorySearchCache) Set(ctx context.Context, text string, items []models.Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[strings.ToLower(text)] = memoryEntry{
		items:     items,
		expiresAt: time.Now().Add(c.ttl),
	}
	return nil
}

func (c *MemorySearchCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]memoryEntry)
	return nil
}
