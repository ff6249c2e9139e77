package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is the in-process fallback used when no Redis URL is configured.
// Entries honor the same TTL semantics as the Redis store; eviction beyond
// TTL is handled by the LRU.
type Memory struct {
	entries *lru.Cache[string, memoryEntry]
}

func NewMemoryCache(size int) *Memory {
	entries, err := lru.New[string, memoryEntry](size)
	if err != nil {
		// Only happens for size <= 0.
		entries, _ = lru.New[string, memoryEntry](1000)
	}
	return &Memory{entries: entries}
}

func (c *Memory) SetJSON(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	c.entries.Add(key, memoryEntry{data: data, expiresAt: expiresAt})
	return nil
}

func (c *Memory) GetJSON(_ context.Context, key string, dest any) error {
	entry, ok := c.entries.Get(key)
	if !ok {
		return ErrMiss
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		c.entries.Remove(key)
		return ErrMiss
	}
	return json.Unmarshal(entry.data, dest)
}

func (c *Memory) DeletePattern(_ context.Context, prefix string) (int, error) {
	removed := 0
	for _, key := range c.entries.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.entries.Remove(key)
			removed++
		}
	}
	return removed, nil
}

func (c *Memory) Ping(context.Context) error {
	return nil
}

func (c *Memory) Close() error {
	c.entries.Purge()
	return nil
}
