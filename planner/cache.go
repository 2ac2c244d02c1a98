package planner

import (
	"strings"
	"sync"
	"time"

	"github.com/manasdutta04/layr/plan"
)

const (
	defaultCacheSize = 20
	defaultCacheTTL  = time.Hour
)

type cacheEntry struct {
	plan     *plan.ProjectPlan
	cachedAt time.Time
}

// Cache keeps recently generated plans keyed by normalized prompt.
// Entries expire after a TTL; expired entries are removed when read.
// When full, the least recently used entry is evicted.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	order   []string
	maxSize int
	ttl     time.Duration
	now     func() time.Time
}

// NewCache creates a plan cache. Non-positive size or TTL fall back to
// the defaults.
func NewCache(maxSize int, ttl time.Duration) *Cache {
	if maxSize <= 0 {
		maxSize = defaultCacheSize
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{
		entries: make(map[string]*cacheEntry),
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Key normalizes a prompt so trivially different spellings share a
// cache slot.
func Key(prompt string) string {
	return strings.ToLower(strings.TrimSpace(prompt))
}

// Get returns a copy of the cached plan for prompt, or nil. A hit
// refreshes the entry's recency and stamps the copy with the current
// time.
func (c *Cache) Get(prompt string) *plan.ProjectPlan {
	key := Key(prompt)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil
	}
	if c.now().Sub(entry.cachedAt) > c.ttl {
		delete(c.entries, key)
		c.removeFromOrder(key)
		return nil
	}

	c.removeFromOrder(key)
	c.order = append(c.order, key)

	out := entry.plan.Clone()
	out.GeneratedAt = c.now()
	return out
}

// Set stores a copy of the plan under the normalized prompt, evicting
// the least recently used entry if the cache is full.
func (c *Cache) Set(prompt string, p *plan.ProjectPlan) {
	if p == nil {
		return
	}
	key := Key(prompt)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = &cacheEntry{plan: p.Clone(), cachedAt: c.now()}
	c.removeFromOrder(key)
	c.order = append(c.order, key)
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
	c.order = nil
}

func (c *Cache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
