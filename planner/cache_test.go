package planner

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manasdutta04/layr/plan"
)

func testPlan(title string) *plan.ProjectPlan {
	return &plan.ProjectPlan{
		Title:        title,
		Requirements: []string{"r"},
		GeneratedAt:  time.Now(),
	}
}

func TestCacheKeyNormalization(t *testing.T) {
	c := NewCache(0, 0)
	c.Set("  Build a TODO App  ", testPlan("X"))

	assert.NotNil(t, c.Get("build a todo app"))
	assert.NotNil(t, c.Get("BUILD A TODO APP"))
	assert.Nil(t, c.Get("build a different app"))
	assert.Equal(t, 1, c.Len())
}

func TestCacheGetReturnsFreshCopy(t *testing.T) {
	c := NewCache(0, 0)
	c.Set("prompt", testPlan("X"))

	first := c.Get("prompt")
	require.NotNil(t, first)
	first.Title = "mutated"
	first.Requirements[0] = "mutated"

	second := c.Get("prompt")
	require.NotNil(t, second)
	assert.Equal(t, "X", second.Title)
	assert.Equal(t, "r", second.Requirements[0])
}

func TestCacheTTLExpiryRemovesOnRead(t *testing.T) {
	c := NewCache(0, time.Hour)
	base := time.Now()
	c.now = func() time.Time { return base }

	c.Set("prompt", testPlan("X"))
	assert.Equal(t, 1, c.Len())

	// Just inside the TTL.
	c.now = func() time.Time { return base.Add(59 * time.Minute) }
	assert.NotNil(t, c.Get("prompt"))
	assert.Equal(t, 1, c.Len())

	// Past the TTL the entry is gone and the count shrinks.
	c.now = func() time.Time { return base.Add(61 * time.Minute) }
	assert.Nil(t, c.Get("prompt"))
	assert.Equal(t, 0, c.Len())
}

func TestCacheHitRefreshesGeneratedAt(t *testing.T) {
	c := NewCache(0, time.Hour)
	base := time.Now()
	c.now = func() time.Time { return base }

	p := testPlan("X")
	p.GeneratedAt = base.Add(-30 * time.Minute)
	c.Set("prompt", p)

	later := base.Add(10 * time.Minute)
	c.now = func() time.Time { return later }
	got := c.Get("prompt")
	require.NotNil(t, got)
	assert.Equal(t, later, got.GeneratedAt)
}

func TestCacheCapacityEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewCache(3, time.Hour)
	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("prompt-%d", i), testPlan("X"))
	}

	// Touch prompt-0 so prompt-1 becomes the eviction candidate.
	require.NotNil(t, c.Get("prompt-0"))

	c.Set("prompt-3", testPlan("X"))
	assert.Equal(t, 3, c.Len())
	assert.NotNil(t, c.Get("prompt-0"))
	assert.Nil(t, c.Get("prompt-1"))
	assert.NotNil(t, c.Get("prompt-3"))
}

func TestCacheOverwriteDoesNotEvict(t *testing.T) {
	c := NewCache(2, time.Hour)
	c.Set("a", testPlan("A"))
	c.Set("b", testPlan("B"))
	c.Set("a", testPlan("A2"))

	assert.Equal(t, 2, c.Len())
	got := c.Get("a")
	require.NotNil(t, got)
	assert.Equal(t, "A2", got.Title)
	assert.NotNil(t, c.Get("b"))
}

func TestCacheClear(t *testing.T) {
	c := NewCache(0, 0)
	c.Set("a", testPlan("A"))
	c.Set("b", testPlan("B"))
	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.Get("a"))
}
