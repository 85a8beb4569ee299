package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLRUCachePutGet(t *testing.T) {
	cache := NewLRUCache(2)

	cache.Put("a", []float64{1})
	value, ok := cache.Get("a")
	assert.True(t, ok)
	assert.Equal(t, []float64{1}, value)

	_, ok = cache.Get("missing")
	assert.False(t, ok)
}

func TestLRUCacheEvictsOldest(t *testing.T) {
	cache := NewLRUCache(2)

	cache.Put("a", []float64{1})
	cache.Put("b", []float64{2})
	cache.Put("c", []float64{3})

	_, ok := cache.Get("a")
	assert.False(t, ok)
	_, ok = cache.Get("b")
	assert.True(t, ok)
	_, ok = cache.Get("c")
	assert.True(t, ok)
}

func TestLRUCacheGetRefreshesRecency(t *testing.T) {
	cache := NewLRUCache(2)

	cache.Put("a", []float64{1})
	cache.Put("b", []float64{2})
	cache.Get("a")
	cache.Put("c", []float64{3})

	_, ok := cache.Get("a")
	assert.True(t, ok)
	_, ok = cache.Get("b")
	assert.False(t, ok)
}

func TestLRUCacheUpdateExistingKey(t *testing.T) {
	cache := NewLRUCache(2)

	cache.Put("a", []float64{1})
	cache.Put("a", []float64{2})

	value, ok := cache.Get("a")
	assert.True(t, ok)
	assert.Equal(t, []float64{2}, value)
}
