package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheItem wraps a cached value with the time it was stored.
type CacheItem[V any] struct {
	Data     V
	StoredAt time.Time
}

// Age reports how long ago the item was stored, relative to now.
func (i CacheItem[V]) Age(now time.Time) time.Duration {
	return now.Sub(i.StoredAt)
}

// Cache is a size-bounded LRU keyed by string. Entries never expire on their
// own; callers decide what "stale" means from CacheItem.StoredAt.
type Cache[V any] struct {
	lruCache *lru.Cache[string, CacheItem[V]]
	now      func() time.Time
}

func NewCache[V any](size int) (*Cache[V], error) {
	l, err := lru.New[string, CacheItem[V]](size)
	if err != nil {
		return nil, err
	}
	return &Cache[V]{lruCache: l, now: time.Now}, nil
}

// WithClock replaces the time source, for tests.
func (c *Cache[V]) WithClock(now func() time.Time) *Cache[V] {
	c.now = now
	return c
}

func (c *Cache[V]) Set(key string, data V) {
	c.lruCache.Add(key, CacheItem[V]{
		Data:     data,
		StoredAt: c.now(),
	})
}

func (c *Cache[V]) Get(key string) (CacheItem[V], bool) {
	return c.lruCache.Get(key)
}

func (c *Cache[V]) Delete(key string) {
	c.lruCache.Remove(key)
}

func (c *Cache[V]) Len() int {
	return c.lruCache.Len()
}
