package lru

import (
	"errors"
)

// ShardedCache is a thread-safe fixed size LRU cache that spreads string
// keys across several independently locked shards to reduce lock
// contention. Recency order is tracked per shard, not globally: under a
// skewed key distribution a shard may evict an entry that is not the
// globally least recently used one. Operations on a single key remain
// linearizable because every key maps to exactly one shard.
type ShardedCache[V any] struct {
	shards []*Cache[string, V]
}

// NewSharded creates an LRU of the given total size split across p shards.
// p is usually set to the number of cpu cores to improve concurrent write
// performance.
func NewSharded[V any](size, p int) (*ShardedCache[V], error) {
	if p < 1 {
		return nil, errors.New("p cannot be less than 1")
	}
	if size < 1 {
		return nil, errors.New("must provide a positive size")
	}
	if size < p {
		p = size
	}

	c := &ShardedCache[V]{
		shards: make([]*Cache[string, V], p),
	}

	for i := 1; i < p; i++ {
		shard, err := New[string, V](size / p)
		if err != nil {
			return nil, err
		}
		c.shards[i] = shard
	}

	// the first shard absorbs the remainder so the total capacity is exact
	shard, err := New[string, V](size/p + size%p)
	if err != nil {
		return nil, err
	}
	c.shards[0] = shard

	return c, nil
}

func (c *ShardedCache[V]) shard(key string) *Cache[string, V] {
	if len(c.shards) == 1 {
		return c.shards[0]
	}
	return c.shards[djb(key)%uint32(len(c.shards))]
}

// Purge is used to completely clear the cache.
func (c *ShardedCache[V]) Purge() {
	for i := 0; i < len(c.shards); i++ {
		c.shards[i].Purge()
	}
}

// Add adds a value to the cache. Returns true if an eviction occurred.
func (c *ShardedCache[V]) Add(key string, value V) (evicted bool) {
	return c.shard(key).Add(key, value)
}

// Get looks up a key's value from the cache.
func (c *ShardedCache[V]) Get(key string) (value V, ok bool) {
	return c.shard(key).Get(key)
}

// Contains checks if a key is in the cache, without updating the
// recent-ness or deleting it for being stale.
func (c *ShardedCache[V]) Contains(key string) bool {
	return c.shard(key).Contains(key)
}

// Peek returns the key value (or undefined if not found) without updating
// the "recently used"-ness of the key.
func (c *ShardedCache[V]) Peek(key string) (value V, ok bool) {
	return c.shard(key).Peek(key)
}

// ContainsOrAdd checks if a key is in the cache without updating the
// recent-ness or deleting it for being stale, and if not, adds the value.
// Returns whether found and whether an eviction occurred.
func (c *ShardedCache[V]) ContainsOrAdd(key string, value V) (ok, evicted bool) {
	return c.shard(key).ContainsOrAdd(key, value)
}

// PeekOrAdd checks if a key is in the cache without updating the
// recent-ness or deleting it for being stale, and if not, adds the value.
// Returns whether found and whether an eviction occurred.
func (c *ShardedCache[V]) PeekOrAdd(key string, value V) (previous V, ok, evicted bool) {
	return c.shard(key).PeekOrAdd(key, value)
}

// Remove removes the provided key from the cache.
func (c *ShardedCache[V]) Remove(key string) (present bool) {
	return c.shard(key).Remove(key)
}

// Keys returns the keys in the cache, grouped by shard and ordered from
// oldest to newest within each shard.
func (c *ShardedCache[V]) Keys() (ret []string) {
	for i := 0; i < len(c.shards); i++ {
		ret = append(ret, c.shards[i].Keys()...)
	}
	return
}

// Len returns the number of items in the cache.
func (c *ShardedCache[V]) Len() (ret int) {
	for i := 0; i < len(c.shards); i++ {
		ret += c.shards[i].Len()
	}
	return
}

// Cap returns the total capacity of the cache across all shards.
func (c *ShardedCache[V]) Cap() (ret int) {
	for i := 0; i < len(c.shards); i++ {
		ret += c.shards[i].Cap()
	}
	return
}

func djb(key string) uint32 {
	var h rune = 5381
	for _, r := range key {
		h = ((h << 5) + h) + r
	}
	return uint32(h)
}
