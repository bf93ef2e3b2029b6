// Package lru provides fixed-size LRU caches built on a shared core.
//
// Cache is a simple thread-safe LRU cache. It is based on the
// LRU implementation in groupcache:
// https://github.com/golang/groupcache/tree/master/lru
//
// ShardedCache splits a Cache into several independently locked shards to
// reduce lock contention under concurrent write load. Its eviction order is
// per shard rather than global.
//
// The non-thread-safe core lives in the simplelru package for embedders
// that provide their own synchronization.
package lru
