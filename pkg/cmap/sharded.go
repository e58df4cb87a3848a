// Package cmap provides a concurrent-safe sharded map.
//
// It uses sharding to reduce lock contention, providing better
// performance than a single mutex-guarded map under concurrent access.
//
package cmap

import (
	"fmt"
	"hash/maphash"
	"sync"
)

// DefaultShardCount is the default number of shards.
const DefaultShardCount = 16

// Map is a concurrent-safe sharded map.
type Map[K comparable, V any] struct {
	shards    []*shard[K, V]
	shardFunc func(K) int
}

type shard[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

// Option configures a Map at construction time.
type Option[K comparable, V any] func(*mapConfig[K, V])

type mapConfig[K comparable, V any] struct {
	shardCount int
	shardFunc  func(K) int
}

// WithShardCount sets the number of shards. Need not be a power of 2;
// callers that want power-of-2 masking should fold that into ShardFunc.
func WithShardCount[K comparable, V any](n int) Option[K, V] {
	return func(c *mapConfig[K, V]) {
		if n > 0 {
			c.shardCount = n
		}
	}
}

// WithShardFunc overrides the default maphash-based shard selection with a
// caller-supplied deterministic function. fn must return a value in
// [0, shardCount) for every key; New clamps out-of-range results with a
// modulo so a misbehaving fn cannot panic, but callers should not rely on
// that clamping.
func WithShardFunc[K comparable, V any](fn func(K) int) Option[K, V] {
	return func(c *mapConfig[K, V]) {
		c.shardFunc = fn
	}
}

// New creates a new sharded map with the given options.
func New[K comparable, V any](opts ...Option[K, V]) *Map[K, V] {
	cfg := mapConfig[K, V]{shardCount: DefaultShardCount}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.shardCount <= 0 {
		cfg.shardCount = DefaultShardCount
	}

	m := &Map[K, V]{
		shards: make([]*shard[K, V], cfg.shardCount),
	}
	for i := range m.shards {
		m.shards[i] = &shard[K, V]{items: make(map[K]V)}
	}

	if cfg.shardFunc != nil {
		n := cfg.shardCount
		m.shardFunc = func(k K) int {
			idx := cfg.shardFunc(k) % n
			if idx < 0 {
				idx += n
			}
			return idx
		}
		return m
	}

	seed := maphash.MakeSeed()
	n := uint64(cfg.shardCount)
	m.shardFunc = func(k K) int {
		var h maphash.Hash
		h.SetSeed(seed)
		h.WriteString(fmt.Sprintf("%v", k))
		return int(h.Sum64() % n)
	}
	return m
}

// getShard returns the shard responsible for key.
func (m *Map[K, V]) getShard(key K) *shard[K, V] {
	return m.shards[m.shardFunc(key)]
}

// Get retrieves a value by key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	shard := m.getShard(key)
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	val, ok := shard.items[key]
	return val, ok
}

// Set stores a key-value pair.
func (m *Map[K, V]) Set(key K, value V) {
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	shard.items[key] = value
}

// Delete removes a key and reports whether it was present.
func (m *Map[K, V]) Delete(key K) bool {
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	_, ok := shard.items[key]
	delete(shard.items, key)
	return ok
}

// Has checks if a key exists.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Count returns the total number of items.
func (m *Map[K, V]) Count() int {
	count := 0
	for _, shard := range m.shards {
		shard.mu.RLock()
		count += len(shard.items)
		shard.mu.RUnlock()
	}
	return count
}

// Clear removes all items.
func (m *Map[K, V]) Clear() {
	for _, shard := range m.shards {
		shard.mu.Lock()
		shard.items = make(map[K]V)
		shard.mu.Unlock()
	}
}

// ShardCount returns the number of shards.
func (m *Map[K, V]) ShardCount() int {
	return len(m.shards)
}

// ShardStats describes the key count of one shard.
type ShardStats struct {
	Index int
	Count int
}

// Stats returns the per-shard key count, in shard-index order.
func (m *Map[K, V]) Stats() []ShardStats {
	stats := make([]ShardStats, len(m.shards))
	for i, shard := range m.shards {
		shard.mu.RLock()
		stats[i] = ShardStats{Index: i, Count: len(shard.items)}
		shard.mu.RUnlock()
	}
	return stats
}
