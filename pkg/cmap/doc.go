// Package cmap provides a concurrent map implementation for shardkv.
//
// This package implements a sharded concurrent map optimized for
// high-throughput key-value storage with the following features:
//
//   - Sharding: configurable shard count and shard-selection function
//   - Fine-grained Locking: per-shard RWMutex for minimal contention
//   - Stats: per-shard key counts for diagnostics
//
// Usage:
//
//	m := cmap.New[string, int](cmap.WithShardCount[string, int](32))
//	m.Set("key", 1)
//	val, ok := m.Get("key")
//
// Thread Safety:
//
// All operations are thread-safe. Read operations (Get, Has) use RLock,
// write operations (Set, Delete) use Lock.
package cmap
