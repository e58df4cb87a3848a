// Package store implements the partitioned key/value store: a fixed
// number of independently-locked shards addressed by a deterministic
// key-to-shard function.
//
// A key's shard is always its first byte modulo the configured shard
// count (the empty key maps to shard 0), matching the original
// data_store partitioning scheme. Shards are built on pkg/cmap with a
// custom ShardFunc so the mapping never depends on a hash function.
package store
