package store

import "github.com/dreamware/shardkv/pkg/cmap"

// DefaultNumDatastores is the default shard count (NUM_DATASTORES).
const DefaultNumDatastores = 10

// Store is the partitioned key/value store. Each shard holds the
// RESP-serialized bytes of the value most recently SET for a key; DEL
// removes the entry; entries never expire.
type Store struct {
	numDatastores int
	m             *cmap.Map[string, []byte]
}

// New builds a Store partitioned into n shards. n <= 0 falls back to
// DefaultNumDatastores.
func New(n int) *Store {
	if n <= 0 {
		n = DefaultNumDatastores
	}
	s := &Store{numDatastores: n}
	s.m = cmap.New[string, []byte](
		cmap.WithShardCount[string, []byte](n),
		cmap.WithShardFunc[string, []byte](s.shardIndex),
	)
	return s
}

// shardIndex implements shard_index = first_byte(key) mod NUM_DATASTORES,
// with the empty key mapping to shard 0.
func (s *Store) shardIndex(key string) int {
	if len(key) == 0 {
		return 0
	}
	return int(key[0]) % s.numDatastores
}

// ShardIndex returns the shard a key would resolve to. Exposed for
// diagnostics and tests; callers should not need it for normal use.
func (s *Store) ShardIndex(key string) int {
	return s.shardIndex(key)
}

// NumDatastores returns the configured shard count.
func (s *Store) NumDatastores() int {
	return s.numDatastores
}

// Set inserts or overwrites the value stored under key.
func (s *Store) Set(key string, value []byte) {
	s.m.Set(key, value)
}

// Del removes key, reporting whether it was present beforehand.
func (s *Store) Del(key string) bool {
	return s.m.Delete(key)
}

// Get returns the stored bytes for key and whether it was present.
func (s *Store) Get(key string) ([]byte, bool) {
	return s.m.Get(key)
}

// ShardStats returns the per-shard key count, for the admin /stats
// endpoint.
func (s *Store) ShardStats() []cmap.ShardStats {
	return s.m.Stats()
}

// Count returns the total number of keys across all shards.
func (s *Store) Count() int {
	return s.m.Count()
}
