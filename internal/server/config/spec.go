// Package config defines the server configuration structure.
package config

import "time"

// ServerConfig is the root configuration for shardkv-server.
type ServerConfig struct {
	Server    ServerSection    `koanf:"server"`
	Store     StoreSection     `koanf:"store"`
	Pools     PoolsSection     `koanf:"pools"`
	Readiness ReadinessSection `koanf:"readiness"`
	Admin     AdminSection     `koanf:"admin"`
	Log       LogSection       `koanf:"log"`
}

// ServerSection configures the RESP listener.
type ServerSection struct {
	// Addr is the TCP address the RESP server listens on.
	Addr string `koanf:"addr"`

	// AcceptRatePerSec caps the sustained rate of accepted connections.
	AcceptRatePerSec float64 `koanf:"accept_rate_per_sec"`

	// AcceptBurst is the token-bucket burst size for the accept loop.
	AcceptBurst int `koanf:"accept_burst"`
}

// StoreSection configures the partitioned key-value store.
type StoreSection struct {
	// NumDatastores is the number of shards the key space is partitioned
	// into. The shard for a key is always first_byte(key) mod NumDatastores.
	NumDatastores int `koanf:"num_datastores"`
}

// PoolsSection configures the per-stage worker pools of the connection
// pipeline (read, parse+execute, write). Each stage has its own fixed-size
// pool so that slow operations in one stage cannot starve another.
type PoolsSection struct {
	ReadWorkers         int `koanf:"read_workers"`
	ParseExecuteWorkers int `koanf:"parse_execute_workers"`
	WriteWorkers        int `koanf:"write_workers"`
	SpareWorkers        int `koanf:"spare_workers"`
	QueueDepth          int `koanf:"queue_depth"`
}

// ReadinessSection configures the epoll-based readiness primitive.
type ReadinessSection struct {
	// MaxEvents is not read by the readiness primitive; its epoll_wait
	// event buffer is fixed at 64 entries (maxEpollEvents in the
	// orchestrator package).
	MaxEvents int `koanf:"max_events"`

	// PollTimeout bounds each epoll_wait call; the readiness loop rearms
	// every iteration regardless of whether any descriptor fired.
	PollTimeout time.Duration `koanf:"poll_timeout"`
}

// AdminSection configures the administrative HTTP surface
// (/healthz, /metrics, /stats). It is separate from the RESP listener.
type AdminSection struct {
	Addr    string `koanf:"addr"`
	Enabled bool   `koanf:"enabled"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
