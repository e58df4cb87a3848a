// Package config defines the server configuration structure.
package config

import "time"

// Default configuration values.
const (
	DefaultServerAddr = "0.0.0.0:6379"
	DefaultAdminAddr  = "127.0.0.1:5080"

	DefaultNumDatastores = 10

	DefaultReadWorkers         = 8
	DefaultParseExecuteWorkers = 8
	DefaultWriteWorkers        = 8
	DefaultSpareWorkers        = 8
	DefaultQueueDepth          = 256

	DefaultMaxEvents   = 64
	DefaultPollTimeout = 1000 * time.Millisecond

	DefaultAcceptRatePerSec = 500.0
	DefaultAcceptBurst      = 100

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			Addr:             DefaultServerAddr,
			AcceptRatePerSec: DefaultAcceptRatePerSec,
			AcceptBurst:      DefaultAcceptBurst,
		},
		Store: StoreSection{
			NumDatastores: DefaultNumDatastores,
		},
		Pools: PoolsSection{
			ReadWorkers:         DefaultReadWorkers,
			ParseExecuteWorkers: DefaultParseExecuteWorkers,
			WriteWorkers:        DefaultWriteWorkers,
			SpareWorkers:        DefaultSpareWorkers,
			QueueDepth:          DefaultQueueDepth,
		},
		Readiness: ReadinessSection{
			MaxEvents:   DefaultMaxEvents,
			PollTimeout: DefaultPollTimeout,
		},
		Admin: AdminSection{
			Addr:    DefaultAdminAddr,
			Enabled: true,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
