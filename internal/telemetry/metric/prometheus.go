// Package metric provides Prometheus metrics for shardkv.
//
// It exposes metrics in Prometheus format for monitoring connection
// lifecycle, command throughput and latency, and per-shard key
// distribution.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all application metrics.
type Registry struct {
	reg *prometheus.Registry

	ConnectionsAccepted prometheus.Counter
	ConnectionsActive   prometheus.Gauge
	ConnectionsClosed   *prometheus.CounterVec

	CommandsTotal   *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec

	ShardKeyCount   *prometheus.GaugeVec
	PoolQueueDepth  *prometheus.GaugeVec
	PoolLiveWorkers *prometheus.GaugeVec
}

// NewRegistry creates a new metrics registry and registers all
// collectors with a fresh prometheus.Registry.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		reg: reg,

		ConnectionsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shardkv",
			Subsystem: "connections",
			Name:      "accepted_total",
			Help:      "Total number of connections accepted by the RESP listener.",
		}),
		ConnectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "shardkv",
			Subsystem: "connections",
			Name:      "active",
			Help:      "Number of connections currently tracked by the orchestrator.",
		}),
		ConnectionsClosed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shardkv",
			Subsystem: "connections",
			Name:      "closed_total",
			Help:      "Total number of connections closed, labeled by reason.",
		}, []string{"reason"}),

		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shardkv",
			Subsystem: "commands",
			Name:      "total",
			Help:      "Total number of commands executed, labeled by command and result.",
		}, []string{"command", "result"}),
		CommandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "shardkv",
			Subsystem: "commands",
			Name:      "duration_seconds",
			Help:      "Command execution latency in seconds, labeled by command.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"command"}),

		ShardKeyCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "shardkv",
			Subsystem: "store",
			Name:      "shard_key_count",
			Help:      "Number of keys currently held in each shard.",
		}, []string{"shard"}),
		PoolQueueDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "shardkv",
			Subsystem: "workerpool",
			Name:      "queue_depth",
			Help:      "Number of jobs currently queued in a worker pool.",
		}, []string{"pool"}),
		PoolLiveWorkers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "shardkv",
			Subsystem: "workerpool",
			Name:      "live_workers",
			Help:      "Number of live worker goroutines in a worker pool.",
		}, []string{"pool"}),
	}

	reg.MustRegister(
		r.ConnectionsAccepted,
		r.ConnectionsActive,
		r.ConnectionsClosed,
		r.CommandsTotal,
		r.CommandDuration,
		r.ShardKeyCount,
		r.PoolQueueDepth,
		r.PoolLiveWorkers,
	)

	return r
}

// Handler returns an HTTP handler serving this registry's metrics in
// Prometheus exposition format, suitable for mounting at /metrics.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
