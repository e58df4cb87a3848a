// Package metric provides Prometheus metrics for shardkv.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: Prometheus registry, collectors, and HTTP handler
//
// Metrics include:
//
//   - Connection lifecycle counters and gauges
//   - Command counters by verb and result
//   - Command latency histograms
//   - Per-shard key count gauges
//   - Worker pool queue depth gauges
//
// Metrics are exposed at /metrics in Prometheus format by the admin server.
package metric
