// Package adminserver provides the HTTP administrative interface for a
// running shardkv server.
//
// It uses the standard library net/http, exposing three read-only
// endpoints: /healthz for liveness checks, /metrics for Prometheus
// scraping, and /stats for a JSON snapshot of shard occupancy and
// worker-pool load.
package adminserver
