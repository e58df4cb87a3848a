// Package main provides the entry point for shardkv-server.
//
// The server is the core shardkv service. It provides:
//
//   - A RESP-subset TCP listener (GET/SET/DEL) driven by the
//     read/parse-execute/write worker pipeline in internal/orchestrator
//   - An HTTP administrative interface (/healthz, /metrics, /stats)
//
// Usage:
//
//	shardkv-server [flags]
//	shardkv-server --config /path/to/config.yaml
//
// The server loads configuration, initializes the partitioned store
// and worker pools, and starts both listeners.
package main
