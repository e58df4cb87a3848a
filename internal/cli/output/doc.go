// Package output renders decoded RESP reply values for shardkv-cli,
// following the same textual conventions redis-cli uses for the reply
// types shardkv-server returns.
package output
