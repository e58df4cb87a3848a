// Package main provides the entry point for shardkv-cli.
//
// shardkv-cli is the command-line client for shardkv-server,
// supporting both single-command mode (get/set/del) and an
// interactive REPL mode.
package main
