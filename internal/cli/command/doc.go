// Package command provides CLI command definitions for shardkv-cli.
//
// It uses urfave/cli/v2 for command parsing and supports both
// single-command mode (shardkv-cli get KEY) and an interactive REPL
// mode (shardkv-cli repl).
package command
