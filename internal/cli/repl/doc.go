// Package repl provides the interactive REPL mode for shardkv-cli.
package repl
