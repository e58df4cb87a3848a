// Package logger provides structured logging for shardkv.
//
// This package wraps log/slog for structured logging:
//
//   - logger.go: Logger interface and slog-backed implementation
//   - context.go: Context-aware logging with request/trace IDs
//   - redact.go: Value preview truncation and sensitive key redaction
//
// Features:
//
//   - JSON and text output formats
//   - Log level filtering, adjustable at runtime
//   - Automatic truncation of large command value previews
//   - Context propagation for request tracing
package logger
