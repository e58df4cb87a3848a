// Package logger provides structured logging for shardkv.
package logger

import (
	"log/slog"
	"strconv"
	"strings"
)

// valuePreviewLen bounds how many bytes of a RESP bulk string value are
// logged. SET/GET payloads are user data and may be large or binary;
// only a short preview is ever written to logs.
const valuePreviewLen = 32

// previewKeys are attribute keys whose string value is user data and
// should be truncated rather than logged in full.
var previewKeys = []string{
	"value",
	"bulk",
	"payload",
}

// sensitiveKeyPatterns are key substrings; an attribute whose key contains
// one has its non-empty string value fully redacted.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"credential",
	"auth",
	"bearer",
}

// redactedValue is the placeholder for fully redacted sensitive data.
const redactedValue = "***REDACTED***"

// redactSensitive truncates large/binary value previews and redacts
// attributes whose key name suggests sensitive content.
func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		keyLower := strings.ToLower(a.Key)

		for _, pattern := range sensitiveKeyPatterns {
			if strings.Contains(keyLower, pattern) && a.Value.String() != "" {
				return slog.String(a.Key, redactedValue)
			}
		}

		for _, pk := range previewKeys {
			if keyLower == pk {
				return slog.String(a.Key, PreviewString(a.Value.String()))
			}
		}
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}

	return a
}

// PreviewString truncates a value to valuePreviewLen bytes for safe
// logging, appending an ellipsis marker and the original length when
// truncation occurs.
func PreviewString(value string) string {
	if len(value) <= valuePreviewLen {
		return value
	}
	return value[:valuePreviewLen] + "...(" + strconv.Itoa(len(value)) + " bytes)"
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}
