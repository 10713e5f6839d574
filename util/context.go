package util

import (
	"context"
)

// ContextKey is the key type used for context.WithValue().
type ContextKey int

// ContextEntry represents a key-value entry for a context.
type ContextEntry struct {
	Key   ContextKey
	Value interface{}
}

const (
	// LoggerPrefix is the key to the string that is outputted first when logging.
	// If the *log.Logger itself has a prefix set as well, the *log.Logger's
	// prefix will be outputted before the LoggerPrefix.
	LoggerPrefix ContextKey = iota

	// Logger is the key for the *log.Logger used for user-visible lines.
	Logger

	// DebugLogger is the key for the *log.Logger used by StandardDebugf.
	DebugLogger

	// Debug is the LogFunc that is called when outputting a debug statement.
	Debug

	// Warn is the LogFunc that is called when outputting a warning.
	Warn

	// Err is the LogFunc that is called when outputting an error.
	Err
)

// ContextWithEntries creates a context with a variadic number of key-value
// entries, rooted at parent. A new context is created for each entry; there
// are only a handful of keys so the chain stays short.
func ContextWithEntries(parent context.Context, entries ...ContextEntry) context.Context {
	for _, entry := range entries {
		parent = context.WithValue(parent, entry.Key, entry.Value)
	}
	return parent
}

// ContextWithPrefix returns a copy of ctx whose log lines are prefixed.
func ContextWithPrefix(ctx context.Context, prefix string) context.Context {
	return context.WithValue(ctx, LoggerPrefix, prefix)
}
