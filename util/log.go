package util

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryFlushTime is how long we wait for Sentry to deliver a warning.
const SentryFlushTime = time.Second * 2

// LogFunc represents a function that takes a context,
// format string and number of interface{} and logs accordingly.
type LogFunc func(context.Context, string, ...interface{})

// GetStandardLogger returns a logger that is used for debugging.
// It logs to STDERR, has no prefix, and logs the date and time in UTC.
func GetStandardLogger() *log.Logger {
	return log.New(os.Stderr, "", log.LstdFlags|log.LUTC)
}

// GetConsoleLogger returns the logger for progress and summary lines.
// It logs to STDOUT, has no prefix, and does not log any metadata.
func GetConsoleLogger() *log.Logger {
	return GetWriterLogger(os.Stdout)
}

// GetWriterLogger returns a metadata-free logger writing to w.
func GetWriterLogger(w io.Writer) *log.Logger {
	return log.New(w, "", 0)
}

// GetStandardEntries gets a slice of []ContextEntry for a console logger.
// Warnings go to Sentry when it is configured, otherwise they are
// debug lines.
func GetStandardEntries(logger *log.Logger) []ContextEntry {
	entries := []ContextEntry{
		{
			Key:   Logger,
			Value: logger,
		},
		{
			Key:   DebugLogger,
			Value: GetStandardLogger(),
		},
	}
	if HasSentry() {
		entries = append(entries, ContextEntry{
			Key:   Warn,
			Value: LogFunc(SentryWarnf),
		})
	}
	return entries
}

// SentryWarnf implements LogFunc, notifying sentry of an error.
func SentryWarnf(ctx context.Context, format string, v ...interface{}) {
	sentry.CurrentHub().RecoverWithContext(ctx, fmt.Errorf(format, v...))
	sentry.CurrentHub().Flush(SentryFlushTime)
}

func printf(logger *log.Logger, ctx context.Context, format string, v ...interface{}) {
	if prefix, ok := ctx.Value(LoggerPrefix).(string); ok && prefix != "" {
		logger.Printf(prefix+": "+format, v...)
	} else {
		logger.Printf(format, v...)
	}
}

// Printf is a LogFunc that uses the context's logger to log a formatted string.
func Printf(ctx context.Context, format string, v ...interface{}) {
	if logger, ok := ctx.Value(Logger).(*log.Logger); ok && logger != nil {
		printf(logger, ctx, format, v...)
	} else {
		panic("logger does not exist")
	}
}

// StandardDebugf is a LogFunc that logs to the debug logger if the program
// is in DEBUG mode.
func StandardDebugf(ctx context.Context, format string, v ...interface{}) {
	if !IsDebug() {
		return
	}
	logger, ok := ctx.Value(DebugLogger).(*log.Logger)
	if !ok || logger == nil {
		logger = GetStandardLogger()
	}
	printf(logger, ctx, format, v...)
}

// Generic function used to call a LogFunc stored in the context using a ContextKey key,
// calling a default LogFunc if the key is not set.
func logf(ctx context.Context, key ContextKey, defaultLogf LogFunc, format string, v ...interface{}) {
	if f, ok := ctx.Value(key).(LogFunc); ok && f != nil {
		f(ctx, format, v...)
	} else {
		defaultLogf(ctx, format, v...)
	}
}

// Debugf is a LogFunc that attempts to call the Debug LogFunc in the context, defaulting
// to StandardDebugf if unset.
func Debugf(ctx context.Context, format string, v ...interface{}) {
	logf(ctx, Debug, StandardDebugf, format, v...)
}

// Warnf is a LogFunc that attempts to call the Warn LogFunc in the context, defaulting
// to StandardDebugf if unset.
func Warnf(ctx context.Context, format string, v ...interface{}) {
	logf(ctx, Warn, StandardDebugf, format, v...)
}

// Errf is a LogFunc that attempts to call the Err LogFunc in the context, defaulting
// to Printf if unset.
func Errf(ctx context.Context, format string, v ...interface{}) {
	logf(ctx, Err, Printf, format, v...)
}
