package util

import (
	"fmt"
	"os"
)

// GetEnv gets an environment variable, panicking if it is nonexistent.
func GetEnv(name string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	panic(fmt.Sprintf("Env %s is missing\n", name))
}

// EnvExists determines if an environment variable exists.
func EnvExists(name string) bool {
	_, ok := os.LookupEnv(name)
	return ok
}

// IsDebug returns true if debug mode is enabled based
// on an environment variable.
func IsDebug() bool {
	return EnvExists("DEBUG")
}

// HasSentry returns true if errors should be reported to Sentry.
func HasSentry() bool {
	return os.Getenv("SENTRY_DSN") != ""
}

// HasMetrics returns true if run counters should be pushed
// to a metrics endpoint.
func HasMetrics() bool {
	return os.Getenv("METRICS_ENDPOINT") != ""
}
