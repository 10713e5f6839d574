package sentry

import (
	"os"
	"time"

	"github.com/put0/imgshrink/util"

	"github.com/getsentry/sentry-go"
)

// Init configures the Sentry client when SENTRY_DSN is set
// and reports whether failures will be sent there.
func Init() bool {
	dsn := os.Getenv("SENTRY_DSN")
	if dsn == "" {
		return false
	}
	util.Check(sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		AttachStacktrace: true,
	}))
	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("tool", "imgshrink")
	})
	return true
}

// SetRoot tags every following event with the directory being shrunk.
func SetRoot(root string) {
	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("root", root)
	})
}

// PanicHandler records a panic in Sentry before re-raising it.
func PanicHandler() {
	err := recover()

	if err != nil {
		sentry.CurrentHub().Recover(err)
		sentry.Flush(time.Second * 5)
		panic(err)
	}
}
