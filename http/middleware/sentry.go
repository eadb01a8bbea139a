package middleware

import (
	"net/http"

	"github.com/cloud-cli/gw"
	sentryhttp "github.com/getsentry/sentry-go/http"
)

// ReportPanic encloses the env and returns a function that when called,
// wraps the passed in http.Handler in sentryhttp.Handle
// in order to recover and report panics.
//
// In development, ReportPanic leaves handlers untouched.
func ReportPanic(env gw.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         false,
		WaitForDelivery: true,
	})

	return func(handler http.Handler) http.Handler {
		return sh.Handle(handler)
	}
}
