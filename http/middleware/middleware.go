package middleware

import (
	"net/http"

	"github.com/justinas/alice"
)

// An Adapter allows chaining middlewares together.
type Adapter func(http.Handler) http.Handler

// NoopAdapter passes the request on to the handler untouched.
func NoopAdapter(h http.Handler) http.Handler { return h }

// Chain glues the set of adapters to the handler.
// The first adapter sees the request first.
func Chain(handler http.Handler, adapters ...Adapter) http.Handler {
	cs := make([]alice.Constructor, len(adapters))
	for i, a := range adapters {
		cs[i] = alice.Constructor(a)
	}

	return alice.New(cs...).Then(handler)
}
