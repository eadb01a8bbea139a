package middleware

import (
	"context"
	"net/http"

	"github.com/cloud-cli/gw"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request's ID back to the client.
const RequestIDHeader = "X-Request-Id"

// RequestID adds a uuid to the request context under gw.RequestIDKey
// and echoes it in the response's RequestIDHeader.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.NewString()
			w.Header().Set(RequestIDHeader, id)

			ctx := context.WithValue(r.Context(), gw.RequestIDKey, id)
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
