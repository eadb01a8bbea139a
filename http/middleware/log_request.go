package middleware

import (
	"net/http"
	"strings"

	"github.com/cloud-cli/gw"
	"github.com/cloud-cli/gw/logger"
)

// MaskedParams are query params whose values LogRequest never logs.
// jwt carries the token read by auth.JWT.
var MaskedParams = []string{"jwt", "password", "token"}

// LogRequest logs, at the debug level, the request's method, requested URL,
// originating IP address and request ID
// using the enclosed implementation of logger.Logger.
//
// LogRequest scrubs the values of the query params in MaskedParams.
//
// if logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uri := r.URL.Path
			q := r.URL.Query()
			for _, key := range MaskedParams {
				gw.Mask(q, key)
			}

			if query := q.Encode(); query != "" {
				uri += "?" + query
			}

			strs := []string{r.Method, uri}
			if ip, ok := r.Context().Value(gw.IpAddrKey).(string); ok {
				strs = append([]string{ip}, strs...)
			}

			if id, ok := r.Context().Value(gw.RequestIDKey).(string); ok {
				strs = append(strs, id)
			}

			ls.Debug(strings.Join(strs, " "), nil)
			h.ServeHTTP(w, r)
		})
	}
}
