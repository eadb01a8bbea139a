package middleware

import (
	"net/http"
	"net/url"

	"github.com/cloud-cli/gw"
)

// ForceHTTPS redirects plain HTTP requests to HTTPS, unless env is development.
//
// A gateway usually listens on a loopback address behind a TLS-terminating proxy,
// so the "X-Forwarded-Proto" header decides which scheme the client requested.
func ForceHTTPS(env gw.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
				handler.ServeHTTP(w, r)
				return
			}

			u := new(url.URL)
			*u = *r.URL
			u.Scheme = "https"
			u.Host = r.Host

			http.Redirect(w, r, u.String(), http.StatusPermanentRedirect)
		})
	}
}
