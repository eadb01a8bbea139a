package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cloud-cli/gw"
)

type authResult struct {
	ok  bool
	err error
}

// authorize races auth against the gateway's authorization deadline.
//
// auth runs in its own goroutine with a request whose context carries the deadline.
// That context is cancelled once authorize returns, so a hook still running is told to give up.
// auth writes through an authWriter, cut off from w once authorize returns.
func (g *Gateway) authorize(w http.ResponseWriter, r *http.Request, rt route, auth gw.AuthFunc) (err error) {
	if auth == nil {
		return nil
	}

	defer func(start time.Time) {
		g.metrics.RecordAuth(rt.resource, authLabel(err), time.Since(start))
	}(time.Now())

	ctx, cancel := context.WithTimeout(r.Context(), g.authTimeout)
	defer cancel()

	aw := newAuthWriter(w)

	// buffered so a hook settling after the deadline never blocks
	results := make(chan authResult, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				results <- authResult{err: recovered(p)}
			}
		}()

		ok, err := auth(aw, r.WithContext(ctx))
		results <- authResult{ok: ok, err: err}
	}()

	select {
	case res := <-results:
		aw.settle(true)
		if res.err != nil && errors.Is(res.err, context.DeadlineExceeded) && ctx.Err() != nil {
			return g.authDeadline(r)
		}

		return authOutcome(res)
	case <-ctx.Done():
		aw.settle(false)
		return g.authDeadline(r)
	}
}

// An authWriter is the http.ResponseWriter an AuthFunc sees.
//
// The AuthFunc gets a header map of its own, copied into the gateway's response
// when it writes a head or when it decides in time.
// Once the gateway stops waiting, nothing the AuthFunc does reaches the response,
// and Write reports http.ErrHandlerTimeout.
type authWriter struct {
	mu      sync.Mutex
	header  http.Header
	settled bool
	w       http.ResponseWriter
}

func newAuthWriter(w http.ResponseWriter) *authWriter {
	return &authWriter{header: w.Header().Clone(), w: w}
}

// Header returns the AuthFunc's own header map.
// An AuthFunc must not use it from other goroutines.
func (aw *authWriter) Header() http.Header { return aw.header }

func (aw *authWriter) WriteHeader(code int) {
	aw.mu.Lock()
	defer aw.mu.Unlock()

	if aw.settled {
		return
	}

	aw.copyHeader()
	aw.w.WriteHeader(code)
}

func (aw *authWriter) Write(b []byte) (int, error) {
	aw.mu.Lock()
	defer aw.mu.Unlock()

	if aw.settled {
		return 0, http.ErrHandlerTimeout
	}

	aw.copyHeader()
	return aw.w.Write(b)
}

// settle stops forwarding to the gateway's response.
// decided reports whether the AuthFunc returned, so its header map is no longer in use.
func (aw *authWriter) settle(decided bool) {
	aw.mu.Lock()
	defer aw.mu.Unlock()

	if decided && !aw.settled {
		aw.copyHeader()
	}

	aw.settled = true
}

func (aw *authWriter) copyHeader() {
	dst := aw.w.Header()
	for k := range dst {
		if _, ok := aw.header[k]; !ok {
			dst.Del(k)
		}
	}

	for k, vs := range aw.header {
		dst[k] = append([]string(nil), vs...)
	}
}

func (g *Gateway) authDeadline(r *http.Request) error {
	if err := r.Context().Err(); err != nil {
		return internal(fmt.Errorf("request ended awaiting authorization: %w", err))
	}

	return fmt.Errorf("%w: no decision after %s", gw.ErrAuthTimeout, g.authTimeout)
}

func authOutcome(res authResult) error {
	var ie *internalError
	switch {
	case errors.As(res.err, &ie):
		return ie
	case res.err != nil:
		return fmt.Errorf("%w: %s", gw.ErrUnauthorized, res.err)
	case !res.ok:
		return fmt.Errorf("%w: request denied", gw.ErrUnauthorized)
	default:
		return nil
	}
}

// authLabel names the outcome of an authorization decision for metrics.
func authLabel(err error) string {
	switch {
	case err == nil:
		return "authorized"
	case errors.Is(err, gw.ErrUnauthorized):
		return "denied"
	case errors.Is(err, gw.ErrAuthTimeout):
		return "timeout"
	default:
		return "error"
	}
}
