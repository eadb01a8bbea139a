package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"hash"
	"io"
	"net/http"

	"github.com/cloud-cli/gw"
)

const (
	IdempotencyHeader = "Idempotency-Key"

	// ReplayedHeader marks a response written from an IdempotencyCacher
	// rather than by the gateway.
	ReplayedHeader = "Idempotent-Replayed"

	maxIdempotencyKeyLen = 255
)

// replayedMethods are the verbs a gateway Resource handles
// that are not idempotent by definition.
var replayedMethods = map[string]bool{
	http.MethodPost:  true,
	http.MethodPatch: true,
}

// DefaultIdempotentBodyLimit is the largest request body Idempotent hashes
// when given no limit.
const DefaultIdempotentBodyLimit int64 = 1 << 20

// Idempotent returns an Adapter replaying responses to POST and PATCH requests
// carrying an idempotency key. Other verbs, and requests without a key, pass through.
//
// The first request to claim a key reaches the gateway;
// its response (status, headers and body) is stored as a Replay under that key.
// Any keyed request is answered with 400 when its key is longer than 255 bytes,
// and with 413 when its body is longer than limit bytes.
// A later request with the same key is answered as follows:
//   - 409, while the first request is still in flight
//   - 422, when its method, URI or hashed body differ from the first request's
//   - otherwise, the stored Replay, marked with the ReplayedHeader
//
// Keyed requests whose key cannot be claimed, e.g., with Redis down,
// reach the gateway without being recorded.
//
// cache and newHash can be nil, defaulting to a ReplayMap and sha256.
// A limit of 0 or less defaults to DefaultIdempotentBodyLimit.
//
// Idempotent follows the draft Idempotency-Key HTTP Header Field:
// https://tools.ietf.org/id/draft-idempotency-header-01.html
func Idempotent(cache IdempotencyCacher, newHash func() hash.Hash, limit int64) Adapter {
	if cache == nil {
		cache = NewReplayMap()
	}

	if newHash == nil {
		newHash = sha256.New
	}

	if limit <= 0 {
		limit = DefaultIdempotentBodyLimit
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyHeader)
			if !replayedMethods[r.Method] || key == "" {
				handler.ServeHTTP(w, r)
				return
			}

			if len(key) > maxIdempotencyKeyLen {
				w.WriteHeader(http.StatusBadRequest)
				return
			}

			digest, err := digestBody(r, newHash(), limit)
			if errors.Is(err, gw.ErrBodyTooLarge) {
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				return
			}

			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			rec := &replayRecorder{
				ResponseWriter: w,
				cache:          cache,
				ctx:            r.Context(),
				key:            key,
				rep:            Replay{Digest: digest, Method: r.Method, Target: r.URL.RequestURI()},
			}

			claimed, err := cache.Claim(r.Context(), key, rec.rep)
			if err != nil {
				handler.ServeHTTP(w, r)
				return
			}

			if !claimed {
				rep, ok := cache.Get(r.Context(), key)
				switch {
				case !ok || rep.Status == 0:
					w.WriteHeader(http.StatusConflict)
				case !rep.matches(r, digest):
					w.WriteHeader(http.StatusUnprocessableEntity)
				default:
					rep.write(w)
				}

				return
			}

			handler.ServeHTTP(rec, r)

			// net/http answers 200 for a handler writing nothing.
			if rec.rep.Status == 0 {
				rec.rep.Status = http.StatusOK
				rec.save()
			}
		})
	}
}

// digestBody hashes the request body, leaving an unread copy in its place.
// Bodies longer than limit bytes fail with gw.ErrBodyTooLarge.
func digestBody(r *http.Request, h hash.Hash, limit int64) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return h.Sum(nil), nil
	}

	if r.ContentLength > limit {
		return nil, gw.ErrBodyTooLarge
	}

	buf := new(bytes.Buffer)
	_, err := io.Copy(h, io.TeeReader(io.LimitReader(r.Body, limit+1), buf))
	r.Body.Close()
	if err != nil {
		return nil, err
	}

	if int64(buf.Len()) > limit {
		return nil, gw.ErrBodyTooLarge
	}

	r.Body = io.NopCloser(buf)
	return h.Sum(nil), nil
}

// A Replay is the response to a request carrying an idempotency key,
// paired with what identifies that request.
//
// A zero Status marks a request still in flight.
type Replay struct {
	Body   []byte
	Digest []byte
	Header http.Header
	Method string
	Status int
	Target string
}

func (rep Replay) matches(r *http.Request, digest []byte) bool {
	return rep.Method == r.Method &&
		rep.Target == r.URL.RequestURI() &&
		bytes.Equal(rep.Digest, digest)
}

func (rep Replay) write(w http.ResponseWriter) {
	for k, vs := range rep.Header {
		w.Header()[k] = append([]string(nil), vs...)
	}

	w.Header().Set(ReplayedHeader, "true")
	w.WriteHeader(rep.Status)
	w.Write(rep.Body)
}

// A replayRecorder copies what a handler writes into a Replay,
// saving it to the cache as it goes.
type replayRecorder struct {
	http.ResponseWriter

	cache IdempotencyCacher
	ctx   context.Context
	key   string
	rep   Replay
}

func (rr *replayRecorder) WriteHeader(status int) {
	if rr.rep.Status == 0 {
		rr.rep.Status = status
		rr.rep.Header = rr.Header().Clone()
		rr.rep.Header.Del(RequestIDHeader)
		rr.save()
	}

	rr.ResponseWriter.WriteHeader(status)
}

func (rr *replayRecorder) Write(b []byte) (int, error) {
	if rr.rep.Status == 0 {
		rr.WriteHeader(http.StatusOK)
	}

	n, err := rr.ResponseWriter.Write(b)
	rr.rep.Body = append(rr.rep.Body, b[:n]...)
	rr.save()

	return n, err
}

func (rr *replayRecorder) Unwrap() http.ResponseWriter { return rr.ResponseWriter }

// save stores the Replay unless the request has been abandoned.
func (rr *replayRecorder) save() {
	if rr.ctx.Err() != nil {
		return
	}

	rr.cache.Set(rr.ctx, rr.key, rr.rep)
}
