package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/cloud-cli/gw"
)

// Status maps the failure kinds of a dispatch to their HTTP status code.
// Any error not matching a known kind is a 500.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, gw.ErrInternal):
		return http.StatusInternalServerError
	case errors.Is(err, gw.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, gw.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	case errors.Is(err, gw.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, gw.ErrAuthTimeout):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

// An internalError is a failure raised by a hook, a preprocessor or a Handler.
// An internalError is always gw.ErrInternal, whatever it wraps.
type internalError struct {
	err   error
	stack []byte
}

// internal wraps err into an internalError carrying the stack it was raised on.
func internal(err error) error {
	return &internalError{err: err, stack: debug.Stack()}
}

// recovered converts the value of a recovered panic into an internalError
// carrying the stack of the panicking goroutine.
func recovered(p any) error {
	err, ok := p.(error)
	if !ok {
		err = fmt.Errorf("%v", p)
	}

	return &internalError{err: fmt.Errorf("panic: %w", err), stack: debug.Stack()}
}

func (e *internalError) Error() string { return e.err.Error() }

func (e *internalError) Is(target error) bool { return target == gw.ErrInternal }

func (e *internalError) Unwrap() error { return e.err }

// A statusWriter records whether a response head has been written.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	if sw.status == 0 {
		sw.status = code
	}

	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if sw.status == 0 {
		sw.status = http.StatusOK
	}

	return sw.ResponseWriter.Write(b)
}

// Flush implements [net/http.Flusher] when the wrapped writer does.
func (sw *statusWriter) Flush() {
	if f, ok := sw.ResponseWriter.(http.Flusher); ok {
		if sw.status == 0 {
			sw.status = http.StatusOK
		}

		f.Flush()
	}
}

func (sw *statusWriter) Unwrap() http.ResponseWriter { return sw.ResponseWriter }

func (sw *statusWriter) wroteHeader() bool { return sw.status != 0 }
