package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloud-cli/gw"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	tcs := []struct {
		name     string
		err      error
		expected int
	}{
		{"Nil", nil, http.StatusOK},
		{"Not-Found", gw.ErrNotFound, http.StatusNotFound},
		{"Method-Not-Allowed", gw.ErrMethodNotAllowed, http.StatusMethodNotAllowed},
		{"Unauthorized", gw.ErrUnauthorized, http.StatusUnauthorized},
		{"Auth-Timeout", gw.ErrAuthTimeout, http.StatusRequestTimeout},
		{"Wrapped", fmt.Errorf("%w: users", gw.ErrNotFound), http.StatusNotFound},
		{"Internal", internal(errors.New("oops")), http.StatusInternalServerError},
		{"Internal-Wrapping-Known", internal(gw.ErrUnauthorized), http.StatusInternalServerError},
		{"Recovered", recovered("oops"), http.StatusInternalServerError},
		{"Unknown", errors.New("oops"), http.StatusInternalServerError},
		{"Context", context.Canceled, http.StatusInternalServerError},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual := Status(tc.err)

			// Assert
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestInternal(t *testing.T) {
	// Arrange
	cause := errors.New("oops")

	// Act
	err := internal(cause)

	// Assert
	require.ErrorIs(t, err, gw.ErrInternal)
	require.ErrorIs(t, err, cause)
	require.Equal(t, "oops", err.Error())

	var ie *internalError
	require.True(t, errors.As(err, &ie))
	require.Contains(t, string(ie.stack), "TestInternal")
}

func TestRecovered(t *testing.T) {
	// Arrange
	cause := errors.New("oops")

	// Act
	err := recovered(cause)

	// Assert
	require.ErrorIs(t, err, gw.ErrInternal)
	require.ErrorIs(t, err, cause)
	require.Equal(t, "panic: oops", err.Error())

	var ie *internalError
	require.True(t, errors.As(err, &ie))
	require.NotEmpty(t, ie.stack)

	// Act
	err = recovered(42)

	// Assert
	require.Equal(t, "panic: 42", err.Error())
}

func TestStatusWriter(t *testing.T) {
	// Arrange
	rec := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rec}

	// Assert
	require.False(t, sw.wroteHeader())

	// Act
	sw.WriteHeader(http.StatusCreated)
	sw.WriteHeader(http.StatusTeapot)

	// Assert
	require.True(t, sw.wroteHeader())
	require.Equal(t, http.StatusCreated, sw.status)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Same(t, rec, sw.Unwrap())

	// Arrange
	rec = httptest.NewRecorder()
	sw = &statusWriter{ResponseWriter: rec}

	// Act
	_, err := sw.Write([]byte("ok"))

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusOK, sw.status)

	// Arrange
	rec = httptest.NewRecorder()
	sw = &statusWriter{ResponseWriter: rec}

	// Act
	sw.Flush()

	// Assert
	require.True(t, rec.Flushed)
	require.True(t, sw.wroteHeader())
}

func TestParseRoute(t *testing.T) {
	tcs := []struct {
		name     string
		method   string
		target   string
		expected route
	}{
		{"Root", http.MethodGet, "/", route{resource: "", method: "get", subpath: "/"}},
		{"Resource", http.MethodPost, "/Users", route{resource: "users", method: "post", subpath: "/"}},
		{"Subpath", http.MethodPut, "/users/1/Posts", route{resource: "users", method: "put", subpath: "/1/Posts"}},
		{
			"Escaped",
			http.MethodGet,
			"/files/a%2Fb",
			route{resource: "files", method: "get", subpath: "/a/b", rawSubpath: "/a%2Fb"},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := httptest.NewRequest(tc.method, tc.target, nil)

			// Act
			actual := parseRoute(r)

			// Assert
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestRewrite(t *testing.T) {
	// Arrange
	r := httptest.NewRequest(http.MethodGet, "/files/a%2Fb?q=1", nil)

	// Act
	actual := rewrite(r, parseRoute(r))

	// Assert
	require.Equal(t, "/a/b", actual.URL.Path)
	require.Equal(t, "/a%2Fb?q=1", actual.RequestURI)
	require.Equal(t, "/files/a/b", r.URL.Path)
	require.Equal(t, "/files/a%2Fb?q=1", r.RequestURI)
}
