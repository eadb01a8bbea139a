package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloud-cli/gw/auth"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	tcs := []struct {
		name     string
		header   string
		expected string
		err      error
	}{
		{"None", "", "", auth.ErrNoToken},
		{"Basic", "Basic dXNlcjpwYXNz", "", auth.ErrNoToken},
		{"Empty-Bearer", "Bearer ", "", auth.ErrNoToken},
		{"Bearer", "Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"Lowercase", "bearer abc", "abc", nil},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}

			// Act
			actual, err := auth.BearerToken(r)

			// Assert
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, tc.expected, actual)
		})
	}
}
