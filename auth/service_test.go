package auth_test

import (
	"testing"

	"github.com/cloud-cli/gw/auth"
	"github.com/stretchr/testify/require"
)

func TestNewService(t *testing.T) {
	tcs := []struct {
		name   string
		key    string
		client string
		secret string
		err    error
	}{
		{"No-Key", "", "client", "secret", auth.ErrNotValid},
		{"No-Secret", "key", "client", "", auth.ErrNotValid},
		{"No-Client", "key", "", "secret", auth.ErrNotValid},
		{"JWT-Only", "key", "", "", nil},
		{"Google", "key", "client", "secret", nil},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			s, err := auth.NewService(tc.key, tc.client, tc.secret)

			// Assert
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, tc.err == nil, s != nil)
		})
	}
}
