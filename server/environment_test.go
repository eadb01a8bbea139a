package server

import (
	"testing"

	"github.com/cloud-cli/gw/logger"
	"github.com/stretchr/testify/require"
)

func TestEnvVarOrLogLevel(t *testing.T) {
	tcs := []struct {
		name     string
		val      string
		expected logger.LogLevel
	}{
		{"Unset", "", logger.LogLevelInfo},
		{"Unknown", "LOUD", logger.LogLevelInfo},
		{"Debug", "DEBUG", logger.LogLevelDebug},
		{"Error", "ERROR", logger.LogLevelError},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			t.Setenv(logLevelEnvVar, tc.val)

			// Act
			actual := envVarOrLogLevel(logLevelEnvVar, logger.LogLevelInfo)

			// Assert
			require.Equal(t, tc.expected, actual)
		})
	}
}
