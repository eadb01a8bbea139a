package logger_test

import (
	"bytes"
	"errors"
	"io"
	"log"
	"regexp"
	"testing"

	"github.com/cloud-cli/gw/logger"
	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

var (
	logLevelRegexp = regexp.MustCompile(`^\[[A-Z]+\]`)
	fpRegexp       = regexp.MustCompile(`logger_test\.go:\d+`)
	msgRegexp      = regexp.MustCompile(`'(.*)'`)
)

func init() {
	color.NoColor = true
}

func newTestLogger(w io.Writer) *log.Logger {
	return log.New(w, "", 0)
}

func TestNewLogLevel(t *testing.T) {
	for _, tc := range []struct {
		val      string
		expected logger.LogLevel
	}{
		{"DEBUG", logger.LogLevelDebug},
		{"INFO", logger.LogLevelInfo},
		{"WARN", logger.LogLevelWarn},
		{"ERROR", logger.LogLevelError},
		{"FATAL", logger.LogLevelFatal},
		{"debug", logger.LogLevelDebug},
		{" warning ", logger.LogLevelWarn},
		{"TRACE", logger.LogLevelUnk},
		{"", logger.LogLevelUnk},
	} {
		t.Run(tc.val, func(t *testing.T) {
			require.Equal(t, tc.expected, logger.NewLogLevel(tc.val))
		})
	}
}

func TestGatewayLogger(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	l := logger.New(logger.WithLogger(newTestLogger(b)), logger.WithLevel(logger.LogLevelWarn))

	// Act
	l.Debug("debug", nil)
	l.Info("info", nil)

	// Assert
	require.Zero(t, b.Len())
	require.Equal(t, logger.LogLevelWarn, l.LogLevel())

	// Act
	l.Warn("careful", nil)

	// Assert
	actual := b.String()
	require.Equal(t, "[WARN]", logLevelRegexp.FindString(actual))
	require.True(t, fpRegexp.MatchString(actual))
	require.Equal(t, "careful", msgRegexp.FindStringSubmatch(actual)[1])
	require.NotContains(t, actual, "log_context")

	// Arrange
	b.Reset()

	// Act
	l.Error("oops", &logger.LogContext{Type: "error", Error: errors.New("oops!")})

	// Assert
	actual = b.String()
	require.Equal(t, "[ERROR]", logLevelRegexp.FindString(actual))
	require.Contains(t, actual, `log_context: {"error":"oops!","type":"error"}`)
}

func TestLogLevelString(t *testing.T) {
	require.Equal(t, "[DEBUG]", logger.LogLevelDebug.String())
	require.Equal(t, "[FATAL]", logger.LogLevelFatal.String())
	require.Equal(t, "[UNK]", logger.LogLevel(42).String())
}

func TestGatewayLoggerAddSkip(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	l := logger.New(logger.WithLogger(newTestLogger(b))).(logger.SkipLogger)

	// Act
	skipped := l.AddSkip(3)

	// Assert
	require.Equal(t, 0, l.Skip())
	require.Equal(t, 3, skipped.Skip())
	require.Equal(t, l.LogLevel(), skipped.LogLevel())
}
