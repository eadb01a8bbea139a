package metric_test

import (
	"testing"
	"time"

	"github.com/cloud-cli/gw/metric"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	// Arrange
	reg := prometheus.NewRegistry()

	// Act
	m, err := metric.NewMetrics(reg)

	// Assert
	require.Nil(t, err)
	require.NotNil(t, m)

	// Act
	m, err = metric.NewMetrics(reg)

	// Assert
	require.NotNil(t, err)
	require.Nil(t, m)
}

func TestMetricsRecord(t *testing.T) {
	// Arrange
	m, err := metric.NewMetrics(prometheus.NewRegistry())
	require.Nil(t, err)

	// Act
	m.RecordDispatch("users", "get", 200, time.Millisecond)
	m.RecordDispatch("users", "get", 200, time.Millisecond)
	m.RecordDispatch("users", "patch", 405, time.Millisecond)
	m.RecordAuth("users", "authorized", time.Millisecond)

	// Assert
	require.Equal(t, float64(2), testutil.ToFloat64(m.DispatchesTotal.WithLabelValues("users", "get", "200")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.DispatchesTotal.WithLabelValues("users", "patch", "405")))
	require.Equal(t, 1, testutil.CollectAndCount(m.AuthDuration))
	require.Equal(t, 1, testutil.CollectAndCount(m.DispatchDuration))
}

func TestMetricsNil(t *testing.T) {
	// Arrange
	var m *metric.Metrics

	// Act + Assert
	require.NotPanics(t, func() {
		m.RecordDispatch("users", "get", 200, time.Millisecond)
		m.RecordAuth("users", "denied", time.Millisecond)
	})
}
