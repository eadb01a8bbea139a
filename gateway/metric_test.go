package gateway_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloud-cli/gw"
	"github.com/cloud-cli/gw/gateway"
	"github.com/cloud-cli/gw/metric"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestGatewayWithMetrics(t *testing.T) {
	// Arrange
	m, err := metric.NewMetrics(prometheus.NewRegistry())
	require.Nil(t, err)

	g := newGateway(gateway.WithMetrics(m)).
		Add("users", gw.Resource{Get: okHandler}).
		Add("admin", gw.Resource{
			Get:  okHandler,
			Auth: func(http.ResponseWriter, *http.Request) (bool, error) { return false, nil },
		})

	// Act
	serve(g, httptest.NewRequest(http.MethodGet, "/users", nil))
	serve(g, httptest.NewRequest(http.MethodGet, "/users/1", nil))
	serve(g, httptest.NewRequest(http.MethodPatch, "/users", nil))
	serve(g, httptest.NewRequest("PURGE", "/users", nil))
	serve(g, httptest.NewRequest(http.MethodGet, "/random-name", nil))
	serve(g, httptest.NewRequest(http.MethodGet, "/admin", nil))
	serve(g, httptest.NewRequest(http.MethodGet, "/", nil))

	// Assert
	count := func(labels ...string) float64 {
		return testutil.ToFloat64(m.DispatchesTotal.WithLabelValues(labels...))
	}

	require.Equal(t, float64(2), count("users", "get", "200"))
	require.Equal(t, float64(1), count("users", "patch", "405"))
	require.Equal(t, float64(1), count("users", "unknown", "405"))
	require.Equal(t, float64(1), count("unknown", "get", "404"))
	require.Equal(t, float64(1), count("admin", "get", "401"))
	require.Equal(t, 5, testutil.CollectAndCount(m.DispatchesTotal))
	require.Equal(t, 1, testutil.CollectAndCount(m.AuthDuration))
}
