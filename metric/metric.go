package metric

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gw"

// Metrics contains the metrics a gateway records while dispatching requests.
//
// A nil *Metrics records nothing.
type Metrics struct {
	DispatchesTotal  *prometheus.CounterVec
	DispatchDuration *prometheus.HistogramVec
	AuthDuration     *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance, registering every metric with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		DispatchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "dispatch",
				Name:      "requests_total",
				Help:      "Total number of requests dispatched to a resource",
			},
			[]string{"resource", "method", "status"},
		),

		DispatchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "dispatch",
				Name:      "duration_seconds",
				Help:      "Time spent dispatching a request in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"resource"},
		),

		AuthDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "auth",
				Name:      "duration_seconds",
				Help:      "Time spent awaiting an authorization decision in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"resource", "outcome"},
		),
	}

	for _, c := range []prometheus.Collector{m.DispatchesTotal, m.DispatchDuration, m.AuthDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// RecordDispatch counts a dispatched request and observes how long it took.
func (m *Metrics) RecordDispatch(resource, method string, status int, d time.Duration) {
	if m == nil {
		return
	}

	m.DispatchesTotal.WithLabelValues(resource, method, strconv.Itoa(status)).Inc()
	m.DispatchDuration.WithLabelValues(resource).Observe(d.Seconds())
}

// RecordAuth observes how long an authorization decision took.
func (m *Metrics) RecordAuth(resource, outcome string, d time.Duration) {
	if m == nil {
		return
	}

	m.AuthDuration.WithLabelValues(resource, outcome).Observe(d.Seconds())
}
