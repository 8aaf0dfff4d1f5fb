package remote

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records call outcomes. A nil *Metrics records nothing.
type Metrics struct {
	calls    *prometheus.CounterVec
	inflight prometheus.Gauge
	duration *prometheus.HistogramVec
}

// NewMetrics registers the call metrics on reg. Pass a fresh
// prometheus.NewRegistry() in tests to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		calls: f.NewCounterVec(prometheus.CounterOpts{
			Name: "retrofire_calls_total",
			Help: "Total number of resolved calls",
		}, []string{"method", "outcome", "code"}),
		inflight: f.NewGauge(prometheus.GaugeOpts{
			Name: "retrofire_calls_inflight",
			Help: "The number of calls currently in flight",
		}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "retrofire_call_duration_seconds",
			Help:    "Time from trigger to resolution of a call (in seconds)",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "outcome"}),
	}
}

func (m *Metrics) begin() {
	if m == nil {
		return
	}
	m.inflight.Inc()
}

func (m *Metrics) end(method, outcome string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.inflight.Dec()
	code := ""
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.calls.WithLabelValues(method, outcome, code).Inc()
	m.duration.WithLabelValues(method, outcome).Observe(elapsed.Seconds())
}
