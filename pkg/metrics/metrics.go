package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// FindWorkersTotal counts FindWorkers outcomes by result: "ok",
	// "empty", "unconfigured", "filesystem_unreachable",
	// "coordinator_unreachable", "timeout" (SPEC_FULL.md §10.3).
	FindWorkersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brokerage_find_workers_total",
			Help: "Total FindWorkers calls by outcome",
		},
		[]string{"result"},
	)

	// AnnounceTotal counts Announce/Revoke outcomes by backend and
	// operation.
	AnnounceTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brokerage_announce_total",
			Help: "Total announce/revoke operations by backend, operation, and outcome",
		},
		[]string{"backend", "operation", "outcome"},
	)

	// ThrottleSkippedTotal counts SetAvailability(true) calls that were
	// suppressed by the 10s throttle (spec.md §4.5).
	ThrottleSkippedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "brokerage_throttle_skipped_total",
			Help: "Total re-announcements suppressed by the availability throttle",
		},
	)

	// CoordinatorExchangeDuration measures the wall-clock time of a full
	// coordinator exchange: connect plus (for RequestWorkerList) the wait
	// for a response.
	CoordinatorExchangeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "brokerage_coordinator_exchange_duration_seconds",
			Help:    "Coordinator exchange duration in seconds by message type",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"message_type"},
	)

	// RegistrySize reports the coordinator daemon's current count of
	// distinct known worker addresses.
	RegistrySize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "brokerage_coordinator_registry_size",
			Help: "Distinct worker addresses known to the coordinator registry",
		},
	)
)

func init() {
	prometheus.MustRegister(FindWorkersTotal)
	prometheus.MustRegister(AnnounceTotal)
	prometheus.MustRegister(ThrottleSkippedTotal)
	prometheus.MustRegister(CoordinatorExchangeDuration)
	prometheus.MustRegister(RegistrySize)
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the duration to a histogram.
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	histogram.Observe(time.Since(t.start).Seconds())
}

// ObserveDurationVec records the duration to a histogram vec with labels.
func (t *Timer) ObserveDurationVec(histogram prometheus.ObserverVec, labels ...string) {
	histogram.WithLabelValues(labels...).Observe(time.Since(t.start).Seconds())
}

// Duration returns the elapsed time since the timer started.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
