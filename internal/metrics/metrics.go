package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes counters/histograms for the agenda gateway. All methods are
// nil-safe so packages can run without instrumentation in tests.
type Metrics struct {
	upstreamLatency   *prometheus.HistogramVec
	bookingOutcomes   *prometheus.CounterVec
	adminMutations    *prometheus.CounterVec
	optimisticReverts prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "revitek",
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Latency of calls to the agenda backend",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "status"}),
		bookingOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "revitek",
			Subsystem: "booking",
			Name:      "submissions_total",
			Help:      "Reservation submissions by outcome",
		}, []string{"outcome"}),
		adminMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "revitek",
			Subsystem: "admin",
			Name:      "reservation_mutations_total",
			Help:      "Admin reservation mutations by action and result",
		}, []string{"action", "result"}),
		optimisticReverts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "revitek",
			Subsystem: "admin",
			Name:      "optimistic_reloads_total",
			Help:      "Full list reloads triggered by a failed optimistic update",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.upstreamLatency, m.bookingOutcomes, m.adminMutations, m.optimisticReverts)
	return m
}

func (m *Metrics) ObserveUpstream(operation, status string, seconds float64) {
	if m == nil {
		return
	}
	m.upstreamLatency.WithLabelValues(operation, status).Observe(seconds)
}

func (m *Metrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookingOutcomes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveAdminMutation(action string, ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "reverted"
		m.optimisticReverts.Inc()
	}
	m.adminMutations.WithLabelValues(action, result).Inc()
}
