package metrics

import "github.com/prometheus/client_golang/prometheus"

// EngineMetrics exposes counters/histograms for request processing.
type EngineMetrics struct {
	requestsTotal   *prometheus.CounterVec
	gateRefusals    *prometheus.CounterVec
	capabilityCalls *prometheus.CounterVec
	bookingsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	m := &EngineMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinicflow",
			Subsystem: "engine",
			Name:      "requests_total",
			Help:      "Total processed instructions by outcome",
		}, []string{"outcome", "dry_run"}),
		gateRefusals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinicflow",
			Subsystem: "engine",
			Name:      "gate_refusals_total",
			Help:      "Total safety gate refusals by rule",
		}, []string{"rule"}),
		capabilityCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinicflow",
			Subsystem: "engine",
			Name:      "capability_calls_total",
			Help:      "Total capability invocations by operation and status",
		}, []string{"capability", "status"}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinicflow",
			Subsystem: "engine",
			Name:      "bookings_total",
			Help:      "Total committed appointment bookings by specialty",
		}, []string{"specialty"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clinicflow",
			Subsystem: "engine",
			Name:      "request_duration_seconds",
			Help:      "Latency of instruction processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.gateRefusals, m.capabilityCalls, m.bookingsTotal, m.requestDuration)
	return m
}

func (m *EngineMetrics) ObserveRequest(outcome string, dryRun bool, seconds float64) {
	if m == nil {
		return
	}
	label := "false"
	if dryRun {
		label = "true"
	}
	m.requestsTotal.WithLabelValues(outcome, label).Inc()
	m.requestDuration.WithLabelValues(outcome).Observe(seconds)
}

func (m *EngineMetrics) ObserveGateRefusal(rule string) {
	if m == nil {
		return
	}
	m.gateRefusals.WithLabelValues(rule).Inc()
}

func (m *EngineMetrics) ObserveCapabilityCall(capability, status string) {
	if m == nil {
		return
	}
	m.capabilityCalls.WithLabelValues(capability, status).Inc()
}

func (m *EngineMetrics) ObserveBooking(specialty string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(specialty).Inc()
}
