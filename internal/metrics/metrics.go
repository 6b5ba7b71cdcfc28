package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters for the reservation engine.
// All methods are nil-safe so use cases can run without metrics.
type BookingMetrics struct {
	reservations  *prometheus.CounterVec
	transitions   *prometheus.CounterVec
	sweeps        *prometheus.CounterVec
	notifications *prometheus.CounterVec
	commitLatency *prometheus.HistogramVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		reservations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "booking",
			Name:      "reservations_total",
			Help:      "Reservation and move attempts by outcome",
		}, []string{"operation", "outcome"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "booking",
			Name:      "transitions_total",
			Help:      "Lifecycle transitions by target status and outcome",
		}, []string{"to", "outcome"}),
		sweeps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "booking",
			Name:      "sweep_processed_total",
			Help:      "Bookings processed by periodic sweeps",
		}, []string{"sweep"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "notify",
			Name:      "dispatch_total",
			Help:      "Notification dispatches by channel and status",
		}, []string{"channel", "status"}),
		commitLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "salon",
			Subsystem: "booking",
			Name:      "commit_latency_seconds",
			Help:      "Latency of the locked conflict check and write",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.reservations, m.transitions, m.sweeps, m.notifications, m.commitLatency)
	return m
}

func (m *BookingMetrics) ObserveReservation(operation, outcome string) {
	if m == nil {
		return
	}
	m.reservations.WithLabelValues(operation, outcome).Inc()
}

func (m *BookingMetrics) ObserveTransition(to, outcome string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(to, outcome).Inc()
}

func (m *BookingMetrics) ObserveSweep(sweep string, processed int) {
	if m == nil || processed <= 0 {
		return
	}
	m.sweeps.WithLabelValues(sweep).Add(float64(processed))
}

func (m *BookingMetrics) ObserveNotification(channel, status string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(channel, status).Inc()
}

func (m *BookingMetrics) ObserveCommitLatency(operation string, seconds float64) {
	if m == nil {
		return
	}
	m.commitLatency.WithLabelValues(operation).Observe(seconds)
}
