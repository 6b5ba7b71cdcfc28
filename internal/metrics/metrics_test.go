package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBookingMetricsCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)

	m.ObserveReservation("create", "ok")
	m.ObserveReservation("create", "conflict")
	m.ObserveReservation("create", "conflict")
	m.ObserveSweep("no_show", 3)
	m.ObserveSweep("no_show", 0)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.reservations.WithLabelValues("create", "conflict")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.sweeps.WithLabelValues("no_show")))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *BookingMetrics
	m.ObserveReservation("create", "ok")
	m.ObserveTransition("confirmed", "ok")
	m.ObserveSweep("reminder", 1)
	m.ObserveNotification("tenant", "failed")
	m.ObserveCommitLatency("create", 0.01)
}
