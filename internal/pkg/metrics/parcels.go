// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "parcels"

// Delivery rejection reasons.
const (
	ReasonAlreadyDelivered = "already_delivered"
	ReasonInvalidCode      = "invalid_code"
	ReasonConflict         = "conflict"
)

// ParcelMetrics counts lifecycle transitions and exposes backlog gauges.
type ParcelMetrics struct {
	registered       prometheus.Counter
	delivered        prometheus.Counter
	deliveryRejected *prometheus.CounterVec
	awaitingPickup   prometheus.Gauge
	withProblems     prometheus.Gauge
}

// NewParcelMetrics registers the parcel collectors on reg. A nil reg yields a no-op recorder.
func NewParcelMetrics(reg prometheus.Registerer) *ParcelMetrics {
	if reg == nil {
		return &ParcelMetrics{}
	}
	m := &ParcelMetrics{
		registered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registered_total",
			Help:      "Parcels registered at the reception.",
		}),
		delivered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "delivered_total",
			Help:      "Parcels handed over to their recipients.",
		}),
		deliveryRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "delivery_rejected_total",
			Help:      "Delivery attempts refused, by reason.",
		}, []string{"reason"}),
		awaitingPickup: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "parcels_awaiting_pickup",
			Help: "Parcels currently in REGISTERED.",
		}),
		withProblems: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "parcels_with_problems",
			Help: "Parcels currently in PROBLEM.",
		}),
	}
	reg.MustRegister(m.registered, m.delivered, m.deliveryRejected, m.awaitingPickup, m.withProblems)
	return m
}

// IncRegistered counts a registered parcel.
func (m *ParcelMetrics) IncRegistered() {
	if m == nil || m.registered == nil {
		return
	}
	m.registered.Inc()
}

// IncDelivered counts a parcel handed out.
func (m *ParcelMetrics) IncDelivered() {
	if m == nil || m.delivered == nil {
		return
	}
	m.delivered.Inc()
}

// IncDeliveryRejected counts a refused delivery, labelled by reason
// ("invalid_code" or "already_delivered").
func (m *ParcelMetrics) IncDeliveryRejected(reason string) {
	if m == nil || m.deliveryRejected == nil {
		return
	}
	m.deliveryRejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

// SetAwaitingPickup sets the REGISTERED backlog gauge.
func (m *ParcelMetrics) SetAwaitingPickup(n int64) {
	if m == nil || m.awaitingPickup == nil {
		return
	}
	m.awaitingPickup.Set(float64(n))
}

// SetWithProblems sets the PROBLEM backlog gauge.
func (m *ParcelMetrics) SetWithProblems(n int64) {
	if m == nil || m.withProblems == nil {
		return
	}
	m.withProblems.Set(float64(n))
}
