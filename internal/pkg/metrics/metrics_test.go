package metrics_test

import (
	"testing"
	"time"

	"parcels/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParcelMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewParcelMetrics(reg)

	m.IncRegistered()
	m.IncRegistered()
	m.IncDelivered()
	m.IncDeliveryRejected(metrics.ReasonInvalidCode)
	m.SetAwaitingPickup(5)
	m.SetWithProblems(2)

	count, err := testutil.GatherAndCount(reg, "parcels_registered_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	families, err := reg.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				values[mf.GetName()] += metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				values[mf.GetName()] = metric.GetGauge().GetValue()
			}
		}
	}

	assert.InDelta(t, 2, values["parcels_registered_total"], 0)
	assert.InDelta(t, 1, values["parcels_delivered_total"], 0)
	assert.InDelta(t, 1, values["parcels_delivery_rejected_total"], 0)
	assert.InDelta(t, 5, values["parcels_awaiting_pickup"], 0)
	assert.InDelta(t, 2, values["parcels_with_problems"], 0)
}

func TestNilRegistererIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		m := metrics.NewParcelMetrics(nil)
		m.IncRegistered()
		m.SetWithProblems(1)

		var missing *metrics.ParcelMetrics
		missing.IncDelivered()

		jobs := metrics.NewCronJobMetrics(nil)
		jobs.IncSuccess("refresh")
		jobs.ObserveDuration("refresh", time.Second)
	})
}

func TestCronJobMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	jobs := metrics.NewCronJobMetrics(reg)

	jobs.IncSuccess("refresh")
	jobs.IncFailure("")
	jobs.ObserveDuration("refresh", 250*time.Millisecond)

	count, err := testutil.GatherAndCount(reg, "parcels_job_success_total", "parcels_job_failure_total", "parcels_job_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
