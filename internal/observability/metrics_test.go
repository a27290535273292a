package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_RegistersAll(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.BackendRequests.WithLabelValues("200", "get").Inc()
	m.BackendDuration.WithLabelValues("get").Observe(0.1)
	m.ProbeOutcomes.WithLabelValues("valid").Inc()
	m.Notifications.WithLabelValues("warning").Inc()
	m.HTTPRequests.WithLabelValues("200", "get").Inc()

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 5)
}

func TestNewMetrics_DoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)

	assert.Panics(t, func() { NewMetrics(reg) })
}

func TestProbeOutcomes_Counts(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ProbeOutcomes.WithLabelValues("unauthorized").Inc()
	m.ProbeOutcomes.WithLabelValues("unauthorized").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ProbeOutcomes.WithLabelValues("unauthorized")))
}
