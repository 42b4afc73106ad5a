package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelMetrics_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewChannelMetrics(reg)
	require.NoError(t, err)

	m.ObserveSend("whatsapp", OutcomeSent, 10*time.Millisecond)
	m.ObserveSend("whatsapp", OutcomeFailed, 20*time.Millisecond)
	m.ObserveSkip("whatsapp", "no_route")

	assert.InDelta(t, 1, testutil.ToFloat64(m.sends.WithLabelValues("whatsapp", OutcomeSent)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.sends.WithLabelValues("whatsapp", OutcomeFailed)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.sends.WithLabelValues("whatsapp", OutcomeSkipped)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.skips.WithLabelValues("whatsapp", "no_route")), 0)
}

func TestChannelMetrics_DoubleRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewChannelMetrics(reg)
	require.NoError(t, err)

	_, err = NewChannelMetrics(reg)
	assert.Error(t, err)
}

func TestChannelMetrics_NilIsNoop(t *testing.T) {
	var m *ChannelMetrics
	assert.NotPanics(t, func() {
		m.ObserveSend("whatsapp", OutcomeSent, time.Second)
		m.ObserveSkip("whatsapp", "ineligible")
	})
}
