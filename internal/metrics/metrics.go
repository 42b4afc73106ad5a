// Package metrics exposes Prometheus collectors for notification channels.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeSent        = "sent"
	OutcomeFailed      = "failed"
	OutcomeInvalidBody = "invalid_body"
	OutcomeSkipped     = "skipped"
)

// ChannelMetrics counts send outcomes per channel. A nil *ChannelMetrics is
// valid and records nothing.
type ChannelMetrics struct {
	sends    *prometheus.CounterVec
	skips    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewChannelMetrics creates the collectors and registers them with reg.
func NewChannelMetrics(reg prometheus.Registerer) (*ChannelMetrics, error) {
	m := &ChannelMetrics{
		sends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notifier",
			Name:      "channel_sends_total",
			Help:      "Notifications handed to a channel, by outcome.",
		}, []string{"channel", "outcome"}),
		skips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notifier",
			Name:      "channel_skips_total",
			Help:      "Notifications a channel declined to send, by reason.",
		}, []string{"channel", "reason"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "notifier",
			Name:      "channel_send_duration_seconds",
			Help:      "Time spent in the transport call.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"channel"}),
	}

	for _, c := range []prometheus.Collector{m.sends, m.skips, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveSend records one transport call.
func (m *ChannelMetrics) ObserveSend(channel, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.sends.WithLabelValues(channel, outcome).Inc()
	m.duration.WithLabelValues(channel).Observe(took.Seconds())
}

// ObserveSkip records a send skipped before any transport call.
func (m *ChannelMetrics) ObserveSkip(channel, reason string) {
	if m == nil {
		return
	}
	m.sends.WithLabelValues(channel, OutcomeSkipped).Inc()
	m.skips.WithLabelValues(channel, reason).Inc()
}
