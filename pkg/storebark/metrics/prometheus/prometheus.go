package prommetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mihaimyh/storebark/pkg/storebark"
)

// Metrics implements storebark.Metrics using Prometheus.
type Metrics struct {
	notificationsTotal *prometheus.CounterVec
	processingDuration *prometheus.HistogramVec
	pushErrorsTotal    *prometheus.CounterVec
	forwardsTotal      *prometheus.CounterVec
}

// NewMetrics creates a new Prometheus metrics implementation for the
// notification pipeline.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		notificationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "notifications_total",
			Help:      "Total number of processed server notifications by outcome.",
		}, []string{"app", "event_type", "status"}),

		processingDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "processing_duration_seconds",
			Help:      "End-to-end duration of webhook processing in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"app"}),

		pushErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "push_errors_total",
			Help:      "Total number of failed push-relay deliveries.",
		}, []string{"app", "error_type"}),

		forwardsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "forwards_total",
			Help:      "Total number of background forward attempts by outcome.",
		}, []string{"app", "status"}),
	}
}

func (m *Metrics) RecordNotification(app, eventType, status string) {
	m.notificationsTotal.WithLabelValues(app, eventType, status).Inc()
}

func (m *Metrics) RecordProcessingDuration(app string, duration time.Duration) {
	m.processingDuration.WithLabelValues(app).Observe(duration.Seconds())
}

func (m *Metrics) RecordPushError(app, errorType string) {
	m.pushErrorsTotal.WithLabelValues(app, errorType).Inc()
}

func (m *Metrics) RecordForward(app, status string) {
	m.forwardsTotal.WithLabelValues(app, status).Inc()
}

// DefaultMetrics returns a Metrics implementation using the default
// Prometheus registerer.
func DefaultMetrics(namespace string) storebark.Metrics {
	return NewMetrics(prometheus.DefaultRegisterer, namespace)
}
