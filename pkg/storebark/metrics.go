package storebark

import "time"

// Metrics defines the interface for tracking pipeline activity.
// Implementations must be safe for concurrent use; the forward outcome is
// recorded from a background goroutine.
type Metrics interface {
	// RecordNotification counts one processed webhook delivery.
	// eventType: the notification type, or "MISSING"/"MALFORMED" for
	// deliveries that never reached classification.
	// status: "success", "ignored" or "error".
	RecordNotification(app, eventType, status string)

	// RecordProcessingDuration records end-to-end handling time for one delivery.
	RecordProcessingDuration(app string, duration time.Duration)

	// RecordPushError records a failed push-relay delivery.
	// errorType: the failure class (e.g. "transport").
	RecordPushError(app, errorType string)

	// RecordForward records the outcome of a background forward attempt.
	// status: "success" or "error".
	RecordForward(app, status string)
}

// NoopMetrics is a no-op implementation of the Metrics interface.
type NoopMetrics struct{}

func (n *NoopMetrics) RecordNotification(_, _, _ string)                  {}
func (n *NoopMetrics) RecordProcessingDuration(_ string, _ time.Duration) {}
func (n *NoopMetrics) RecordPushError(_, _ string)                        {}
func (n *NoopMetrics) RecordForward(_, _ string)                          {}
