// Package storebark turns signed App Store server notifications into Bark
// push alerts: decode the envelope, classify the event, resolve the layered
// category configuration, compose the alert, dispatch it.
package storebark

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
)

// Notifier delivers a composed push to the relay service. Implementations
// must treat an empty key as "delivery disabled" and succeed trivially.
type Notifier interface {
	Push(ctx context.Context, key, title, body string, opts PushOptions) error
}

// Forwarder relays a raw inbound payload to a secondary endpoint.
type Forwarder interface {
	Forward(ctx context.Context, url string, payload []byte) error
}

// Config holds configuration for a Pipeline.
type Config struct {
	// Notifier delivers composed pushes (required).
	Notifier Notifier

	// Forwarder relays raw payloads for tenants with a forward URL.
	// If nil, forwarding is disabled.
	Forwarder Forwarder

	// Metrics records pipeline activity. If nil, metrics are not recorded.
	Metrics Metrics

	// Logger receives structured pipeline logs.
	Logger zerolog.Logger
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Notifier == nil {
		return ErrNotifierRequired
	}
	return nil
}

// Pipeline processes inbound webhook deliveries. It is stateless between
// invocations and safe for concurrent use.
type Pipeline struct {
	notifier  Notifier
	forwarder Forwarder
	metrics   Metrics
	logger    zerolog.Logger
}

// New creates a Pipeline with the given configuration.
func New(config Config) (*Pipeline, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Metrics == nil {
		config.Metrics = &NoopMetrics{}
	}
	return &Pipeline{
		notifier:  config.Notifier,
		forwarder: config.Forwarder,
		metrics:   config.Metrics,
		logger:    config.Logger,
	}, nil
}

// webhookBody is the inbound request body. Only signedPayload is consumed
// here; the raw bytes are forwarded verbatim when forwarding is configured.
type webhookBody struct {
	SignedPayload string `json:"signedPayload"`
}

// Handle runs the full pipeline for one inbound delivery and always returns
// a well-formed Result: expected outcomes (missing payload, unknown event,
// suppressed category, transport failure) are values, never errors. Only an
// undecodable outer envelope reports StatusError.
func (p *Pipeline) Handle(ctx context.Context, app AppConfig, raw []byte) Result {
	start := time.Now()
	defer func() {
		p.metrics.RecordProcessingDuration(app.Name, time.Since(start))
	}()

	var body webhookBody
	if err := json.Unmarshal(raw, &body); err != nil || body.SignedPayload == "" {
		p.metrics.RecordNotification(app.Name, "MISSING", StatusIgnored)
		return Result{Status: StatusIgnored, Message: "Missing signedPayload"}
	}

	// Forward before decoding: the secondary endpoint gets every delivery
	// that carried a payload, even ones this pipeline cannot decode.
	p.forward(app, raw)

	payload := DecodeNotification(body.SignedPayload)
	if payload == nil {
		p.metrics.RecordNotification(app.Name, "MALFORMED", StatusError)
		return Result{Status: StatusError, Message: "JWS decode failed"}
	}

	environment := payload.Environment()
	p.logger.Info().
		Str("app", app.Name).
		Str("type", payload.NotificationType).
		Str("subtype", payload.Subtype).
		Str("environment", environment).
		Msg("notification received")

	event := Classify(payload.NotificationType, payload.Subtype)
	view := InterpretTransaction(DecodeTransaction(payload.Data.SignedTransactionInfo))

	decision := Compose(event, payload.NotificationType, payload.Subtype, environment, app, view)
	if !decision.Send {
		p.logger.Info().
			Str("app", app.Name).
			Str("reason", decision.Reason).
			Msg("notification suppressed")
		p.metrics.RecordNotification(app.Name, payload.NotificationType, StatusIgnored)
		return Result{Status: StatusIgnored, Message: decision.Reason}
	}

	if err := p.notifier.Push(ctx, app.BarkKey, decision.Title, decision.Body, decision.Options); err != nil {
		// Best effort: the platform re-delivers on its own schedule, so a
		// transport failure must not turn into a failed response.
		p.logger.Error().Err(err).Str("app", app.Name).Msg("push delivery failed")
		p.metrics.RecordPushError(app.Name, "transport")
	}

	p.metrics.RecordNotification(app.Name, payload.NotificationType, StatusSuccess)
	return Result{Status: StatusSuccess, Message: "Notification sent: " + event.Name}
}

// forward relays the raw payload in the background. It never blocks the
// response path; failures reach only the log and the metrics sink.
func (p *Pipeline) forward(app AppConfig, raw []byte) {
	if p.forwarder == nil || app.ForwardURL == "" {
		return
	}
	buf := make([]byte, len(raw))
	copy(buf, raw)
	go func() {
		if err := p.forwarder.Forward(context.Background(), app.ForwardURL, buf); err != nil {
			p.logger.Error().Err(err).Str("app", app.Name).Str("url", app.ForwardURL).Msg("forward failed")
			p.metrics.RecordForward(app.Name, StatusError)
			return
		}
		p.metrics.RecordForward(app.Name, StatusSuccess)
	}()
}
