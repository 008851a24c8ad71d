// Package forward relays raw inbound webhook payloads to a secondary
// endpoint, best effort.
package forward

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const defaultTimeout = 10 * time.Second

// Client posts raw payloads to a configured URL. It implements
// storebark.Forwarder.
type Client struct {
	httpc  *http.Client
	logger zerolog.Logger
}

// New creates a forwarder.
func New(logger zerolog.Logger) *Client {
	return &Client{
		httpc:  &http.Client{Timeout: defaultTimeout},
		logger: logger,
	}
}

// Forward relays the payload verbatim. The caller runs it from a background
// goroutine; the returned error only ever reaches a logging sink.
func (c *Client) Forward(ctx context.Context, url string, payload []byte) error {
	if url == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("forward: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("forward: send: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("forward: unexpected status %s", resp.Status)
	}

	c.logger.Info().Str("url", url).Int("status", resp.StatusCode).Msg("payload forwarded")
	return nil
}
