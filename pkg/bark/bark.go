// Package bark sends push notifications through a Bark server.
package bark

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mihaimyh/storebark/pkg/storebark"
)

// DefaultBaseURL is the public Bark server.
const DefaultBaseURL = "https://api.day.app"

const defaultTimeout = 10 * time.Second

// Client posts notifications to a Bark server. It implements
// storebark.Notifier.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  zerolog.Logger
}

// New creates a Bark client. An empty baseURL selects the public server.
func New(baseURL string, logger zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
		logger:  logger,
	}
}

type pushRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Sound string `json:"sound"`
	Icon  string `json:"icon"`
	Group string `json:"group"`
}

// Push delivers one notification addressed by the tenant's key. An empty key
// means delivery is disabled for the tenant and succeeds trivially.
func (c *Client) Push(ctx context.Context, key, title, body string, opts storebark.PushOptions) error {
	if key == "" {
		return nil
	}

	payload, err := json.Marshal(pushRequest{
		Title: title,
		Body:  body,
		Sound: opts.Sound,
		Icon:  opts.Icon,
		Group: opts.Group,
	})
	if err != nil {
		return fmt.Errorf("bark: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+key, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("bark: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("bark: send: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("bark: unexpected status %s", resp.Status)
	}

	c.logger.Debug().Str("group", opts.Group).Msg("bark push delivered")
	return nil
}
