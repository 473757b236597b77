// Package realtime provides the HTTP client for the Oasis relay, the fanout
// service that pushes typing signals and message events to connected clients
package realtime

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	perr "adrata/internal/platform/errors"
	"adrata/internal/platform/logger"
)

const (
	defaultTimeout     = 5 * time.Second
	defaultUA          = "adrata-oasis"
	defaultMaxAttempts = 3
	defaultRetryWait   = 200 * time.Millisecond
)

// Event is one realtime payload addressed to a channel
// Data must be JSON-encodable
type Event struct {
	Channel string `json:"channel"`
	Name    string `json:"name"`
	Data    any    `json:"data"`
}

// Publisher delivers events to the relay
// implementations must be safe for concurrent use
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Options configures the Client
type Options struct {
	// BaseURL of the relay, eg https://relay.internal:6001
	BaseURL string

	// AppID scopes events to one workspace deployment on the relay
	AppID string

	// Key is the bearer credential for the publish endpoint
	Key string

	UserAgent string
	Timeout   time.Duration

	// MaxAttempts caps deliveries of one event, first try included
	MaxAttempts int

	// RetryWait is the pause before the first retry; it doubles per attempt
	RetryWait time.Duration
}

// Client is a minimal relay publish client. Transient failures (relay down,
// 5xx, rate limiting) are retried a bounded number of times within the
// caller's deadline; an event that still cannot land is dropped by the
// caller, the next throttle window carries fresh state anyway
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time
}

// NewClient creates a Client with sane defaults
func NewClient(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = defaultMaxAttempts
	}
	if o.RetryWait <= 0 {
		o.RetryWait = defaultRetryWait
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("realtime"),
		now:  time.Now,
	}
}

// Publish posts one event to the relay, retrying transient failures
func (c *Client) Publish(ctx context.Context, ev Event) error {
	if ev.Channel == "" || ev.Name == "" {
		return perr.InvalidArgf("realtime event requires channel and name")
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "realtime encode event")
	}

	wait := c.opts.RetryWait
	var lastErr error
	for attempt := 1; attempt <= c.opts.MaxAttempts; attempt++ {
		lastErr = c.post(ctx, ev, body)
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) || attempt == c.opts.MaxAttempts {
			return lastErr
		}

		c.log.Debug().
			Str("channel", ev.Channel).
			Str("event", ev.Name).
			Int("attempt", attempt).
			Err(lastErr).
			Msg("relay publish retrying")

		select {
		case <-ctx.Done():
			return lastErr
		case <-time.After(wait):
		}
		wait *= 2
	}
	return lastErr
}

// retryable reports whether another attempt could help: outages and rate
// limits pass, rejected credentials or payloads never will
func retryable(err error) bool {
	return perr.IsCode(err, perr.ErrorCodeUnavailable) ||
		perr.IsCode(err, perr.ErrorCodeTooManyRequests)
}

// post performs one publish attempt
func (c *Client) post(ctx context.Context, ev Event, body []byte) error {
	url := c.opts.BaseURL + "/apps/" + c.opts.AppID + "/events"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "realtime new request")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Content-Type", "application/json")
	if c.opts.Key != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.Key)
	}

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "realtime publish")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	c.log.Debug().
		Str("channel", ev.Channel).
		Str("event", ev.Name).
		Int("status", resp.StatusCode).
		Dur("dur", c.now().Sub(start)).
		Msg("relay publish")

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return perr.TooManyRequestsf("relay rate limited")
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return perr.Unauthorizedf("relay rejected credentials")
	default:
		return perr.Unavailablef("relay publish failed with status %d", resp.StatusCode)
	}
}

// Noop is a Publisher that drops events, used when no relay is configured
// (local development, tests, single-user installs)
type Noop struct{}

// Publish implements Publisher and always succeeds
func (Noop) Publish(context.Context, Event) error { return nil }
