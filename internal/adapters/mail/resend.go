package mail

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
	resendBaseURL = "https://api.resend.com"
	resendTimeout = 15 * time.Second
)

// ResendOptions configures the Resend client
type ResendOptions struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Resend is a minimal client for the Resend send endpoint
type Resend struct {
	http *http.Client
	opts ResendOptions
	log  logger.Logger
}

// NewResend creates a Resend client with sane defaults
func NewResend(o ResendOptions) *Resend {
	if o.BaseURL == "" {
		o.BaseURL = resendBaseURL
	}
	if o.Timeout <= 0 {
		o.Timeout = resendTimeout
	}
	return &Resend{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("mail.resend"),
	}
}

// Name implements Sender
func (*Resend) Name() string { return "resend" }

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	CC      []string `json:"cc,omitempty"`
	BCC     []string `json:"bcc,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

type resendResponse struct {
	ID string `json:"id"`
}

// Send implements Sender
func (c *Resend) Send(ctx context.Context, msg Message) (string, error) {
	body, err := json.Marshal(resendRequest{
		From:    msg.From,
		To:      msg.To,
		CC:      msg.CC,
		BCC:     msg.BCC,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeJSON, "resend encode message")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "resend new request")
	}
	req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnavailable, "resend send")
	}
	defer func() { _ = resp.Body.Close() }()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var out resendResponse
		if err := json.Unmarshal(raw, &out); err != nil {
			return "", perr.Wrapf(err, perr.ErrorCodeJSON, "resend decode response")
		}
		return out.ID, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", perr.Unauthorizedf("resend rejected credentials")
	case resp.StatusCode == http.StatusUnprocessableEntity || resp.StatusCode == http.StatusBadRequest:
		return "", perr.InvalidArgf("resend rejected message: %s", string(raw))
	default:
		return "", perr.Unavailablef("resend send failed with status %d", resp.StatusCode)
	}
}
