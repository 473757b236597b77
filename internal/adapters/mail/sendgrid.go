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
	sendgridBaseURL = "https://api.sendgrid.com"
	sendgridTimeout = 15 * time.Second
)

// SendgridOptions configures the SendGrid client
type SendgridOptions struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Sendgrid is a minimal client for the SendGrid v3 mail send endpoint
type Sendgrid struct {
	http *http.Client
	opts SendgridOptions
	log  logger.Logger
}

// NewSendgrid creates a Sendgrid client with sane defaults
func NewSendgrid(o SendgridOptions) *Sendgrid {
	if o.BaseURL == "" {
		o.BaseURL = sendgridBaseURL
	}
	if o.Timeout <= 0 {
		o.Timeout = sendgridTimeout
	}
	return &Sendgrid{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("mail.sendgrid"),
	}
}

// Name implements Sender
func (*Sendgrid) Name() string { return "sendgrid" }

type sgAddress struct {
	Email string `json:"email"`
}

type sgPersonalization struct {
	To  []sgAddress `json:"to"`
	CC  []sgAddress `json:"cc,omitempty"`
	BCC []sgAddress `json:"bcc,omitempty"`
}

// sgAddresses wraps plain addresses in the v3 object shape
// an empty slice stays nil so omitempty drops the field
func sgAddresses(addrs []string) []sgAddress {
	if len(addrs) == 0 {
		return nil
	}
	out := make([]sgAddress, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, sgAddress{Email: a})
	}
	return out
}

type sgContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sgRequest struct {
	Personalizations []sgPersonalization `json:"personalizations"`
	From             sgAddress           `json:"from"`
	Subject          string              `json:"subject"`
	Content          []sgContent         `json:"content"`
}

// Send implements Sender
// SendGrid replies 202 with the id in the X-Message-Id header
func (c *Sendgrid) Send(ctx context.Context, msg Message) (string, error) {
	var content []sgContent
	if msg.Text != "" {
		content = append(content, sgContent{Type: "text/plain", Value: msg.Text})
	}
	if msg.HTML != "" {
		content = append(content, sgContent{Type: "text/html", Value: msg.HTML})
	}

	body, err := json.Marshal(sgRequest{
		Personalizations: []sgPersonalization{{
			To:  sgAddresses(msg.To),
			CC:  sgAddresses(msg.CC),
			BCC: sgAddresses(msg.BCC),
		}},
		From:    sgAddress{Email: msg.From},
		Subject: msg.Subject,
		Content: content,
	})
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeJSON, "sendgrid encode message")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/v3/mail/send", bytes.NewReader(body))
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "sendgrid new request")
	}
	req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnavailable, "sendgrid send")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return resp.Header.Get("X-Message-Id"), nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", perr.Unauthorizedf("sendgrid rejected credentials")
	case resp.StatusCode == http.StatusBadRequest:
		return "", perr.InvalidArgf("sendgrid rejected message")
	default:
		return "", perr.Unavailablef("sendgrid send failed with status %d", resp.StatusCode)
	}
}
