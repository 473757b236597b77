// Package mail provides outbound email provider clients for outreach sending.
// Two providers are wired so the sender can fall back when the primary is
// down; both satisfy the same Sender surface
package mail

import "context"

// Message is one outbound email
type Message struct {
	From    string
	To      []string
	CC      []string
	BCC     []string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers a message through one provider and returns the provider's
// message id for the delivery log
type Sender interface {
	// Name identifies the provider in logs and the email log table
	Name() string
	Send(ctx context.Context, msg Message) (id string, err error)
}
