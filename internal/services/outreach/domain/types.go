// Package domain holds outreach email types
package domain

import "time"

// Delivery statuses recorded in the email log
const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// SendEmailInput is one outbound sequence email
type SendEmailInput struct {
	WorkspaceID string   `json:"workspace_id" validate:"required,handle,max=64"`
	From        string   `json:"from" validate:"required,email"`
	To          []string `json:"to" validate:"required,min=1,max=50,dive,email"`
	CC          []string `json:"cc,omitempty" validate:"omitempty,max=50,dive,email"`
	BCC         []string `json:"bcc,omitempty" validate:"omitempty,max=50,dive,email"`
	Subject     string   `json:"subject" validate:"required,min=1,max=300"`
	HTML        string   `json:"html,omitempty" validate:"omitempty,max=500000"`
	Text        string   `json:"text,omitempty" validate:"omitempty,max=100000"`
}

// EmailLog is the persisted record of one delivery attempt
// a message that falls over to the second provider leaves two rows,
// the refused attempt and the accepted one
type EmailLog struct {
	ID            string    `json:"id"`
	WorkspaceID   string    `json:"workspace_id"`
	Provider      string    `json:"provider" example:"resend"`
	ProviderMsgID string    `json:"provider_msg_id,omitempty"`
	FromAddr      string    `json:"from"`
	ToAddrs       []string  `json:"to"`
	Subject       string    `json:"subject"`
	Status        string    `json:"status" example:"sent"`
	Error         string    `json:"error,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListLogInput pages the delivery log newest first
type ListLogInput struct {
	WorkspaceID string `json:"workspace_id" validate:"required,handle,max=64"`
	Limit       int    `json:"limit,omitempty" validate:"omitempty,min=1,max=500"`
}
