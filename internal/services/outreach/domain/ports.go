package domain

import "context"

// SendPort is consumed by handlers and other modules
type SendPort interface {
	SendEmail(ctx context.Context, in SendEmailInput) (EmailLog, error)
	ListLog(ctx context.Context, in ListLogInput) ([]EmailLog, error)
}
