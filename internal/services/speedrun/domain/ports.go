package domain

import "context"

// QueuePort is consumed by handlers and other modules
type QueuePort interface {
	EnqueueLead(ctx context.Context, in EnqueueLeadInput) (Lead, error)
	NextLead(ctx context.Context, in NextLeadInput) (Lead, error)
	CompleteLead(ctx context.Context, in CompleteLeadInput) (Lead, error)
	QueueDepth(ctx context.Context, in QueueDepthInput) (QueueDepthRow, error)
}
