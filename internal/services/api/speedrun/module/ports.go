package module

import (
	"context"

	"adrata/internal/services/speedrun/domain"
	srsvc "adrata/internal/services/speedrun/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptQueuePort exposes service methods as module ports for cross-module usage
type adaptQueuePort struct{ svc srsvc.Service }

func (a adaptQueuePort) EnqueueLead(ctx context.Context, in domain.EnqueueLeadInput) (domain.Lead, error) {
	return a.svc.EnqueueLead(ctx, in)
}

func (a adaptQueuePort) NextLead(ctx context.Context, in domain.NextLeadInput) (domain.Lead, error) {
	return a.svc.NextLead(ctx, in)
}

func (a adaptQueuePort) CompleteLead(ctx context.Context, in domain.CompleteLeadInput) (domain.Lead, error) {
	return a.svc.CompleteLead(ctx, in)
}

func (a adaptQueuePort) QueueDepth(ctx context.Context, in domain.QueueDepthInput) (domain.QueueDepthRow, error) {
	return a.svc.QueueDepth(ctx, in)
}
