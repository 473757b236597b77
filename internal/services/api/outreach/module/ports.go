package module

import (
	"context"

	"adrata/internal/services/outreach/domain"
	orsvc "adrata/internal/services/outreach/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptSendPort exposes service methods as module ports for cross-module usage
type adaptSendPort struct{ svc orsvc.Service }

func (a adaptSendPort) SendEmail(ctx context.Context, in domain.SendEmailInput) (domain.EmailLog, error) {
	return a.svc.SendEmail(ctx, in)
}

func (a adaptSendPort) ListLog(ctx context.Context, in domain.ListLogInput) ([]domain.EmailLog, error) {
	return a.svc.ListLog(ctx, in)
}
