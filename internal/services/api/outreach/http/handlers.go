// Package http provides http transport for outreach sending
package http

import (
	stdhttp "net/http"

	"adrata/internal/modkit/httpkit"
	"adrata/internal/services/outreach/domain"
	svc "adrata/internal/services/outreach/service"
)

// Register mounts outreach endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.SendEmailInput](r, "/send", h.send)
	httpkit.PostJSON[domain.ListLogInput](r, "/log", h.listLog)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /outreach/send Outreach outreachSend
// @Summary Send a sequence email with provider fallback
// @Tags Outreach
// @Accept json
// @Produce json
// @Param payload body domain.SendEmailInput true "Email"
// @Success 200 {object} domain.EmailLog "ok"
// @Failure 503 {object} httpkit.Envelope "all providers failed"
// @Router /outreach/send [post]
func (h *handlers) send(r *stdhttp.Request, in domain.SendEmailInput) (any, error) {
	return h.svc.SendEmail(r.Context(), in)
}

// swagger:route POST /outreach/log Outreach outreachLog
// @Summary Page the delivery log newest first
// @Tags Outreach
// @Accept json
// @Produce json
// @Param payload body domain.ListLogInput true "Query"
// @Success 200 {array} domain.EmailLog "ok"
// @Router /outreach/log [post]
func (h *handlers) listLog(r *stdhttp.Request, in domain.ListLogInput) (any, error) {
	return h.svc.ListLog(r.Context(), in)
}
