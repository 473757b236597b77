// Package http provides http transport for the Speedrun queue
package http

import (
	stdhttp "net/http"

	"adrata/internal/modkit/httpkit"
	"adrata/internal/services/speedrun/domain"
	svc "adrata/internal/services/speedrun/service"
)

// Register mounts speedrun endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.EnqueueLeadInput](r, "/leads", h.enqueue)
	httpkit.PostJSON[domain.NextLeadInput](r, "/next", h.next)
	httpkit.PostJSON[domain.CompleteLeadInput](r, "/complete", h.complete)
	httpkit.PostJSON[domain.QueueDepthInput](r, "/depth", h.depth)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /speedrun/leads Speedrun speedrunEnqueue
// @Summary Add a lead to the calling queue
// @Tags Speedrun
// @Accept json
// @Produce json
// @Param payload body domain.EnqueueLeadInput true "Lead"
// @Success 200 {object} domain.Lead "ok"
// @Router /speedrun/leads [post]
func (h *handlers) enqueue(r *stdhttp.Request, in domain.EnqueueLeadInput) (any, error) {
	return h.svc.EnqueueLead(r.Context(), in)
}

// swagger:route POST /speedrun/next Speedrun speedrunNext
// @Summary Highest-ranked lead to call next
// @Tags Speedrun
// @Accept json
// @Produce json
// @Param payload body domain.NextLeadInput true "Query"
// @Success 200 {object} domain.Lead "ok"
// @Failure 404 {object} httpkit.Envelope "queue empty"
// @Router /speedrun/next [post]
func (h *handlers) next(r *stdhttp.Request, in domain.NextLeadInput) (any, error) {
	return h.svc.NextLead(r.Context(), in)
}

// swagger:route POST /speedrun/complete Speedrun speedrunComplete
// @Summary Record a call outcome
// @Tags Speedrun
// @Accept json
// @Produce json
// @Param payload body domain.CompleteLeadInput true "Outcome"
// @Success 200 {object} domain.Lead "ok"
// @Router /speedrun/complete [post]
func (h *handlers) complete(r *stdhttp.Request, in domain.CompleteLeadInput) (any, error) {
	return h.svc.CompleteLead(r.Context(), in)
}

// swagger:route POST /speedrun/depth Speedrun speedrunDepth
// @Summary Queue depth by status
// @Tags Speedrun
// @Accept json
// @Produce json
// @Param payload body domain.QueueDepthInput true "Query"
// @Success 200 {object} domain.QueueDepthRow "ok"
// @Router /speedrun/depth [post]
func (h *handlers) depth(r *stdhttp.Request, in domain.QueueDepthInput) (any, error) {
	return h.svc.QueueDepth(r.Context(), in)
}
