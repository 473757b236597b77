// Package service contains Speedrun queue workflows
package service

import (
	"context"
	"time"

	"adrata/internal/core/normalize"
	"adrata/internal/modkit/repokit"
	perr "adrata/internal/platform/errors"
	"adrata/internal/platform/logger"
	"adrata/internal/platform/store"
	ptime "adrata/internal/platform/time"
	"adrata/internal/services/speedrun/domain"
	"adrata/internal/services/speedrun/repo"

	"github.com/google/uuid"
)

// Service defines the speedrun service contract
type Service interface {
	domain.QueuePort
}

// Svc implements the speedrun service
type Svc struct {
	Repo    repo.Repo
	binder  repokit.Binder[repo.Repo]
	db      repokit.TxRunner
	log     logger.Logger
	newID   func() string
	nowFunc func() time.Time
}

// New constructs a speedrun service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("speedrun.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("speedrun.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:    repokit.MustBind(binder, db),
		binder:  binder,
		db:      db,
		log:     *logger.Named("speedrun"),
		newID:   func() string { return uuid.NewString() },
		nowFunc: ptime.NowUTC,
	}
}

// EnqueueLead adds a prospect to the queue
func (s *Svc) EnqueueLead(ctx context.Context, in domain.EnqueueLeadInput) (domain.Lead, error) {
	l := domain.Lead{
		ID:          s.newID(),
		WorkspaceID: in.WorkspaceID,
		Name:        normalize.Sanitize(in.Name),
		Company:     normalize.Sanitize(in.Company),
		Email:       in.Email,
		Score:       in.Score,
		Status:      domain.StatusQueued,
		CreatedAt:   s.nowFunc(),
	}
	l.UpdatedAt = l.CreatedAt
	if err := s.Repo.InsertLead(ctx, l); err != nil {
		return domain.Lead{}, err
	}
	return l, nil
}

// NextLead returns the highest-ranked lead still in the queue
func (s *Svc) NextLead(ctx context.Context, in domain.NextLeadInput) (domain.Lead, error) {
	l, err := s.Repo.NextRanked(ctx, in.WorkspaceID)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.Lead{}, perr.NotFoundf("queue for workspace %s is empty", in.WorkspaceID)
		}
		return domain.Lead{}, err
	}
	return l, nil
}

// CompleteLead records the call outcome and moves the lead. Terminal outcomes
// close the lead; reachability misses re-queue it for another pass
func (s *Svc) CompleteLead(ctx context.Context, in domain.CompleteLeadInput) (domain.Lead, error) {
	lead, err := s.Repo.GetLead(ctx, in.LeadID)
	if err != nil {
		return domain.Lead{}, err
	}
	if lead.WorkspaceID != in.WorkspaceID {
		return domain.Lead{}, perr.NotFoundf("lead %s not found", in.LeadID)
	}
	if lead.Status == domain.StatusDone {
		return domain.Lead{}, perr.Conflictf("lead %s is already done", in.LeadID)
	}

	status := statusForOutcome(in.Kind)

	// run inside the lead's workspace so RLS sees both writes
	err = store.RunInWorkspace(ctx, s.db, in.WorkspaceID, func(ctx context.Context, q store.RowQuerier) error {
		r := s.binder.Bind(q)
		if err := r.InsertOutcome(ctx, domain.Outcome{
			ID:        s.newID(),
			LeadID:    in.LeadID,
			Kind:      in.Kind,
			Notes:     normalize.Sanitize(in.Notes),
			CreatedAt: s.nowFunc(),
		}); err != nil {
			return err
		}
		return r.UpdateStatus(ctx, in.LeadID, status)
	})
	if err != nil {
		return domain.Lead{}, err
	}

	s.log.Info().
		Str("lead_id", in.LeadID).
		Str("outcome", in.Kind).
		Str("status", status).
		Msg("lead outcome recorded")

	lead.Status = status
	return lead, nil
}

// QueueDepth summarizes remaining work for the workspace
func (s *Svc) QueueDepth(ctx context.Context, in domain.QueueDepthInput) (domain.QueueDepthRow, error) {
	return s.Repo.Depth(ctx, in.WorkspaceID)
}

// statusForOutcome maps a call result to the lead's next status.
// Reachability misses keep the lead callable; every other outcome, including
// kinds this mapping has never heard of, closes it. Clients keep inventing
// outcome labels and an unrecognized one must never wedge the queue
func statusForOutcome(kind string) string {
	switch kind {
	case "voicemail", "no-answer", "busy":
		return domain.StatusAttempted
	default:
		return domain.StatusDone
	}
}
