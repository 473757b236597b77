package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"adrata/internal/modkit/repokit"
	perr "adrata/internal/platform/errors"
	"adrata/internal/platform/store"
	"adrata/internal/services/speedrun/domain"
	"adrata/internal/services/speedrun/repo"
)

// memRepo is an in-memory Repo for workflow tests
type memRepo struct {
	mu       sync.Mutex
	leads    map[string]domain.Lead
	outcomes []domain.Outcome
}

func newMemRepo() *memRepo {
	return &memRepo{leads: make(map[string]domain.Lead)}
}

func (m *memRepo) InsertLead(_ context.Context, l domain.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leads[l.ID] = l
	return nil
}

func (m *memRepo) GetLead(_ context.Context, id string) (domain.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.leads[id]
	if !ok {
		return domain.Lead{}, perr.NotFoundf("lead %s not found", id)
	}
	return l, nil
}

func (m *memRepo) NextRanked(_ context.Context, ws string) (domain.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var callable []domain.Lead
	for _, l := range m.leads {
		if l.WorkspaceID == ws && l.Status != domain.StatusDone {
			callable = append(callable, l)
		}
	}
	if len(callable) == 0 {
		return domain.Lead{}, perr.NotFoundf("lead next not found")
	}
	sort.Slice(callable, func(i, j int) bool {
		iq := callable[i].Status == domain.StatusQueued
		jq := callable[j].Status == domain.StatusQueued
		if iq != jq {
			return iq
		}
		if callable[i].Score != callable[j].Score {
			return callable[i].Score > callable[j].Score
		}
		return callable[i].CreatedAt.Before(callable[j].CreatedAt)
	})
	return callable[0], nil
}

func (m *memRepo) UpdateStatus(_ context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.leads[id]
	if !ok {
		return perr.NotFoundf("lead %s not found", id)
	}
	l.Status = status
	m.leads[id] = l
	return nil
}

func (m *memRepo) InsertOutcome(_ context.Context, o domain.Outcome) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, o)
	return nil
}

func (m *memRepo) Depth(_ context.Context, ws string) (domain.QueueDepthRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row := domain.QueueDepthRow{WorkspaceID: ws}
	for _, l := range m.leads {
		if l.WorkspaceID != ws {
			continue
		}
		switch l.Status {
		case domain.StatusQueued:
			row.Queued++
		case domain.StatusAttempted:
			row.Attempted++
		case domain.StatusDone:
			row.Done++
		}
	}
	return row, nil
}

// fakeTx satisfies TxRunner without a database; the memRepo ignores the
// Queryer, so the direct query surface answers with zero values
type fakeTx struct{}

func (fakeTx) Tx(_ context.Context, fn func(q store.RowQuerier) error) error { return fn(nil) }

func (fakeTx) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (fakeTx) Query(context.Context, string, ...any) (store.Rows, error)      { return nil, nil }
func (fakeTx) QueryRow(context.Context, string, ...any) store.Row             { return nil }

func newTestSvc(mr *memRepo) *Svc {
	binder := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return mr })
	return New(fakeTx{}, binder)
}

func TestNextLead_RanksQueuedByScoreThenAge(t *testing.T) {
	t.Parallel()

	mr := newMemRepo()
	s := newTestSvc(mr)
	ctx := context.Background()

	low, _ := s.EnqueueLead(ctx, domain.EnqueueLeadInput{WorkspaceID: "ws-1", Name: "Low", Score: 10})
	high, _ := s.EnqueueLead(ctx, domain.EnqueueLeadInput{WorkspaceID: "ws-1", Name: "High", Score: 95})
	_ = low

	next, err := s.NextLead(ctx, domain.NextLeadInput{WorkspaceID: "ws-1"})
	if err != nil {
		t.Fatalf("NextLead: %v", err)
	}
	if next.ID != high.ID {
		t.Fatalf("next = %s (%q), want highest score", next.ID, next.Name)
	}
}

func TestNextLead_EmptyQueueIsNotFound(t *testing.T) {
	t.Parallel()

	s := newTestSvc(newMemRepo())
	_, err := s.NextLead(context.Background(), domain.NextLeadInput{WorkspaceID: "ws-empty"})
	if err == nil {
		t.Fatal("expected error for empty queue")
	}
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("error code = %v", perr.CodeOf(err))
	}
}

func TestCompleteLead_OutcomeRouting(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind       string
		wantStatus string
	}{
		{"connected", domain.StatusDone},
		{"pitched", domain.StatusDone},
		{"demo-scheduled", domain.StatusDone},
		{"not-interested", domain.StatusDone},
		{"wrong-number", domain.StatusDone},
		{"voicemail", domain.StatusAttempted},
		{"no-answer", domain.StatusAttempted},
		{"busy", domain.StatusAttempted},
		// kinds the mapping never heard of still close the lead
		{"callback-scheduled", domain.StatusDone},
		{"sent-pricing", domain.StatusDone},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.kind, func(t *testing.T) {
			t.Parallel()

			mr := newMemRepo()
			s := newTestSvc(mr)
			ctx := context.Background()

			lead, _ := s.EnqueueLead(ctx, domain.EnqueueLeadInput{WorkspaceID: "ws-1", Name: "Dana"})
			got, err := s.CompleteLead(ctx, domain.CompleteLeadInput{
				WorkspaceID: "ws-1",
				LeadID:      lead.ID,
				Kind:        tc.kind,
			})
			if err != nil {
				t.Fatalf("CompleteLead(%s): %v", tc.kind, err)
			}
			if got.Status != tc.wantStatus {
				t.Fatalf("status = %q, want %q", got.Status, tc.wantStatus)
			}
			if len(mr.outcomes) != 1 || mr.outcomes[0].Kind != tc.kind {
				t.Fatalf("outcome not recorded: %+v", mr.outcomes)
			}
		})
	}
}

func TestCompleteLead_DoubleCompletionConflicts(t *testing.T) {
	t.Parallel()

	mr := newMemRepo()
	s := newTestSvc(mr)
	ctx := context.Background()

	lead, _ := s.EnqueueLead(ctx, domain.EnqueueLeadInput{WorkspaceID: "ws-1", Name: "Dana"})

	if _, err := s.CompleteLead(ctx, domain.CompleteLeadInput{
		WorkspaceID: "ws-1", LeadID: lead.ID, Kind: "connected",
	}); err != nil {
		t.Fatalf("CompleteLead: %v", err)
	}

	// a second completion conflicts
	if _, err := s.CompleteLead(ctx, domain.CompleteLeadInput{
		WorkspaceID: "ws-1", LeadID: lead.ID, Kind: "connected",
	}); !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("double completion error code = %v", perr.CodeOf(err))
	}
}

func TestCompleteLead_UnknownOutcomeClosesLead(t *testing.T) {
	t.Parallel()

	mr := newMemRepo()
	s := newTestSvc(mr)
	ctx := context.Background()

	lead, _ := s.EnqueueLead(ctx, domain.EnqueueLeadInput{WorkspaceID: "ws-1", Name: "Dana"})

	got, err := s.CompleteLead(ctx, domain.CompleteLeadInput{
		WorkspaceID: "ws-1", LeadID: lead.ID, Kind: "teleported",
	})
	if err != nil {
		t.Fatalf("CompleteLead: %v", err)
	}
	if got.Status != domain.StatusDone {
		t.Fatalf("status = %q, want %q", got.Status, domain.StatusDone)
	}

	// the outcome row keeps the verbatim kind for later analysis
	if len(mr.outcomes) != 1 || mr.outcomes[0].Kind != "teleported" {
		t.Fatalf("outcome not recorded: %+v", mr.outcomes)
	}
	if _, err := s.NextLead(ctx, domain.NextLeadInput{WorkspaceID: "ws-1"}); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("closed lead still in queue, err = %v", err)
	}
}

func TestCompleteLead_CrossWorkspaceIsNotFound(t *testing.T) {
	t.Parallel()

	mr := newMemRepo()
	s := newTestSvc(mr)
	ctx := context.Background()

	lead, _ := s.EnqueueLead(ctx, domain.EnqueueLeadInput{WorkspaceID: "ws-1", Name: "Dana"})
	if _, err := s.CompleteLead(ctx, domain.CompleteLeadInput{
		WorkspaceID: "ws-2", LeadID: lead.ID, Kind: "connected",
	}); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("error code = %v", perr.CodeOf(err))
	}
}

func TestQueueDepth_CountsByStatus(t *testing.T) {
	t.Parallel()

	mr := newMemRepo()
	s := newTestSvc(mr)
	ctx := context.Background()

	a, _ := s.EnqueueLead(ctx, domain.EnqueueLeadInput{WorkspaceID: "ws-1", Name: "A"})
	b, _ := s.EnqueueLead(ctx, domain.EnqueueLeadInput{WorkspaceID: "ws-1", Name: "B"})
	_, _ = s.EnqueueLead(ctx, domain.EnqueueLeadInput{WorkspaceID: "ws-1", Name: "C"})

	if _, err := s.CompleteLead(ctx, domain.CompleteLeadInput{WorkspaceID: "ws-1", LeadID: a.ID, Kind: "voicemail"}); err != nil {
		t.Fatalf("CompleteLead: %v", err)
	}
	if _, err := s.CompleteLead(ctx, domain.CompleteLeadInput{WorkspaceID: "ws-1", LeadID: b.ID, Kind: "connected"}); err != nil {
		t.Fatalf("CompleteLead: %v", err)
	}

	depth, err := s.QueueDepth(ctx, domain.QueueDepthInput{WorkspaceID: "ws-1"})
	if err != nil {
		t.Fatalf("QueueDepth: %v", err)
	}
	want := domain.QueueDepthRow{WorkspaceID: "ws-1", Queued: 1, Attempted: 1, Done: 1}
	if depth != want {
		t.Fatalf("depth = %+v, want %+v", depth, want)
	}

	// attempted leads come back around once the fresh queue drains
	next, err := s.NextLead(ctx, domain.NextLeadInput{WorkspaceID: "ws-1"})
	if err != nil {
		t.Fatalf("NextLead: %v", err)
	}
	if next.Status != domain.StatusQueued {
		t.Fatalf("fresh lead should outrank attempted, got %+v", next)
	}
}

func TestEnqueueLead_StampsDefaults(t *testing.T) {
	t.Parallel()

	s := newTestSvc(newMemRepo())
	before := time.Now().Add(-time.Second)

	lead, err := s.EnqueueLead(context.Background(), domain.EnqueueLeadInput{
		WorkspaceID: "ws-1",
		Name:        "Dana\x00 Reyes",
	})
	if err != nil {
		t.Fatalf("EnqueueLead: %v", err)
	}
	if lead.Status != domain.StatusQueued {
		t.Fatalf("status = %q", lead.Status)
	}
	if lead.Name != "Dana Reyes" {
		t.Fatalf("name not sanitized: %q", lead.Name)
	}
	if lead.ID == "" || lead.CreatedAt.Before(before) {
		t.Fatalf("lead not stamped: %+v", lead)
	}
}
