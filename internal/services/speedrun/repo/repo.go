// Package repo provides postgres access for the Speedrun lead queue
package repo

import (
	"context"
	"strings"

	"adrata/internal/modkit/repokit"
	perr "adrata/internal/platform/errors"
	"adrata/internal/services/speedrun/domain"
)

// Repo is the minimal persistence surface for Speedrun
type Repo interface {
	InsertLead(ctx context.Context, l domain.Lead) error
	GetLead(ctx context.Context, id string) (domain.Lead, error)

	// NextRanked returns the best lead to call: fresh queued leads first,
	// then re-queued attempts, highest score first, oldest breaking ties
	NextRanked(ctx context.Context, workspaceID string) (domain.Lead, error)

	UpdateStatus(ctx context.Context, id, status string) error
	InsertOutcome(ctx context.Context, o domain.Outcome) error
	Depth(ctx context.Context, workspaceID string) (domain.QueueDepthRow, error)
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const leadCols = `id, workspace_id, name, company, email, score, status, created_at, updated_at`

func (r *queries) InsertLead(ctx context.Context, l domain.Lead) error {
	const sql = `
insert into leads (id, workspace_id, name, company, email, score, status, created_at, updated_at)
values ($1, $2, $3, $4, $5, $6, $7, $8, $8)
`
	_, err := r.q.Exec(ctx, sql, l.ID, l.WorkspaceID, l.Name, l.Company, l.Email, l.Score, l.Status, l.CreatedAt)
	if err != nil {
		if perr.IsDuplicateKey(err) {
			return perr.DuplicateKeyf("lead %s already exists", l.ID)
		}
		return perr.Wrap(err, perr.ErrorCodeDB, "insert lead")
	}
	return nil
}

func (r *queries) GetLead(ctx context.Context, id string) (domain.Lead, error) {
	const sql = `select ` + leadCols + ` from leads where id = $1`
	return r.scanOne(r.q.QueryRow(ctx, sql, id), id)
}

func (r *queries) NextRanked(ctx context.Context, workspaceID string) (domain.Lead, error) {
	const sql = `
select ` + leadCols + `
from leads
where workspace_id = $1
and status in ('queued', 'attempted')
order by (status = 'queued') desc, score desc, created_at asc
limit 1
`
	return r.scanOne(r.q.QueryRow(ctx, sql, workspaceID), "next")
}

func (r *queries) UpdateStatus(ctx context.Context, id, status string) error {
	const sql = `update leads set status = $2, updated_at = now() where id = $1`
	tag, err := r.q.Exec(ctx, sql, id, status)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "update lead status")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("lead %s not found", id)
	}
	return nil
}

func (r *queries) InsertOutcome(ctx context.Context, o domain.Outcome) error {
	const sql = `
insert into lead_outcomes (id, lead_id, kind, notes, created_at)
values ($1, $2, $3, $4, $5)
`
	_, err := r.q.Exec(ctx, sql, o.ID, o.LeadID, o.Kind, o.Notes, o.CreatedAt)
	if err != nil {
		if perr.IsForeignKeyViolation(err) {
			return perr.NotFoundf("lead %s not found", o.LeadID)
		}
		return perr.Wrap(err, perr.ErrorCodeDB, "insert outcome")
	}
	return nil
}

func (r *queries) Depth(ctx context.Context, workspaceID string) (domain.QueueDepthRow, error) {
	const sql = `
select
count(1) filter (where status = 'queued'),
count(1) filter (where status = 'attempted'),
count(1) filter (where status = 'done')
from leads
where workspace_id = $1
`
	var row domain.QueueDepthRow
	row.WorkspaceID = workspaceID
	if err := r.q.QueryRow(ctx, sql, workspaceID).Scan(&row.Queued, &row.Attempted, &row.Done); err != nil {
		return domain.QueueDepthRow{}, perr.Wrap(err, perr.ErrorCodeDB, "queue depth")
	}
	return row, nil
}

func (r *queries) scanOne(row repokit.Row, what string) (domain.Lead, error) {
	var l domain.Lead
	err := row.Scan(
		&l.ID, &l.WorkspaceID, &l.Name, &l.Company, &l.Email,
		&l.Score, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return domain.Lead{}, perr.NotFoundf("lead %s not found", what)
		}
		return domain.Lead{}, perr.Wrap(err, perr.ErrorCodeDB, "scan lead")
	}
	return l, nil
}
