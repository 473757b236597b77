// Package repo provides postgres access for the outreach email log
package repo

import (
	"context"

	"adrata/internal/modkit/repokit"
	perr "adrata/internal/platform/errors"
	str "adrata/internal/platform/strings"
	"adrata/internal/services/outreach/domain"
)

// Repo is the minimal persistence surface for outreach
type Repo interface {
	InsertLog(ctx context.Context, l domain.EmailLog) error
	ListLog(ctx context.Context, workspaceID string, limit int) ([]domain.EmailLog, error)
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

func (r *queries) InsertLog(ctx context.Context, l domain.EmailLog) error {
	const sql = `
insert into email_log (id, workspace_id, provider, provider_msg_id, from_addr, to_addrs, subject, status, error, created_at)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`
	// provider_msg_id and error are nullable; blank means the provider never
	// assigned an id or the send succeeded
	_, err := r.q.Exec(ctx, sql,
		l.ID, l.WorkspaceID, l.Provider, str.SQLNull(l.ProviderMsgID),
		l.FromAddr, l.ToAddrs, l.Subject, l.Status, str.SQLNull(l.Error), l.CreatedAt,
	)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "insert email log")
	}
	return nil
}

func (r *queries) ListLog(ctx context.Context, workspaceID string, limit int) ([]domain.EmailLog, error) {
	const sql = `
select id, workspace_id, provider, coalesce(provider_msg_id, ''), from_addr, to_addrs, subject, status, coalesce(error, ''), created_at
from email_log
where workspace_id = $1
order by created_at desc
limit $2
`
	rows, err := r.q.Query(ctx, sql, workspaceID, limit)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "list email log")
	}
	defer rows.Close()
	var out []domain.EmailLog
	for rows.Next() {
		var l domain.EmailLog
		if err := rows.Scan(
			&l.ID, &l.WorkspaceID, &l.Provider, &l.ProviderMsgID,
			&l.FromAddr, &l.ToAddrs, &l.Subject, &l.Status, &l.Error, &l.CreatedAt,
		); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "scan email log")
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
