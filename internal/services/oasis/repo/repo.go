// Package repo provides postgres access for Oasis conversations and messages
package repo

import (
	"context"
	"strings"
	"time"

	"adrata/internal/modkit/repokit"
	perr "adrata/internal/platform/errors"
	"adrata/internal/services/oasis/domain"
)

// Repo is the minimal persistence surface for Oasis
type Repo interface {
	InsertConversation(ctx context.Context, c domain.Conversation) error
	GetConversation(ctx context.Context, id string) (domain.Conversation, error)
	ListConversations(ctx context.Context, workspaceID string, limit int) ([]domain.Conversation, error)
	TouchConversation(ctx context.Context, id string, at time.Time) error

	InsertMessage(ctx context.Context, m domain.Message, bodyFolded string) error
	ListMessages(ctx context.Context, conversationID string, limit int, beforeID string) ([]domain.Message, error)
	SearchMessages(ctx context.Context, workspaceID, foldedQuery string, limit int) ([]domain.Message, error)
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

func (r *queries) InsertConversation(ctx context.Context, c domain.Conversation) error {
	const sql = `
insert into conversations (id, workspace_id, subject, kind, created_at, updated_at)
values ($1, $2, $3, $4, $5, $6)
`
	_, err := r.q.Exec(ctx, sql, c.ID, c.WorkspaceID, c.Subject, c.Kind, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if perr.IsDuplicateKey(err) {
			return perr.DuplicateKeyf("conversation %s already exists", c.ID)
		}
		return perr.Wrap(err, perr.ErrorCodeDB, "insert conversation")
	}
	return nil
}

func (r *queries) GetConversation(ctx context.Context, id string) (domain.Conversation, error) {
	const sql = `
select id, workspace_id, subject, kind, created_at, updated_at
from conversations
where id = $1
`
	var c domain.Conversation
	row := r.q.QueryRow(ctx, sql, id)
	if err := row.Scan(&c.ID, &c.WorkspaceID, &c.Subject, &c.Kind, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return domain.Conversation{}, perr.NotFoundf("conversation %s not found", id)
		}
		return domain.Conversation{}, perr.Wrap(err, perr.ErrorCodeDB, "get conversation")
	}
	return c, nil
}

func (r *queries) ListConversations(ctx context.Context, workspaceID string, limit int) ([]domain.Conversation, error) {
	const sql = `
select id, workspace_id, subject, kind, created_at, updated_at
from conversations
where workspace_id = $1
order by updated_at desc, id desc
limit $2
`
	rows, err := r.q.Query(ctx, sql, workspaceID, limit)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "list conversations")
	}
	defer rows.Close()
	var out []domain.Conversation
	for rows.Next() {
		var c domain.Conversation
		if err := rows.Scan(&c.ID, &c.WorkspaceID, &c.Subject, &c.Kind, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "scan conversation")
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// TouchConversation bumps the thread's activity stamp so list ordering
// tracks the latest message, not thread creation
func (r *queries) TouchConversation(ctx context.Context, id string, at time.Time) error {
	const sql = `
update conversations set updated_at = $2 where id = $1
`
	tag, err := r.q.Exec(ctx, sql, id, at)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "touch conversation")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("conversation %s not found", id)
	}
	return nil
}

func (r *queries) InsertMessage(ctx context.Context, m domain.Message, bodyFolded string) error {
	const sql = `
insert into messages (id, conversation_id, sender_id, body, body_folded, created_at)
values ($1, $2, $3, $4, $5, $6)
`
	_, err := r.q.Exec(ctx, sql, m.ID, m.ConversationID, m.SenderID, m.Body, bodyFolded, m.CreatedAt)
	if err != nil {
		if perr.IsForeignKeyViolation(err) {
			return perr.NotFoundf("conversation %s not found", m.ConversationID)
		}
		if perr.IsDuplicateKey(err) {
			return perr.DuplicateKeyf("message %s already exists", m.ID)
		}
		return perr.Wrap(err, perr.ErrorCodeDB, "insert message")
	}
	return nil
}

func (r *queries) ListMessages(
	ctx context.Context,
	conversationID string,
	limit int,
	beforeID string,
) ([]domain.Message, error) {
	// the cursor compares the (created_at, id) pair so rows sharing a
	// timestamp with the cursor message still page out in order
	const sql = `
select id, conversation_id, sender_id, body, created_at
from messages
where conversation_id = $1
and ($3 = '' or (created_at, id) < (select created_at, id from messages where id = $3::uuid))
order by created_at desc, id desc
limit $2
`
	rows, err := r.q.Query(ctx, sql, conversationID, limit, beforeID)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "list messages")
	}
	defer rows.Close()
	return scanMessages(rows)
}

func (r *queries) SearchMessages(
	ctx context.Context,
	workspaceID, foldedQuery string,
	limit int,
) ([]domain.Message, error) {
	// body_folded is already case and width folded so a plain LIKE suffices
	const sql = `
select m.id, m.conversation_id, m.sender_id, m.body, m.created_at
from messages m
join conversations c on c.id = m.conversation_id
where c.workspace_id = $1
and m.body_folded like '%' || $2 || '%'
order by m.created_at desc
limit $3
`
	rows, err := r.q.Query(ctx, sql, workspaceID, escapeLike(foldedQuery), limit)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "search messages")
	}
	defer rows.Close()
	return scanMessages(rows)
}

func scanMessages(rows repokit.Rows) ([]domain.Message, error) {
	var out []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Body, &m.CreatedAt); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "scan message")
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// escapeLike neutralizes LIKE wildcards in user input
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
