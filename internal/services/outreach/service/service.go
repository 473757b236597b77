// Package service contains outreach sending workflows
package service

import (
	"context"
	"time"

	"adrata/internal/adapters/mail"
	"adrata/internal/core/normalize"
	"adrata/internal/modkit/repokit"
	perr "adrata/internal/platform/errors"
	"adrata/internal/platform/logger"
	ptime "adrata/internal/platform/time"
	"adrata/internal/services/outreach/domain"
	"adrata/internal/services/outreach/repo"

	"github.com/google/uuid"
)

const defaultLogLimit = 100

// Service defines the outreach service contract
type Service interface {
	domain.SendPort
}

// Svc implements the outreach service. Delivery tries the primary provider
// once, then the fallback once. There is deliberately no retry loop: outreach
// sequences re-evaluate failed steps on their own schedule, and a duplicate
// cold email costs more goodwill than a late one
type Svc struct {
	Repo     repo.Repo
	binder   repokit.Binder[repo.Repo]
	db       repokit.TxRunner
	primary  mail.Sender
	fallback mail.Sender
	log      logger.Logger
	newID    func() string
	nowFunc  func() time.Time
}

// New constructs an outreach service
// fallback may be nil when only one provider is configured
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], primary, fallback mail.Sender) *Svc {
	if db == nil {
		panic("outreach.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("outreach.Service requires a non nil Repo binder")
	}
	if primary == nil {
		panic("outreach.Service requires a primary Sender")
	}
	return &Svc{
		Repo:     repokit.MustBind(binder, db),
		binder:   binder,
		db:       db,
		primary:  primary,
		fallback: fallback,
		log:      *logger.Named("outreach"),
		newID:    func() string { return uuid.NewString() },
		nowFunc:  ptime.NowUTC,
	}
}

// SendEmail delivers one message, recording every provider attempt in the
// email log: a fallback delivery leaves the refused primary row next to the
// accepted one
func (s *Svc) SendEmail(ctx context.Context, in domain.SendEmailInput) (domain.EmailLog, error) {
	if in.HTML == "" && in.Text == "" {
		return domain.EmailLog{}, perr.InvalidArgf("email requires html or text content")
	}

	msg := mail.Message{
		From:    in.From,
		To:      in.To,
		CC:      in.CC,
		BCC:     in.BCC,
		Subject: normalize.Sanitize(in.Subject),
		HTML:    in.HTML,
		Text:    in.Text,
	}

	entry, sendErr, logErr := s.attempt(ctx, in, msg, s.primary)
	if sendErr == nil {
		// the mail is out; a log write failure surfaces but keeps the entry
		return entry, logErr
	}
	// validation errors would fail identically on the fallback
	if perr.IsCode(sendErr, perr.ErrorCodeInvalidArgument) || s.fallback == nil {
		return domain.EmailLog{}, sendErr
	}

	s.log.Warn().Err(sendErr).
		Str("provider", s.primary.Name()).
		Str("fallback", s.fallback.Name()).
		Msg("primary provider failed, trying fallback")

	entry, ferr, logErr := s.attempt(ctx, in, msg, s.fallback)
	if ferr == nil {
		return entry, logErr
	}
	return domain.EmailLog{}, perr.Wrapf(ferr, perr.ErrorCodeUnavailable,
		"all providers failed, primary: %v", sendErr)
}

// attempt sends through one provider and writes that attempt's log row,
// success or failure alike
func (s *Svc) attempt(
	ctx context.Context,
	in domain.SendEmailInput,
	msg mail.Message,
	p mail.Sender,
) (entry domain.EmailLog, sendErr, logErr error) {
	entry = domain.EmailLog{
		ID:          s.newID(),
		WorkspaceID: in.WorkspaceID,
		Provider:    p.Name(),
		FromAddr:    in.From,
		ToAddrs:     in.To,
		Subject:     msg.Subject,
		CreatedAt:   s.nowFunc(),
	}

	id, sendErr := p.Send(ctx, msg)
	if sendErr != nil {
		entry.Status = domain.StatusFailed
		entry.Error = sendErr.Error()
		if err := s.Repo.InsertLog(ctx, entry); err != nil {
			s.log.Error().Err(err).Msg("email log write failed after delivery failure")
		}
		return domain.EmailLog{}, sendErr, nil
	}

	entry.ProviderMsgID = id
	entry.Status = domain.StatusSent
	return entry, nil, s.Repo.InsertLog(ctx, entry)
}

// ListLog pages the delivery log for a workspace
func (s *Svc) ListLog(ctx context.Context, in domain.ListLogInput) ([]domain.EmailLog, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultLogLimit
	}
	return s.Repo.ListLog(ctx, in.WorkspaceID, limit)
}
