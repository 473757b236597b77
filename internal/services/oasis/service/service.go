// Package service contains Oasis messaging and typing workflows
package service

import (
	"context"
	"time"

	"adrata/internal/adapters/realtime"
	"adrata/internal/core/normalize"
	"adrata/internal/core/typing"
	"adrata/internal/modkit/repokit"
	perr "adrata/internal/platform/errors"
	"adrata/internal/platform/logger"
	"adrata/internal/platform/store"
	ptime "adrata/internal/platform/time"
	"adrata/internal/services/oasis/domain"
	"adrata/internal/services/oasis/repo"

	"github.com/google/uuid"
)

const (
	defaultListLimit   = 50
	defaultSearchLimit = 50
	publishTimeout     = 3 * time.Second
)

// Service defines the Oasis service contract
type Service interface {
	domain.MessagingPort
	domain.TypingPort
}

// Config tunes the typing coordinator; zero values use the package defaults
type Config struct {
	Debounce time.Duration
	Throttle time.Duration
	AutoStop time.Duration
}

// Svc implements the Oasis service
type Svc struct {
	Repo    repo.Repo
	binder  repokit.Binder[repo.Repo]
	db      repokit.TxRunner
	pub     realtime.Publisher
	typing  *typing.Registry
	norm    *normalize.Normalizer
	log     logger.Logger
	newID   func() string
	nowFunc func() time.Time
}

// New constructs an Oasis service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], pub realtime.Publisher, cfg Config) *Svc {
	if db == nil {
		panic("oasis.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("oasis.Service requires a non nil Repo binder")
	}
	if pub == nil {
		pub = realtime.Noop{}
	}
	s := &Svc{
		Repo:    repokit.MustBind(binder, db),
		binder:  binder,
		db:      db,
		pub:     pub,
		norm:    normalize.New(),
		log:     *logger.Named("oasis"),
		newID:   func() string { return uuid.NewString() },
		nowFunc: ptime.NowUTC,
	}
	s.typing = typing.NewRegistry(s.typingCallbacks, typing.Options{
		Debounce: cfg.Debounce,
		Throttle: cfg.Throttle,
		AutoStop: cfg.AutoStop,
	})
	return s
}

// Close tears down all typing sessions, flushing stop signals
func (s *Svc) Close() { s.typing.CloseAll() }

// CreateConversation opens a new thread in the workspace
func (s *Svc) CreateConversation(
	ctx context.Context,
	in domain.CreateConversationInput,
) (domain.Conversation, error) {
	kind := in.Kind
	if kind == "" {
		kind = "direct"
	}
	c := domain.Conversation{
		ID:          s.newID(),
		WorkspaceID: in.WorkspaceID,
		Subject:     normalize.Sanitize(in.Subject),
		Kind:        kind,
		CreatedAt:   s.nowFunc(),
	}
	c.UpdatedAt = c.CreatedAt
	if err := s.Repo.InsertConversation(ctx, c); err != nil {
		return domain.Conversation{}, err
	}
	return c, nil
}

// ListConversations returns the newest threads for a workspace
func (s *Svc) ListConversations(
	ctx context.Context,
	in domain.ListConversationsInput,
) ([]domain.Conversation, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.Repo.ListConversations(ctx, in.WorkspaceID, limit)
}

// SendMessage persists the message and bumps the conversation in one
// transaction, force-stops the sender's typing indicator and fans the message
// out over the relay. Sending a message always ends the
// typing episode: the stop signal rides ahead of (or with) the message event
// so peers never see "typing" after the message has landed
func (s *Svc) SendMessage(ctx context.Context, in domain.SendMessageInput) (domain.Message, error) {
	conv, err := s.Repo.GetConversation(ctx, in.ConversationID)
	if err != nil {
		return domain.Message{}, err
	}
	if conv.WorkspaceID != in.WorkspaceID {
		return domain.Message{}, perr.NotFoundf("conversation %s not found", in.ConversationID)
	}

	body := normalize.Sanitize(in.Body)
	if body == "" {
		return domain.Message{}, perr.InvalidArgf("message body is empty after sanitization")
	}
	m := domain.Message{
		ID:             s.newID(),
		ConversationID: in.ConversationID,
		SenderID:       in.SenderID,
		Body:           body,
		CreatedAt:      s.nowFunc(),
	}

	// the insert and the conversation bump land together: a visible message
	// always moves its thread to the top of the list. Runs inside the
	// workspace scope so RLS sees both writes
	err = store.RunInWorkspace(ctx, s.db, in.WorkspaceID, func(ctx context.Context, q store.RowQuerier) error {
		r := s.binder.Bind(q)
		if err := r.InsertMessage(ctx, m, s.norm.Normalize(body)); err != nil {
			return err
		}
		return r.TouchConversation(ctx, in.ConversationID, m.CreatedAt)
	})
	if err != nil {
		return domain.Message{}, err
	}

	// synchronous stop before the message event goes out
	s.typing.Stop(typing.Key{ConversationID: in.ConversationID, UserID: in.SenderID})

	s.publish(realtime.Event{
		Channel: channelFor(in.ConversationID),
		Name:    "message.sent",
		Data:    m,
	})
	return m, nil
}

// ListMessages pages a conversation newest first
func (s *Svc) ListMessages(ctx context.Context, in domain.ListMessagesInput) ([]domain.Message, error) {
	conv, err := s.Repo.GetConversation(ctx, in.ConversationID)
	if err != nil {
		return nil, err
	}
	if conv.WorkspaceID != in.WorkspaceID {
		return nil, perr.NotFoundf("conversation %s not found", in.ConversationID)
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.Repo.ListMessages(ctx, in.ConversationID, limit, in.Before)
}

// SearchMessages runs a folded substring search across the workspace
func (s *Svc) SearchMessages(ctx context.Context, in domain.SearchInput) ([]domain.Message, error) {
	folded := normalize.Fold(in.Query)
	if folded == "" {
		return nil, perr.InvalidArgf("search query is empty after folding")
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	return s.Repo.SearchMessages(ctx, in.WorkspaceID, folded, limit)
}

// Keystroke feeds one composer input event into the typing coordinator
// the coordinator decides whether anything is emitted
func (s *Svc) Keystroke(_ context.Context, in domain.TypingInput) error {
	s.typing.Keystroke(typing.Key{ConversationID: in.ConversationID, UserID: in.UserID})
	return nil
}

// StopTyping ends the composer's typing episode immediately, used when the
// composer clears the draft or the client blurs the input
func (s *Svc) StopTyping(_ context.Context, in domain.TypingInput) error {
	s.typing.Stop(typing.Key{ConversationID: in.ConversationID, UserID: in.UserID})
	return nil
}

// ResetTyping stops the episode and forgets the session's signal history,
// used when the composer switches conversations
func (s *Svc) ResetTyping(_ context.Context, in domain.TypingInput) error {
	s.typing.Reset(typing.Key{ConversationID: in.ConversationID, UserID: in.UserID})
	return nil
}

// ActiveTypers reports who currently shows an indicator in the conversation
func (s *Svc) ActiveTypers(_ context.Context, q domain.TypersQuery) (domain.TypersRow, error) {
	ids := s.typing.Typing(q.ConversationID)
	if ids == nil {
		ids = []string{}
	}
	return domain.TypersRow{ConversationID: q.ConversationID, UserIDs: ids}, nil
}

// SweepTyping evicts sessions idle for longer than the given duration
// main runs this on a ticker so abandoned composers don't pile up
func (s *Svc) SweepTyping(idle time.Duration) int { return s.typing.Sweep(idle) }

// typingCallbacks builds the relay emission pair for one session. The
// coordinator invokes these under its session lock, so the actual publish is
// pushed onto a goroutine and never blocks the timer path
func (s *Svc) typingCallbacks(k typing.Key) typing.Callbacks {
	payload := map[string]string{"user_id": k.UserID, "conversation_id": k.ConversationID}
	return typing.Callbacks{
		OnStartTyping: func() {
			go s.publish(realtime.Event{Channel: channelFor(k.ConversationID), Name: "typing.start", Data: payload})
		},
		OnStopTyping: func() {
			go s.publish(realtime.Event{Channel: channelFor(k.ConversationID), Name: "typing.stop", Data: payload})
		},
	}
}

// publish delivers one event, logging and dropping on failure. The relay
// client already retries transient failures; a signal that still cannot
// land is stale by the next throttle window anyway
func (s *Svc) publish(ev realtime.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := s.pub.Publish(ctx, ev); err != nil {
		s.log.Warn().Err(err).Str("channel", ev.Channel).Str("event", ev.Name).Msg("relay publish dropped")
	}
}

func channelFor(conversationID string) string { return "conversation." + conversationID }
