package typing

import (
	"sync"
	"time"
)

// Key identifies one typing session: one user composing in one conversation
type Key struct {
	ConversationID string
	UserID         string
}

// CallbackFactory builds the signal callbacks for a new session. It is called
// at most once per key while the session lives in the registry
type CallbackFactory func(k Key) Callbacks

// Registry multiplexes coordinators across conversations and users. Sessions
// are created lazily on the first keystroke and torn down by Remove, Sweep or
// CloseAll. The registry lock only guards the map; signal emission happens on
// the coordinator's own lock, so a slow callback in one session never stalls
// another
type Registry struct {
	mu       sync.Mutex
	opts     Options
	factory  CallbackFactory
	sessions map[Key]*Coordinator
}

// NewRegistry returns an empty registry
// a nil factory yields sessions with no-op callbacks
func NewRegistry(factory CallbackFactory, opts Options) *Registry {
	if factory == nil {
		factory = func(Key) Callbacks { return Callbacks{} }
	}
	return &Registry{
		opts:     opts.withDefaults(),
		factory:  factory,
		sessions: make(map[Key]*Coordinator),
	}
}

// Keystroke routes one input event to the session for k, creating it if needed
func (r *Registry) Keystroke(k Key) {
	r.session(k).Keystroke()
}

// Stop force-stops the session for k if it exists. The session stays
// registered so a following keystroke reuses it
func (r *Registry) Stop(k Key) {
	r.mu.Lock()
	c := r.sessions[k]
	r.mu.Unlock()
	if c != nil {
		c.ForceStop()
	}
}

// Reset resets the session for k if it exists
func (r *Registry) Reset(k Key) {
	r.mu.Lock()
	c := r.sessions[k]
	r.mu.Unlock()
	if c != nil {
		c.Reset()
	}
}

// Remove closes and forgets the session for k
func (r *Registry) Remove(k Key) {
	r.mu.Lock()
	c := r.sessions[k]
	delete(r.sessions, k)
	r.mu.Unlock()
	if c != nil {
		c.Close()
	}
}

// Typing returns the ids of users with an active start signal in the given
// conversation. Order is unspecified
func (r *Registry) Typing(conversationID string) []string {
	r.mu.Lock()
	peers := make(map[string]*Coordinator, len(r.sessions))
	for k, c := range r.sessions {
		if k.ConversationID == conversationID {
			peers[k.UserID] = c
		}
	}
	r.mu.Unlock()

	var out []string
	for id, c := range peers {
		if c.IsTyping() {
			out = append(out, id)
		}
	}
	return out
}

// Sweep closes and removes sessions that are not typing and have been idle
// for at least the given duration. Returns the number removed
func (r *Registry) Sweep(idle time.Duration) int {
	r.mu.Lock()
	var victims []*Coordinator
	for k, c := range r.sessions {
		if c.IdleFor(idle) {
			victims = append(victims, c)
			delete(r.sessions, k)
		}
	}
	r.mu.Unlock()

	for _, c := range victims {
		c.Close()
	}
	return len(victims)
}

// CloseAll tears down every session, emitting stop for any active indicator
func (r *Registry) CloseAll() {
	r.mu.Lock()
	all := make([]*Coordinator, 0, len(r.sessions))
	for _, c := range r.sessions {
		all = append(all, c)
	}
	r.sessions = make(map[Key]*Coordinator)
	r.mu.Unlock()

	for _, c := range all {
		c.Close()
	}
}

// Len reports the number of live sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) session(k Key) *Coordinator {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.sessions[k]
	if c == nil {
		c = New(r.factory(k), r.opts)
		r.sessions[k] = c
	}
	return c
}
