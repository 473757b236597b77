// Package typing converts a high-frequency stream of composition events into
// a low-frequency pair of start/stop signals suitable for a rate-limited
// realtime channel. It composes three timers: a debounce delay before the
// first start signal of a burst, a throttle window capping how often start is
// re-emitted while composition continues, and an auto-stop grace period that
// ends the session when input goes quiet
package typing

import (
	"sync"
	"time"
)

// Defaults mirror the Oasis composer behavior
const (
	DefaultDebounce = 300 * time.Millisecond
	DefaultThrottle = 2 * time.Second
	DefaultAutoStop = 3 * time.Second
)

// now is a seam for tests
var now = time.Now

// Options configures the coordinator timers
// zero values fall back to the defaults above
type Options struct {
	// Debounce is the delay after the first keystroke of a burst before
	// the start signal is emitted
	Debounce time.Duration

	// Throttle is the minimum spacing between consecutive start signals
	Throttle time.Duration

	// AutoStop is the inactivity period after which stop is emitted
	AutoStop time.Duration
}

func (o Options) withDefaults() Options {
	if o.Debounce <= 0 {
		o.Debounce = DefaultDebounce
	}
	if o.Throttle <= 0 {
		o.Throttle = DefaultThrottle
	}
	if o.AutoStop <= 0 {
		o.AutoStop = DefaultAutoStop
	}
	return o
}

// Callbacks are the only boundary of the coordinator. Both must be cheap and
// non-blocking; they run on the timer goroutine with the session lock held
// and must not call back into the coordinator. Delivery failures are the
// caller's concern, the coordinator only decides when to call
type Callbacks struct {
	OnStartTyping func()
	OnStopTyping  func()
}

// Coordinator owns one typing session. All operations and timer callbacks
// serialize on a single mutex, so no two callbacks ever run concurrently.
// Every superseding event cancels stale timers via per-timer generation
// counters before scheduling new ones, so a timer that lost the race to the
// lock can never fire against newer state
type Coordinator struct {
	mu   sync.Mutex
	opts Options
	cb   Callbacks

	typing       bool
	throttled    bool
	lastSignalAt time.Time
	lastEventAt  time.Time
	closed       bool

	debounce *time.Timer
	throttle *time.Timer
	autoStop *time.Timer

	debGen  uint64
	thrGen  uint64
	stopGen uint64
}

// New returns a coordinator in the idle state
// nil callbacks are replaced with no-ops
func New(cb Callbacks, opts Options) *Coordinator {
	if cb.OnStartTyping == nil {
		cb.OnStartTyping = func() {}
	}
	if cb.OnStopTyping == nil {
		cb.OnStopTyping = func() {}
	}
	return &Coordinator{opts: opts.withDefaults(), cb: cb}
}

// Keystroke records one composition input event. Bursts are coalesced by the
// debounce timer; inside an active throttle window only the auto-stop clock
// is refreshed and nothing is emitted
func (c *Coordinator) Keystroke() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.lastEventAt = now()

	c.cancelDebounceLocked()
	c.cancelAutoStopLocked()

	if c.typing && c.throttled {
		// still inside the throttle window; keep the session alive only
		c.scheduleAutoStopLocked()
		return
	}
	c.scheduleDebounceLocked()
}

// ForceStop cancels all pending timers and, when a start signal is active,
// emits the matching stop synchronously. Safe to call at any time
func (c *Coordinator) ForceStop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.forceStopLocked()
}

// Reset is ForceStop plus forgetting the last emission time, used when the
// composition target changes
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.forceStopLocked()
	c.lastSignalAt = time.Time{}
	c.lastEventAt = time.Time{}
}

// Close tears the session down: all timers cancelled, a pending start signal
// is closed with exactly one stop, and the coordinator becomes inert so the
// peer can never observe a stuck indicator
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.forceStopLocked()
	c.closed = true
}

// IsTyping reports whether a start signal is active without a matching stop
func (c *Coordinator) IsTyping() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.typing
}

// IsThrottled reports whether the throttle window is currently open
func (c *Coordinator) IsThrottled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.throttled
}

// LastSignalAt returns the time of the most recent start emission
func (c *Coordinator) LastSignalAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSignalAt
}

// IdleFor reports whether the session is not typing and has seen no
// keystroke or signal for at least d
func (c *Coordinator) IdleFor(d time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.typing {
		return false
	}
	if c.lastEventAt.IsZero() {
		return true
	}
	return now().Sub(c.lastEventAt) >= d
}

// internal, all called with c.mu held

func (c *Coordinator) forceStopLocked() {
	c.cancelDebounceLocked()
	c.cancelThrottleLocked()
	c.cancelAutoStopLocked()
	if c.typing {
		c.typing = false
		c.throttled = false
		c.cb.OnStopTyping()
	}
}

func (c *Coordinator) scheduleDebounceLocked() {
	c.debGen++
	gen := c.debGen
	c.debounce = time.AfterFunc(c.opts.Debounce, func() { c.debounceFired(gen) })
}

func (c *Coordinator) scheduleThrottleLocked() {
	c.thrGen++
	gen := c.thrGen
	c.throttle = time.AfterFunc(c.opts.Throttle, func() { c.throttleFired(gen) })
}

func (c *Coordinator) scheduleAutoStopLocked() {
	c.stopGen++
	gen := c.stopGen
	c.autoStop = time.AfterFunc(c.opts.AutoStop, func() { c.autoStopFired(gen) })
}

func (c *Coordinator) cancelDebounceLocked() {
	c.debGen++ // invalidate any in-flight callback
	if c.debounce != nil {
		c.debounce.Stop()
		c.debounce = nil
	}
}

func (c *Coordinator) cancelThrottleLocked() {
	c.thrGen++
	if c.throttle != nil {
		c.throttle.Stop()
		c.throttle = nil
	}
}

func (c *Coordinator) cancelAutoStopLocked() {
	c.stopGen++
	if c.autoStop != nil {
		c.autoStop.Stop()
		c.autoStop = nil
	}
}

// debounceFired emits the start signal. While composition is sustained the
// signal is re-emitted once per completed throttle window as a keep-alive;
// typing only flips on the first emission of an episode and a single stop
// closes the episode
func (c *Coordinator) debounceFired(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.debGen {
		return
	}
	c.debounce = nil

	c.typing = true
	c.throttled = true
	c.lastSignalAt = now()
	c.lastEventAt = c.lastSignalAt
	c.cb.OnStartTyping()

	c.scheduleThrottleLocked()
	c.scheduleAutoStopLocked()
}

func (c *Coordinator) throttleFired(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.thrGen {
		return
	}
	c.throttle = nil
	c.throttled = false
}

func (c *Coordinator) autoStopFired(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.stopGen {
		return
	}
	c.autoStop = nil
	if !c.typing {
		return
	}
	c.typing = false
	c.throttled = false
	c.cancelThrottleLocked()
	c.cb.OnStopTyping()
}
