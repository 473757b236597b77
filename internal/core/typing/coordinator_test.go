package typing

import (
	"strings"
	"sync"
	"testing"
	"time"
)

// recorder captures signal emissions with timestamps so tests can assert on
// both counts and spacing
type recorder struct {
	mu     sync.Mutex
	events []string
	times  []time.Time
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnStartTyping: func() { r.add("start") },
		OnStopTyping:  func() { r.add("stop") },
	}
}

func (r *recorder) add(ev string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	r.times = append(r.times, time.Now())
}

func (r *recorder) counts() (starts, stops int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ev := range r.events {
		if ev == "start" {
			starts++
		} else {
			stops++
		}
	}
	return starts, stops
}

func (r *recorder) sequence() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.events, ",")
}

func (r *recorder) startTimes() []time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []time.Time
	for i, ev := range r.events {
		if ev == "start" {
			out = append(out, r.times[i])
		}
	}
	return out
}

// fast timer settings so the suite stays quick; generous enough that
// scheduler jitter cannot reorder them
func fastOpts() Options {
	return Options{
		Debounce: 40 * time.Millisecond,
		Throttle: 250 * time.Millisecond,
		AutoStop: 400 * time.Millisecond,
	}
}

// waitFor polls cond until it holds or the deadline passes
func waitFor(t *testing.T, d time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestCoordinator_Idle_EmitsNothing(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	c := New(rec.callbacks(), fastOpts())
	defer c.Close()

	time.Sleep(fastOpts().AutoStop + 100*time.Millisecond)

	if starts, stops := rec.counts(); starts != 0 || stops != 0 {
		t.Fatalf("idle coordinator emitted signals: starts=%d stops=%d", starts, stops)
	}
	if c.IsTyping() {
		t.Fatal("idle coordinator reports typing")
	}
}

func TestCoordinator_Burst_CoalescesToOneStart(t *testing.T) {
	t.Parallel()

	opts := fastOpts()
	rec := &recorder{}
	c := New(rec.callbacks(), opts)
	defer c.Close()

	// rapid burst well inside the debounce delay
	for i := 0; i < 5; i++ {
		c.Keystroke()
		time.Sleep(5 * time.Millisecond)
	}

	if !waitFor(t, time.Second, func() bool { s, _ := rec.counts(); return s == 1 }) {
		s, _ := rec.counts()
		t.Fatalf("expected exactly 1 start after burst, got %d", s)
	}
	if !c.IsTyping() {
		t.Fatal("expected typing after start signal")
	}

	// silence runs the auto-stop down
	if !waitFor(t, 2*time.Second, func() bool { _, st := rec.counts(); return st == 1 }) {
		_, st := rec.counts()
		t.Fatalf("expected exactly 1 stop after inactivity, got %d", st)
	}
	if got := rec.sequence(); got != "start,stop" {
		t.Fatalf("unexpected signal sequence %q", got)
	}
	if c.IsTyping() {
		t.Fatal("still typing after auto-stop")
	}
}

func TestCoordinator_SubDebounceBurst_NeverStarts(t *testing.T) {
	t.Parallel()

	opts := fastOpts()
	rec := &recorder{}
	c := New(rec.callbacks(), opts)

	// two keystrokes then a synchronous stop before the debounce elapses
	c.Keystroke()
	time.Sleep(5 * time.Millisecond)
	c.Keystroke()
	c.ForceStop()

	time.Sleep(opts.AutoStop + 100*time.Millisecond)

	if starts, stops := rec.counts(); starts != 0 || stops != 0 {
		t.Fatalf("aborted burst emitted signals: starts=%d stops=%d", starts, stops)
	}
	c.Close()
}

func TestCoordinator_Sustained_KeepAlivePerThrottleWindow(t *testing.T) {
	t.Parallel()

	opts := fastOpts()
	rec := &recorder{}
	c := New(rec.callbacks(), opts)
	defer c.Close()

	// type steadily for ~1s at 50ms intervals
	for i := 0; i < 20; i++ {
		c.Keystroke()
		time.Sleep(50 * time.Millisecond)
	}

	// then go quiet until the auto-stop lands
	if !waitFor(t, 2*time.Second, func() bool { _, st := rec.counts(); return st == 1 }) {
		_, st := rec.counts()
		t.Fatalf("expected exactly 1 stop after sustained typing, got %d", st)
	}

	starts, stops := rec.counts()
	if stops != 1 {
		t.Fatalf("expected single stop, got %d", stops)
	}
	// first start at ~debounce, then roughly one per throttle window:
	// far fewer than the 20 keystrokes, but more than one
	if starts < 2 || starts > 6 {
		t.Fatalf("expected a handful of throttled starts, got %d", starts)
	}

	// consecutive starts must be spaced by at least the throttle window
	times := rec.startTimes()
	for i := 1; i < len(times); i++ {
		if gap := times[i].Sub(times[i-1]); gap < opts.Throttle {
			t.Fatalf("starts %d and %d only %v apart, throttle is %v", i-1, i, gap, opts.Throttle)
		}
	}
}

func TestCoordinator_ForceStop_IsSynchronousAndIdempotent(t *testing.T) {
	t.Parallel()

	opts := fastOpts()
	rec := &recorder{}
	c := New(rec.callbacks(), opts)
	defer c.Close()

	c.Keystroke()
	if !waitFor(t, time.Second, c.IsTyping) {
		t.Fatal("start signal never fired")
	}

	c.ForceStop()

	// stop must be visible immediately, not after a timer
	if _, stops := rec.counts(); stops != 1 {
		t.Fatalf("expected synchronous stop, got %d", stops)
	}
	if c.IsTyping() {
		t.Fatal("typing still set after ForceStop")
	}

	// a second ForceStop is a no-op
	c.ForceStop()
	if _, stops := rec.counts(); stops != 1 {
		t.Fatalf("ForceStop not idempotent, stops=%d", stops)
	}

	// no stray timer fires later
	time.Sleep(opts.AutoStop + 100*time.Millisecond)
	if starts, stops := rec.counts(); starts != 1 || stops != 1 {
		t.Fatalf("stale timer fired after ForceStop: starts=%d stops=%d", starts, stops)
	}
}

func TestCoordinator_StopNeverPrecedesStart(t *testing.T) {
	t.Parallel()

	opts := fastOpts()
	rec := &recorder{}
	c := New(rec.callbacks(), opts)
	defer c.Close()

	// churn through several episodes with interleaved forced stops
	for i := 0; i < 3; i++ {
		c.Keystroke()
		waitFor(t, time.Second, c.IsTyping)
		c.ForceStop()
	}

	seq := rec.sequence()
	if seq == "" {
		t.Fatal("no signals recorded")
	}
	prev := ""
	for _, ev := range strings.Split(seq, ",") {
		if ev == "stop" && prev != "start" {
			t.Fatalf("stop without preceding start in %q", seq)
		}
		prev = ev
	}
	if prev != "stop" {
		t.Fatalf("episode left open in %q", seq)
	}
}

func TestCoordinator_Reset_ClearsLastSignal(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	c := New(rec.callbacks(), fastOpts())
	defer c.Close()

	c.Keystroke()
	if !waitFor(t, time.Second, c.IsTyping) {
		t.Fatal("start signal never fired")
	}
	if c.LastSignalAt().IsZero() {
		t.Fatal("LastSignalAt zero while typing")
	}

	c.Reset()

	if _, stops := rec.counts(); stops != 1 {
		t.Fatalf("Reset should stop the active episode, stops=%d", stops)
	}
	if !c.LastSignalAt().IsZero() {
		t.Fatal("Reset did not clear LastSignalAt")
	}

	// the session is reusable after a reset
	c.Keystroke()
	if !waitFor(t, time.Second, c.IsTyping) {
		t.Fatal("coordinator dead after Reset")
	}
}

func TestCoordinator_Close_StopsAndGoesInert(t *testing.T) {
	t.Parallel()

	opts := fastOpts()
	rec := &recorder{}
	c := New(rec.callbacks(), opts)

	c.Keystroke()
	if !waitFor(t, time.Second, c.IsTyping) {
		t.Fatal("start signal never fired")
	}

	c.Close()

	if starts, stops := rec.counts(); starts != 1 || stops != 1 {
		t.Fatalf("Close should emit one stop: starts=%d stops=%d", starts, stops)
	}

	// inert afterwards
	c.Close()
	c.Keystroke()
	c.ForceStop()
	time.Sleep(opts.AutoStop + 100*time.Millisecond)

	if starts, stops := rec.counts(); starts != 1 || stops != 1 {
		t.Fatalf("closed coordinator emitted signals: starts=%d stops=%d", starts, stops)
	}
}

func TestCoordinator_NilCallbacks_DoNotPanic(t *testing.T) {
	t.Parallel()

	c := New(Callbacks{}, fastOpts())
	defer c.Close()

	c.Keystroke()
	if !waitFor(t, time.Second, c.IsTyping) {
		t.Fatal("start never happened with nil callbacks")
	}
	c.ForceStop()
}

func TestOptions_ZeroValuesGetDefaults(t *testing.T) {
	t.Parallel()

	o := Options{}.withDefaults()
	if o.Debounce != DefaultDebounce || o.Throttle != DefaultThrottle || o.AutoStop != DefaultAutoStop {
		t.Fatalf("defaults not applied: %+v", o)
	}

	custom := Options{Debounce: time.Millisecond}.withDefaults()
	if custom.Debounce != time.Millisecond {
		t.Fatalf("explicit debounce overwritten: %v", custom.Debounce)
	}
	if custom.Throttle != DefaultThrottle {
		t.Fatalf("unset throttle not defaulted: %v", custom.Throttle)
	}
}
