// Package timer measures the running time of a lane across pauses.
package timer

import (
	"sync"
	"time"
)

// State is the lifecycle position of a Timer.
type State int

const (
	Idle State = iota
	Running
	Paused
	Finished
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	default:
		return "idle"
	}
}

// Timer accumulates elapsed running time. Time spent paused is never counted.
//
// Start sets accumulated=0 and start=now. Pause stores accumulated=now-start.
// Resume shifts start to now-accumulated so the next reading continues where
// the paused one stopped.
type Timer struct {
	mu    sync.Mutex
	clock Clock

	state       State
	start       time.Time
	accumulated time.Duration
}

// Option configures a Timer.
type Option func(*Timer)

// WithClock sets the time source (default SystemClock).
func WithClock(c Clock) Option {
	return func(t *Timer) {
		t.clock = c
	}
}

// New creates an idle timer.
func New(opts ...Option) *Timer {
	t := &Timer{clock: SystemClock{}}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start (re)starts the timer from zero.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.accumulated = 0
	t.start = t.clock.Now()
	t.state = Running
}

// Pause freezes the reading. It is a no-op unless running.
func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != Running {
		return
	}
	t.accumulated = t.sinceStart()
	t.state = Paused
}

// Resume continues a paused timer. It is a no-op unless paused.
func (t *Timer) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != Paused {
		return
	}
	t.start = t.clock.Now().Add(-t.accumulated)
	t.state = Running
}

// Finish freezes the final reading; it stays readable until Stop or Start.
func (t *Timer) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == Running {
		t.accumulated = t.sinceStart()
	}
	t.state = Finished
}

// Stop resets the timer to zero.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.accumulated = 0
	t.state = Idle
}

// Elapsed returns the running time so far.
func (t *Timer) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.state {
	case Running:
		return t.sinceStart()
	case Paused, Finished:
		return t.accumulated
	default:
		return 0
	}
}

// State returns the current state.
func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Timer) sinceStart() time.Duration {
	d := t.clock.Now().Sub(t.start)
	if d < 0 {
		return 0
	}
	return d
}
