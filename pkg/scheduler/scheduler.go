// Package scheduler advances a set of steppers under one cooperative clock.
//
// A Scheduler owns ordered lanes, each pairing a stepper with its own timer.
// Every Tick steps each active lane exactly once, in registration order.
// Control calls (Start, Pause, Resume, Stop) only change the run state and
// the lane timers; they never touch stepper state, so a paused run resumes
// exactly where it left off.
package scheduler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
	"github.com/aretw0/stepwise/pkg/timer"
)

// Pacing controls the delay between ticks of Run:
// max(Min, Base - active*Decay).
type Pacing struct {
	Base  time.Duration `yaml:"base" json:"base"`
	Min   time.Duration `yaml:"min" json:"min"`
	Decay time.Duration `yaml:"decay" json:"decay"`
}

// DefaultPacing returns 400ms base, 100ms floor, 30ms per active lane.
func DefaultPacing() Pacing {
	return Pacing{Base: 400 * time.Millisecond, Min: 100 * time.Millisecond, Decay: 30 * time.Millisecond}
}

// Interval returns the tick delay for the given number of active lanes.
func (p Pacing) Interval(active int) time.Duration {
	return max(p.Min, p.Base-time.Duration(active)*p.Decay)
}

// Frame is what one lane produced during one tick.
type Frame struct {
	Lane    string        `json:"lane"`
	Step    domain.Step   `json:"step"`
	Elapsed time.Duration `json:"elapsed"`
}

type lane struct {
	name    string
	stepper ports.Stepper
	timer   *timer.Timer
	last    *domain.Step
	steps   int
	done    bool
}

// LaneStatus is a read-only view of one lane.
type LaneStatus struct {
	Name      string             `json:"name"`
	Algorithm domain.AlgorithmID `json:"algorithm"`
	Steps     int                `json:"steps"`
	Done      bool               `json:"done"`
	Elapsed   time.Duration      `json:"elapsed"`
	Last      *domain.Step       `json:"last,omitempty"`
}

// Scheduler drives lanes through the Idle, Running, Paused, Stopped and
// Finished states. It is safe for concurrent use: a mutex serializes control
// calls with ticks, so a pause never lands in the middle of a step.
type Scheduler struct {
	mu     sync.Mutex
	state  domain.RunState
	lanes  []*lane
	pacing Pacing
	clock  timer.Clock
	logger *slog.Logger

	wake chan struct{}
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithPacing sets the Run loop pacing.
func WithPacing(p Pacing) Option {
	return func(s *Scheduler) {
		s.pacing = p
	}
}

// WithClock sets the clock used by lane timers.
func WithClock(c timer.Clock) Option {
	return func(s *Scheduler) {
		s.clock = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = l
	}
}

// New creates an idle scheduler with no lanes.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		state:  domain.StateIdle,
		pacing: DefaultPacing(),
		clock:  timer.SystemClock{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		wake:   make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "scheduler")
	return s
}

// AddLane registers a stepper under name. Lanes can only be added while idle.
func (s *Scheduler) AddLane(name string, st ports.Stepper) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.StateIdle {
		return fmt.Errorf("%w: cannot add lane while %s", domain.ErrInvalidTransition, s.state)
	}
	s.lanes = append(s.lanes, &lane{
		name:    name,
		stepper: st,
		timer:   timer.New(timer.WithClock(s.clock)),
	})
	return nil
}

// State returns the current run state.
func (s *Scheduler) State() domain.RunState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start moves an idle scheduler to Running and starts every lane timer.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.transition(domain.StateRunning, domain.StateIdle); err != nil {
		return err
	}
	for _, l := range s.lanes {
		if !l.done {
			l.timer.Start()
		}
	}
	return nil
}

// Pause suspends ticking and freezes the lane timers.
func (s *Scheduler) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.transition(domain.StatePaused, domain.StateRunning); err != nil {
		return err
	}
	for _, l := range s.lanes {
		l.timer.Pause()
	}
	return nil
}

// Resume continues a paused scheduler.
func (s *Scheduler) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.transition(domain.StateRunning, domain.StatePaused); err != nil {
		return err
	}
	for _, l := range s.lanes {
		l.timer.Resume()
	}
	return nil
}

// TogglePause pauses a running scheduler or resumes a paused one.
func (s *Scheduler) TogglePause() error {
	switch s.State() {
	case domain.StateRunning:
		return s.Pause()
	case domain.StatePaused:
		return s.Resume()
	default:
		return fmt.Errorf("%w: cannot toggle pause while %s", domain.ErrInvalidTransition, s.State())
	}
}

// Stop halts the run from any state, discards the lanes and resets their
// timers. Stopping a stopped scheduler is a no-op.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.StateStopped {
		return nil
	}
	for _, l := range s.lanes {
		l.timer.Stop()
	}
	s.lanes = nil
	return s.transition(domain.StateStopped,
		domain.StateIdle, domain.StateRunning, domain.StatePaused, domain.StateFinished)
}

// Reset returns a stopped or finished scheduler to Idle with no lanes.
func (s *Scheduler) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.transition(domain.StateIdle, domain.StateStopped, domain.StateFinished); err != nil {
		return err
	}
	for _, l := range s.lanes {
		l.timer.Stop()
	}
	s.lanes = nil
	return nil
}

// Tick steps every active lane once, in registration order. Lanes that emit
// a terminal step leave the active set and their timer is frozen. When no
// active lane remains the scheduler becomes Finished. Tick does nothing
// unless the scheduler is Running.
func (s *Scheduler) Tick() []Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.StateRunning {
		return nil
	}

	var frames []Frame
	for _, l := range s.lanes {
		if l.done {
			continue
		}
		st := l.stepper.Step()
		l.steps++
		last := st.Clone()
		l.last = &last
		if st.Terminal {
			l.done = true
			l.timer.Finish()
			s.logger.Debug("lane finished", "lane", l.name, "steps", l.steps, "elapsed", l.timer.Elapsed())
		}
		frames = append(frames, Frame{Lane: l.name, Step: st, Elapsed: l.timer.Elapsed()})
	}

	if s.active() == 0 {
		_ = s.transition(domain.StateFinished, domain.StateRunning)
	}
	return frames
}

// Active returns the number of lanes that have not finished.
func (s *Scheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active()
}

// Interval returns the current delay between ticks of Run.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pacing.Interval(s.active())
}

// Lanes returns a snapshot of every lane in registration order.
func (s *Scheduler) Lanes() []LaneStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LaneStatus, 0, len(s.lanes))
	for _, l := range s.lanes {
		ls := LaneStatus{
			Name:      l.name,
			Algorithm: l.stepper.Algorithm(),
			Steps:     l.steps,
			Done:      l.done,
			Elapsed:   l.timer.Elapsed(),
		}
		if l.last != nil {
			last := l.last.Clone()
			ls.Last = &last
		}
		out = append(out, ls)
	}
	return out
}

// Run ticks the scheduler until it is Stopped or Finished, or ctx is done.
// It sleeps for Interval between ticks, also while paused or idle, and
// passes every non-empty tick to emit.
func (s *Scheduler) Run(ctx context.Context, emit func([]Frame)) error {
	s.logger.Debug("run loop started")
	for {
		switch s.State() {
		case domain.StateStopped, domain.StateFinished:
			s.logger.Debug("run loop exiting", "state", s.State())
			return nil
		}

		t := time.NewTimer(s.Interval())
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-s.wake:
			t.Stop()
			continue
		case <-t.C:
		}

		if frames := s.Tick(); len(frames) > 0 && emit != nil {
			emit(frames)
		}
	}
}

func (s *Scheduler) active() int {
	n := 0
	for _, l := range s.lanes {
		if !l.done {
			n++
		}
	}
	return n
}

// transition moves to `to` if the current state is one of from.
// Callers hold s.mu.
func (s *Scheduler) transition(to domain.RunState, from ...domain.RunState) error {
	for _, f := range from {
		if s.state == f {
			s.logger.Debug("state change", "from", s.state, "to", to)
			s.state = to
			s.notify()
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, s.state, to)
}

// notify wakes a Run loop sleeping on the old state.
func (s *Scheduler) notify() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}
