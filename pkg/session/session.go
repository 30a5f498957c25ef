package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/stepwise/pkg/catalogue"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/scheduler"
	"github.com/aretw0/stepwise/pkg/timer"
)

// Session is a comparison run: one lane per algorithm, all driven by one
// scheduler. A single-algorithm run is a session with one lane.
type Session struct {
	id         string
	createdAt  time.Time
	catalogue  *catalogue.Catalogue
	algorithms []domain.AlgorithmID
	base       domain.Dataset
	params     domain.Params

	sched   *scheduler.Scheduler
	pacing  scheduler.Pacing
	clock   timer.Clock
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	mu      sync.Mutex
	reached domain.RunState
}

// Option configures a Session.
type Option func(*Session)

// WithHooks sets the lifecycle hooks.
func WithHooks(h domain.LifecycleHooks) Option {
	return func(s *Session) {
		s.hooks = h
	}
}

// WithPacing sets the pacing of Run.
func WithPacing(p scheduler.Pacing) Option {
	return func(s *Session) {
		s.pacing = p
	}
}

// WithClock sets the clock used by lane timers and summaries.
func WithClock(c timer.Clock) Option {
	return func(s *Session) {
		s.clock = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// New builds an idle session running algorithms over base.
//
// Every lane gets its own copy of base. Binary search lanes receive a copy
// sorted in the requested direction; every other lane sees base unchanged.
func New(cat *catalogue.Catalogue, id string, base *domain.Dataset, params domain.Params, algorithms []domain.AlgorithmID, opts ...Option) (*Session, error) {
	if base == nil {
		return nil, domain.ErrNoDataset
	}
	if len(algorithms) == 0 {
		return nil, fmt.Errorf("%w: no algorithm selected", domain.ErrUnknownAlgorithm)
	}
	s := &Session{
		id:         id,
		catalogue:  cat,
		algorithms: slices.Clone(algorithms),
		base:       base.Clone(),
		params:     params,
		pacing:     scheduler.DefaultPacing(),
		clock:      timer.SystemClock{},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		reached:    domain.StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "session", "session_id", id)
	s.createdAt = s.clock.Now()

	sched, err := s.build()
	if err != nil {
		return nil, err
	}
	s.sched = sched
	return s, nil
}

// build creates a scheduler with one fresh lane per algorithm.
func (s *Session) build() (*scheduler.Scheduler, error) {
	sched := scheduler.New(
		scheduler.WithPacing(s.pacing),
		scheduler.WithClock(s.clock),
		scheduler.WithLogger(s.logger),
	)
	names := LaneNames(s.algorithms)
	for i, id := range s.algorithms {
		data := laneData(id, s.base, s.params.Direction)
		st, err := s.catalogue.Instantiate(id, &data, s.params)
		if err != nil {
			return nil, err
		}
		if err := sched.AddLane(names[i], st); err != nil {
			return nil, err
		}
	}
	return sched, nil
}

// laneData returns the dataset a lane of id starts from.
func laneData(id domain.AlgorithmID, base domain.Dataset, dir domain.Direction) domain.Dataset {
	data := base.Clone()
	if id == domain.BinarySearch && !data.IsGrid() {
		slices.SortStableFunc(data.Values, func(a, b int) int {
			switch {
			case dir.Before(a, b):
				return -1
			case dir.Before(b, a):
				return 1
			}
			return 0
		})
	}
	return data
}

// LaneNames names one lane per algorithm after its identifier. Repeated
// algorithms get a numeric suffix ("bubble_sort", "bubble_sort#2").
func LaneNames(algorithms []domain.AlgorithmID) []string {
	seen := make(map[domain.AlgorithmID]int)
	names := make([]string, len(algorithms))
	for i, id := range algorithms {
		seen[id]++
		if n := seen[id]; n > 1 {
			names[i] = fmt.Sprintf("%s#%d", id, n)
		} else {
			names[i] = string(id)
		}
	}
	return names
}

func (s *Session) ID() string                       { return s.id }
func (s *Session) CreatedAt() time.Time             { return s.createdAt }
func (s *Session) Params() domain.Params            { return s.params }
func (s *Session) Algorithms() []domain.AlgorithmID { return slices.Clone(s.algorithms) }

// Dataset returns a copy of the data the session was created with.
func (s *Session) Dataset() domain.Dataset {
	return s.base.Clone()
}

// State returns the run state.
func (s *Session) State() domain.RunState {
	return s.scheduler().State()
}

// Done reports whether every lane reached its terminal step.
func (s *Session) Done() bool {
	return s.State() == domain.StateFinished
}

// Lanes returns the status of every lane.
func (s *Session) Lanes() []scheduler.LaneStatus {
	return s.scheduler().Lanes()
}

// Interval returns the current tick delay used by Run.
func (s *Session) Interval() time.Duration {
	return s.scheduler().Interval()
}

// Start begins the run. Starting a stopped or finished session rebuilds
// every lane from the original data first.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	switch s.sched.State() {
	case domain.StateStopped, domain.StateFinished:
		sched, err := s.build()
		if err != nil {
			s.mu.Unlock()
			return err
		}
		s.sched = sched
		s.reached = domain.StateIdle
	}
	sched := s.sched
	s.mu.Unlock()

	err := sched.Start()
	s.sync(ctx)
	return err
}

// Pause suspends the run.
func (s *Session) Pause(ctx context.Context) error {
	return s.control(ctx, (*scheduler.Scheduler).Pause)
}

// Resume continues a paused run.
func (s *Session) Resume(ctx context.Context) error {
	return s.control(ctx, (*scheduler.Scheduler).Resume)
}

// TogglePause pauses a running session or resumes a paused one.
func (s *Session) TogglePause(ctx context.Context) error {
	return s.control(ctx, (*scheduler.Scheduler).TogglePause)
}

// Stop halts the run and discards the lanes.
func (s *Session) Stop(ctx context.Context) error {
	return s.control(ctx, (*scheduler.Scheduler).Stop)
}

func (s *Session) control(ctx context.Context, fn func(*scheduler.Scheduler) error) error {
	err := fn(s.scheduler())
	s.sync(ctx)
	return err
}

// Tick advances every active lane by one step.
func (s *Session) Tick(ctx context.Context) []scheduler.Frame {
	frames := s.scheduler().Tick()
	s.observe(ctx, frames)
	return frames
}

// Run ticks the session until it stops, finishes or ctx is done. emit may
// be nil.
func (s *Session) Run(ctx context.Context, emit func([]scheduler.Frame)) error {
	return s.scheduler().Run(ctx, func(frames []scheduler.Frame) {
		s.observe(ctx, frames)
		if emit != nil {
			emit(frames)
		}
	})
}

func (s *Session) scheduler() *scheduler.Scheduler {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched
}

// observe reports the frames of one tick.
func (s *Session) observe(ctx context.Context, frames []scheduler.Frame) {
	now := s.clock.Now()
	for _, f := range frames {
		if s.hooks.OnStep != nil {
			s.hooks.OnStep(ctx, &domain.StepEvent{
				EventBase: s.event(domain.EventStep, now),
				Lane:      f.Lane,
				Step:      f.Step,
				Elapsed:   f.Elapsed,
			})
		}
		if f.Step.Terminal {
			s.logger.Debug("lane done", "lane", f.Lane, "steps", f.Step.Seq, "elapsed", f.Elapsed)
			if s.hooks.OnLaneDone != nil {
				s.hooks.OnLaneDone(ctx, &domain.LaneEvent{
					EventBase: s.event(domain.EventLaneDone, now),
					Summary:   s.summary(f, now),
				})
			}
		}
	}
	s.sync(ctx)
}

// sync reports a state change the scheduler made since the last call.
func (s *Session) sync(ctx context.Context) {
	s.mu.Lock()
	from, to := s.reached, s.sched.State()
	s.reached = to
	s.mu.Unlock()

	if from == to {
		return
	}
	s.logger.Info("state change", "from", from, "to", to)
	if s.hooks.OnStateChange != nil {
		s.hooks.OnStateChange(ctx, &domain.StateEvent{
			EventBase: s.event(domain.EventStateChange, s.clock.Now()),
			From:      from,
			To:        to,
		})
	}
}

func (s *Session) event(t domain.EventType, at time.Time) domain.EventBase {
	return domain.EventBase{Timestamp: at, Type: t, SessionID: s.id}
}

func (s *Session) summary(f scheduler.Frame, at time.Time) domain.RunSummary {
	sum := domain.RunSummary{
		SessionID:  s.id,
		Lane:       f.Lane,
		Algorithm:  f.Step.Algorithm,
		Steps:      f.Step.Seq,
		Elapsed:    f.Elapsed,
		Found:      f.Step.Found(),
		FinishedAt: at,
	}
	if f.Step.Result != nil {
		r := *f.Step.Result
		sum.Result = &r
	}
	return sum
}

// Status is a serializable view of a session.
type Status struct {
	ID         string                 `json:"id"`
	State      domain.RunState        `json:"state"`
	Algorithms []domain.AlgorithmID   `json:"algorithms"`
	Params     domain.Params          `json:"params"`
	Interval   time.Duration          `json:"interval"`
	CreatedAt  time.Time              `json:"created_at"`
	Lanes      []scheduler.LaneStatus `json:"lanes"`
}

// Status returns a snapshot of the session.
func (s *Session) Status() Status {
	return Status{
		ID:         s.id,
		State:      s.State(),
		Algorithms: s.Algorithms(),
		Params:     s.params,
		Interval:   s.Interval(),
		CreatedAt:  s.createdAt,
		Lanes:      s.Lanes(),
	}
}
