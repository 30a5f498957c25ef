package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/aretw0/stepwise/internal/logging"
	"github.com/aretw0/stepwise/pkg/catalogue"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
	"github.com/aretw0/stepwise/pkg/scheduler"
	"github.com/aretw0/stepwise/pkg/timer"
)

// ErrUnknownAction is returned by Control for anything but
// start, pause, resume, toggle and stop.
var ErrUnknownAction = errors.New("unknown session action")

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager keeps the live sessions of a process, ensuring safe concurrent
// operations on each of them. Per-session locks are reference counted and
// dropped when unused.
type Manager struct {
	catalogue *catalogue.Catalogue
	store     ports.ResultStore

	mu       sync.Mutex            // Global lock for the maps
	locks    map[string]*lockEntry // Map of active locks
	sessions map[string]*Session

	running sync.WaitGroup

	hooks  domain.LifecycleHooks
	pacing scheduler.Pacing
	clock  timer.Clock
	newID  func() string
	logger *slog.Logger
}

// ManagerOption configures the Manager.
type ManagerOption func(*Manager)

// WithManagerLogger configures a logger for the Manager and its sessions.
func WithManagerLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithManagerHooks adds lifecycle hooks to every session the Manager creates.
func WithManagerHooks(h domain.LifecycleHooks) ManagerOption {
	return func(m *Manager) {
		m.hooks = m.hooks.Merge(h)
	}
}

// WithManagerPacing sets the pacing of new sessions.
func WithManagerPacing(p scheduler.Pacing) ManagerOption {
	return func(m *Manager) {
		m.pacing = p
	}
}

// WithManagerClock sets the clock of new sessions.
func WithManagerClock(c timer.Clock) ManagerOption {
	return func(m *Manager) {
		m.clock = c
	}
}

// WithIDGenerator replaces the random session IDs.
func WithIDGenerator(fn func() string) ManagerOption {
	return func(m *Manager) {
		m.newID = fn
	}
}

// NewManager creates a Manager. store may be nil, in which case finished
// lanes are not persisted.
func NewManager(cat *catalogue.Catalogue, store ports.ResultStore, opts ...ManagerOption) *Manager {
	m := &Manager{
		catalogue: cat,
		store:     store,
		locks:     make(map[string]*lockEntry),
		sessions:  make(map[string]*Session),
		pacing:    scheduler.DefaultPacing(),
		clock:     timer.SystemClock{},
		newID:     uuid.NewString,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Catalogue returns the catalogue sessions are built from.
func (m *Manager) Catalogue() *catalogue.Catalogue {
	return m.catalogue
}

// Store returns the underlying result store (possibly nil).
func (m *Manager) Store() ports.ResultStore {
	return m.store
}

// Create builds and registers an idle session.
func (m *Manager) Create(ctx context.Context, algorithms []domain.AlgorithmID, data *domain.Dataset, params domain.Params) (*Session, error) {
	id := m.newID()
	s, err := New(m.catalogue, id, data, params, algorithms,
		WithHooks(m.hooks.Merge(domain.LifecycleHooks{OnLaneDone: m.persist})),
		WithPacing(m.pacing),
		WithClock(m.clock),
		WithLogger(m.logger),
	)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	m.logger.Info("session created", "session_id", id, "algorithms", algorithms)
	return s, nil
}

// Get returns a live session.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return s, nil
}

// List returns the live sessions, oldest first.
func (m *Manager) List() []*Session {
	m.mu.Lock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	m.mu.Unlock()

	slices.SortFunc(out, func(a, b *Session) int {
		if c := a.CreatedAt().Compare(b.CreatedAt()); c != 0 {
			return c
		}
		return strings.Compare(a.ID(), b.ID())
	})
	return out
}

// Delete stops and forgets a session. Persisted summaries are kept.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		s, err := m.Get(id)
		if err != nil {
			return err
		}
		if err := s.Stop(ctx); err != nil {
			return err
		}
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return nil
	})
}

// Control applies a named action (start, pause, resume, toggle, stop) to a session.
func (m *Manager) Control(ctx context.Context, id, action string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		s, err := m.Get(id)
		if err != nil {
			return err
		}
		switch strings.ToLower(action) {
		case "start":
			return s.Start(ctx)
		case "pause":
			return s.Pause(ctx)
		case "resume":
			return s.Resume(ctx)
		case "toggle":
			return s.TogglePause(ctx)
		case "stop":
			return s.Stop(ctx)
		default:
			return fmt.Errorf("%w: %q", ErrUnknownAction, action)
		}
	})
}

// Tick advances a session by one tick.
func (m *Manager) Tick(ctx context.Context, id string) ([]scheduler.Frame, error) {
	var frames []scheduler.Frame
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		s, err := m.Get(id)
		if err != nil {
			return err
		}
		frames = s.Tick(ctx)
		return nil
	})
	return frames, err
}

// Play starts a session and drives it in the background at its own pacing
// until it stops, finishes or ctx is done. Close waits for these loops.
func (m *Manager) Play(ctx context.Context, id string) error {
	if err := m.Control(ctx, id, "start"); err != nil {
		return err
	}
	s, err := m.Get(id)
	if err != nil {
		return err
	}
	m.running.Add(1)
	go func() {
		defer m.running.Done()
		if err := s.Run(ctx, nil); err != nil && !errors.Is(err, context.Canceled) {
			m.logger.Warn("session loop ended", "session_id", id, "err", err)
		}
	}()
	return nil
}

// Close stops every live session and waits for background loops to exit.
func (m *Manager) Close(ctx context.Context) error {
	var errs []error
	for _, s := range m.List() {
		if err := m.Delete(ctx, s.ID()); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
			errs = append(errs, err)
		}
	}
	m.running.Wait()
	return errors.Join(errs...)
}

// Results loads every persisted summary, ordered by key.
func (m *Manager) Results(ctx context.Context) ([]domain.RunSummary, error) {
	if m.store == nil {
		return nil, nil
	}
	keys, err := m.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	slices.Sort(keys)
	out := make([]domain.RunSummary, 0, len(keys))
	for _, k := range keys {
		sum, err := m.store.Load(ctx, k)
		if errors.Is(err, domain.ErrResultNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load result %s: %w", k, err)
		}
		out = append(out, sum)
	}
	return out, nil
}

// persist stores the summary of a finished lane. Store failures are logged;
// they never interrupt a run.
func (m *Manager) persist(ctx context.Context, e *domain.LaneEvent) {
	if m.store == nil {
		return
	}
	if err := m.store.Save(context.WithoutCancel(ctx), e.Summary); err != nil {
		m.logger.Warn("Failed to persist run summary",
			"session_id", e.SessionID,
			"lane", e.Summary.Lane,
			"err", err,
		)
	}
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()
	return fn(ctx)
}
