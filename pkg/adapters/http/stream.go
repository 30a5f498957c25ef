package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/aretw0/stepwise/internal/logging"
	"github.com/aretw0/stepwise/pkg/domain"
)

// Event is one server-sent event.
type Event struct {
	Name string
	Data []byte
}

// StreamManager fans lifecycle events out to the SSE subscribers of each session.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- Event]struct{} // SessionID -> Set of Channels
	logger      *slog.Logger
}

// NewStreamManager creates a stream manager. A nil logger discards records.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StreamManager{
		subscribers: make(map[string]map[chan<- Event]struct{}),
		logger:      logger.With("component", "sse"),
	}
}

// Subscribe registers a buffered channel for sessionID.
// The returned function unregisters and closes it.
func (sm *StreamManager) Subscribe(sessionID string) (<-chan Event, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan Event, 64)
	if _, ok := sm.subscribers[sessionID]; !ok {
		sm.subscribers[sessionID] = make(map[chan<- Event]struct{})
	}
	sm.subscribers[sessionID][ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			if subs, ok := sm.subscribers[sessionID]; ok {
				delete(subs, ch)
				if len(subs) == 0 {
					delete(sm.subscribers, sessionID)
				}
			}
			close(ch)
		})
	}
}

// Subscribers returns the number of open subscriptions for sessionID.
func (sm *StreamManager) Subscribers(sessionID string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[sessionID])
}

// Broadcast sends an event to every subscriber of sessionID.
// Slow clients lose events rather than blocking the tick.
func (sm *StreamManager) Broadcast(sessionID string, ev Event) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[sessionID] {
		select {
		case ch <- ev:
		default:
			sm.logger.Warn("client buffer full, dropping event", "session_id", sessionID, "event", ev.Name)
		}
	}
}

// Hooks returns lifecycle hooks that broadcast every event as JSON.
func (sm *StreamManager) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStateChange: func(_ context.Context, e *domain.StateEvent) {
			sm.publish(e.SessionID, string(domain.EventStateChange), e)
		},
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			sm.publish(e.SessionID, string(domain.EventStep), e)
		},
		OnLaneDone: func(_ context.Context, e *domain.LaneEvent) {
			sm.publish(e.SessionID, string(domain.EventLaneDone), e)
		},
	}
}

func (sm *StreamManager) publish(sessionID, name string, payload any) {
	if sm.Subscribers(sessionID) == 0 {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		sm.logger.Error("encode event", "event", name, "err", err)
		return
	}
	sm.Broadcast(sessionID, Event{Name: name, Data: data})
}
