package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventStep        EventType = "step"
	EventLaneDone    EventType = "lane_done"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// StateEvent is raised on every run-state transition.
type StateEvent struct {
	EventBase
	From RunState `json:"from"`
	To   RunState `json:"to"`
}

// StepEvent is raised for every Step a lane emits.
type StepEvent struct {
	EventBase
	Lane    string        `json:"lane"`
	Step    Step          `json:"step"`
	Elapsed time.Duration `json:"elapsed"`
}

// LaneEvent is raised once when a lane reaches its terminal step.
type LaneEvent struct {
	EventBase
	Summary RunSummary `json:"summary"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run synchronously inside the tick that triggered them.
type LifecycleHooks struct {
	OnStateChange func(context.Context, *StateEvent)
	OnStep        func(context.Context, *StepEvent)
	OnLaneDone    func(context.Context, *LaneEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStateChange: chain(h.OnStateChange, other.OnStateChange),
		OnStep:        chain(h.OnStep, other.OnStep),
		OnLaneDone:    chain(h.OnLaneDone, other.OnLaneDone),
	}
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
