package domain

import "time"

// RunState is the run-state of a scheduler.
type RunState string

const (
	StateIdle     RunState = "idle"     // Built, not started
	StateRunning  RunState = "running"  // Ticks advance steppers
	StatePaused   RunState = "paused"   // Ticks are skipped, everything preserved
	StateStopped  RunState = "stopped"  // User stop: steppers discarded, timers reset
	StateFinished RunState = "finished" // Every stepper reached its terminal step
)

// Terminal reports whether no more ticks can happen in this state.
func (s RunState) Terminal() bool {
	return s == StateStopped || s == StateFinished
}

// RunSummary records how one lane of a session ended.
// It is the only piece of a run that outlives the process.
type RunSummary struct {
	SessionID  string        `json:"session_id"`
	Lane       string        `json:"lane"`
	Algorithm  AlgorithmID   `json:"algorithm"`
	Steps      int           `json:"steps"`
	Elapsed    time.Duration `json:"elapsed"`
	Found      bool          `json:"found"`
	Result     *Position     `json:"result,omitempty"`
	FinishedAt time.Time     `json:"finished_at"`
}

// Key identifies a summary inside a store.
func (s RunSummary) Key() string {
	return s.SessionID + "/" + s.Lane
}
