package domain

import "slices"

// StepKind tells a renderer what sort of work a Step performed.
type StepKind string

const (
	StepInit     StepKind = "init"
	StepOuter    StepKind = "outer"
	StepCompare  StepKind = "compare"
	StepSwap     StepKind = "swap"
	StepShift    StepKind = "shift"
	StepPlace    StepKind = "place"
	StepSelect   StepKind = "select"
	StepSplit    StepKind = "split"
	StepPivot    StepKind = "pivot"
	StepPass     StepKind = "pass"
	StepGuard    StepKind = "guard"
	StepMid      StepKind = "mid"
	StepMatch    StepKind = "match"
	StepAdvance  StepKind = "advance"
	StepRetreat  StepKind = "retreat"
	StepNotFound StepKind = "not_found"
	StepDequeue  StepKind = "dequeue"
	StepMark     StepKind = "mark"
	StepGoal     StepKind = "goal"
	StepEnqueue  StepKind = "enqueue"
	StepDone     StepKind = "done"
)

// Step is one observable unit of algorithmic progress.
// Steps are values: the Snapshot is a private copy taken when the step was
// emitted and is never touched again by the stepper.
type Step struct {
	Algorithm  AlgorithmID `json:"algorithm"`
	Seq        int         `json:"seq"`
	Kind       StepKind    `json:"kind"`
	Snapshot   Dataset     `json:"snapshot"`
	Highlights []Position  `json:"highlights,omitempty"`
	Line       LineID      `json:"line"`
	Terminal   bool        `json:"terminal"`
	// Result is the matching index of a search or the goal of a path search.
	// It is nil when nothing was found and for sorts.
	Result *Position `json:"result,omitempty"`
	// Path is the route from the start to the current node (pathfinding only).
	Path []Position `json:"path,omitempty"`
}

// Found reports whether a terminal step carries a result.
func (s Step) Found() bool {
	return s.Result != nil
}

// Clone returns a copy of s that shares no memory with it.
func (s Step) Clone() Step {
	out := s
	out.Snapshot = s.Snapshot.Clone()
	out.Highlights = slices.Clone(s.Highlights)
	out.Path = slices.Clone(s.Path)
	if s.Result != nil {
		r := *s.Result
		out.Result = &r
	}
	return out
}

// HighlightIndexes returns the highlighted positions of a sequence step as indexes.
func (s Step) HighlightIndexes() []int {
	out := make([]int, len(s.Highlights))
	for i, p := range s.Highlights {
		out[i] = p.Index()
	}
	return out
}
