package algorithms

import (
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
)

var (
	_ ports.Stepper = (*LinearSearch)(nil)
	_ ports.Stepper = (*BinarySearch)(nil)
	_ ports.Stepper = (*BubbleSort)(nil)
	_ ports.Stepper = (*InsertionSort)(nil)
	_ ports.Stepper = (*SelectionSort)(nil)
	_ ports.Stepper = (*MergeSort)(nil)
	_ ports.Stepper = (*QuickSort)(nil)
	_ ports.Stepper = (*HeapSort)(nil)
	_ ports.Stepper = (*RadixSort)(nil)
	_ ports.Stepper = (*BFS)(nil)
)

// machine holds the state every stepper shares: the owned working dataset,
// the step counter and the terminal step kept for replay.
type machine struct {
	id    domain.AlgorithmID
	lines domain.LineTable
	data  domain.Dataset
	dir   domain.Direction

	seq  int
	done bool
	last domain.Step
}

func newMachine(id domain.AlgorithmID, lines domain.LineTable, data domain.Dataset, dir domain.Direction) machine {
	return machine{id: id, lines: lines, data: data, dir: dir}
}

// Algorithm implements ports.Stepper.
func (m *machine) Algorithm() domain.AlgorithmID {
	return m.id
}

// Lines returns the pseudocode table the stepper's steps point into.
func (m *machine) Lines() domain.LineTable {
	return m.lines
}

// Done implements ports.Stepper.
func (m *machine) Done() bool {
	return m.done
}

// emit snapshots the working dataset and records the step.
// Highlights outside the dataset are dropped.
func (m *machine) emit(kind domain.StepKind, line domain.LineID, highlights ...domain.Position) domain.Step {
	m.seq++
	st := domain.Step{
		Algorithm: m.id,
		Seq:       m.seq,
		Kind:      kind,
		Snapshot:  m.data.Clone(),
		Line:      line,
	}
	for _, h := range highlights {
		if m.data.Contains(h) {
			st.Highlights = append(st.Highlights, h)
		}
	}
	m.last = st
	return st
}

// finish emits the terminal step. result may be nil.
func (m *machine) finish(kind domain.StepKind, line domain.LineID, result *domain.Position, highlights ...domain.Position) domain.Step {
	st := m.emit(kind, line, highlights...)
	st.Terminal = true
	if result != nil {
		r := *result
		st.Result = &r
	}
	m.done = true
	m.last = st.Clone()
	return st
}

// replay returns a fresh copy of the terminal step.
func (m *machine) replay() domain.Step {
	return m.last.Clone()
}

func (m *machine) swap(i, j int) {
	v := m.data.Values
	v[i], v[j] = v[j], v[i]
}

// span returns the positions lo..hi inclusive.
func span(lo, hi int) []domain.Position {
	if hi < lo {
		return nil
	}
	out := make([]domain.Position, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, domain.At(i))
	}
	return out
}

func at(indexes ...int) []domain.Position {
	out := make([]domain.Position, len(indexes))
	for i, idx := range indexes {
		out[i] = domain.At(idx)
	}
	return out
}
