package algorithms

import "github.com/aretw0/stepwise/pkg/domain"

type quickRange struct {
	low, high int
}

type quickPhase int

const (
	quickPop quickPhase = iota
	quickCompare
	quickSwap
)

// QuickSort partitions with the Lomuto scheme (pivot arr[high]). Pending
// ranges live on an explicit stack and the left range is always sorted first.
type QuickSort struct {
	machine
	stack []quickRange

	phase     quickPhase
	low, high int
	i, j      int
	pivot     int
}

// NewQuickSort returns a quick sort over data.
func NewQuickSort(data domain.Dataset, p domain.Params) *QuickSort {
	s := &QuickSort{machine: newMachine(domain.QuickSort, QuickSortLines, data, p.Direction)}
	if n := len(data.Values); n > 0 {
		s.stack = append(s.stack, quickRange{low: 0, high: n - 1})
	}
	return s
}

// Step implements ports.Stepper.
func (s *QuickSort) Step() domain.Step {
	if s.done {
		return s.replay()
	}
	arr := s.data.Values

	for {
		switch s.phase {
		case quickPop:
			if len(s.stack) == 0 {
				return s.finish(domain.StepDone, 7, nil)
			}
			r := s.stack[len(s.stack)-1]
			s.stack = s.stack[:len(s.stack)-1]
			if r.low >= r.high {
				continue
			}
			s.low, s.high = r.low, r.high
			s.i, s.j = r.low, r.low
			s.pivot = arr[r.high]
			s.phase = quickCompare
			return s.emit(domain.StepPivot, 2, domain.At(s.high))

		case quickCompare:
			if s.j >= s.high {
				s.swap(s.i, s.high)
				st := s.emit(domain.StepPlace, 5, domain.At(s.i))
				// Right is pushed first so the left range pops next.
				s.stack = append(s.stack,
					quickRange{low: s.i + 1, high: s.high},
					quickRange{low: s.low, high: s.i - 1},
				)
				s.phase = quickPop
				return st
			}
			st := s.emit(domain.StepCompare, 3, at(s.j, s.high)...)
			if s.dir.InOrder(arr[s.j], s.pivot) {
				s.phase = quickSwap
			} else {
				s.j++
			}
			return st

		case quickSwap:
			s.swap(s.i, s.j)
			st := s.emit(domain.StepSwap, 4, at(s.i, s.j)...)
			s.i++
			s.j++
			s.phase = quickCompare
			return st
		}
	}
}
