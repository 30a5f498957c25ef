package algorithms

import "github.com/aretw0/stepwise/pkg/domain"

type bubblePhase int

const (
	bubbleOuter bubblePhase = iota
	bubbleCompare
	bubbleSwap
)

// BubbleSort performs the classic n-pass bubble sort without early exit.
type BubbleSort struct {
	machine
	phase bubblePhase
	i, j  int
}

// NewBubbleSort returns a bubble sort over data.
func NewBubbleSort(data domain.Dataset, p domain.Params) *BubbleSort {
	return &BubbleSort{machine: newMachine(domain.BubbleSort, BubbleSortLines, data, p.Direction)}
}

// Step implements ports.Stepper.
func (s *BubbleSort) Step() domain.Step {
	if s.done {
		return s.replay()
	}
	arr := s.data.Values
	n := len(arr)

	for {
		switch s.phase {
		case bubbleOuter:
			if s.i >= n {
				return s.finish(domain.StepDone, 4, nil)
			}
			s.j = 0
			s.phase = bubbleCompare
			return s.emit(domain.StepOuter, 0, domain.At(n-s.i-1))

		case bubbleCompare:
			if s.j >= n-s.i-1 {
				s.i++
				s.phase = bubbleOuter
				continue
			}
			st := s.emit(domain.StepCompare, 2, at(s.j, s.j+1)...)
			if s.dir.Before(arr[s.j+1], arr[s.j]) {
				s.phase = bubbleSwap
			} else {
				s.j++
			}
			return st

		case bubbleSwap:
			s.swap(s.j, s.j+1)
			st := s.emit(domain.StepSwap, 3, at(s.j, s.j+1)...)
			s.j++
			s.phase = bubbleCompare
			return st
		}
	}
}

type insertionPhase int

const (
	insPick insertionPhase = iota
	insKey
	insInitJ
	insCompare
	insShift
	insDecrement
	insPlace
)

// InsertionSort grows a sorted prefix by shifting larger elements right.
type InsertionSort struct {
	machine
	phase insertionPhase
	i, j  int
	key   int
}

// NewInsertionSort returns an insertion sort over data.
func NewInsertionSort(data domain.Dataset, p domain.Params) *InsertionSort {
	return &InsertionSort{
		machine: newMachine(domain.InsertionSort, InsertionSortLines, data, p.Direction),
		i:       1,
	}
}

// Step implements ports.Stepper.
func (s *InsertionSort) Step() domain.Step {
	if s.done {
		return s.replay()
	}
	arr := s.data.Values

	for {
		switch s.phase {
		case insPick:
			if s.i >= len(arr) {
				return s.finish(domain.StepDone, 7, nil)
			}
			s.phase = insKey
			return s.emit(domain.StepOuter, 0, domain.At(s.i))

		case insKey:
			s.key = arr[s.i]
			s.phase = insInitJ
			return s.emit(domain.StepSelect, 1, domain.At(s.i))

		case insInitJ:
			s.j = s.i - 1
			s.phase = insCompare
			return s.emit(domain.StepInit, 2, domain.At(s.j))

		case insCompare:
			if s.j < 0 {
				s.phase = insPlace
				continue
			}
			st := s.emit(domain.StepCompare, 3, at(s.j, s.j+1)...)
			if s.dir.Before(s.key, arr[s.j]) {
				s.phase = insShift
			} else {
				s.phase = insPlace
			}
			return st

		case insShift:
			arr[s.j+1] = arr[s.j]
			s.phase = insDecrement
			return s.emit(domain.StepShift, 4, at(s.j, s.j+1)...)

		case insDecrement:
			s.j--
			s.phase = insCompare
			return s.emit(domain.StepRetreat, 5, domain.At(s.j+1))

		case insPlace:
			arr[s.j+1] = s.key
			st := s.emit(domain.StepPlace, 6, domain.At(s.j+1))
			s.i++
			s.phase = insPick
			return st
		}
	}
}

type selectionPhase int

const (
	selOuter selectionPhase = iota
	selMinInit
	selCompare
	selNewMin
	selSwap
)

// SelectionSort moves the minimum (maximum when descending) of the unsorted
// suffix to its front on every pass.
type SelectionSort struct {
	machine
	phase  selectionPhase
	i, j   int
	minIdx int
}

// NewSelectionSort returns a selection sort over data.
func NewSelectionSort(data domain.Dataset, p domain.Params) *SelectionSort {
	return &SelectionSort{machine: newMachine(domain.SelectionSort, SelectionSortLines, data, p.Direction)}
}

// Step implements ports.Stepper.
func (s *SelectionSort) Step() domain.Step {
	if s.done {
		return s.replay()
	}
	arr := s.data.Values

	for {
		switch s.phase {
		case selOuter:
			if s.i >= len(arr) {
				return s.finish(domain.StepDone, 6, nil)
			}
			s.phase = selMinInit
			return s.emit(domain.StepOuter, 0, domain.At(s.i))

		case selMinInit:
			s.minIdx = s.i
			s.j = s.i + 1
			s.phase = selCompare
			return s.emit(domain.StepSelect, 1, domain.At(s.minIdx))

		case selCompare:
			if s.j >= len(arr) {
				s.phase = selSwap
				continue
			}
			st := s.emit(domain.StepCompare, 3, at(s.j, s.minIdx)...)
			if s.dir.Before(arr[s.j], arr[s.minIdx]) {
				s.phase = selNewMin
			} else {
				s.j++
			}
			return st

		case selNewMin:
			s.minIdx = s.j
			s.j++
			s.phase = selCompare
			return s.emit(domain.StepSelect, 4, domain.At(s.minIdx))

		case selSwap:
			s.swap(s.i, s.minIdx)
			st := s.emit(domain.StepSwap, 5, at(s.i, s.minIdx)...)
			s.i++
			s.phase = selOuter
			return st
		}
	}
}
