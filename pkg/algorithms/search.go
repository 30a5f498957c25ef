package algorithms

import "github.com/aretw0/stepwise/pkg/domain"

// LinearSearch scans the sequence left to right for the target.
type LinearSearch struct {
	machine
	target int
	i      int
	found  bool
}

// NewLinearSearch returns a linear search over data for p.Target.
func NewLinearSearch(data domain.Dataset, p domain.Params) *LinearSearch {
	return &LinearSearch{
		machine: newMachine(domain.LinearSearch, LinearSearchLines, data, p.Direction),
		target:  p.Target,
	}
}

// Step implements ports.Stepper.
func (s *LinearSearch) Step() domain.Step {
	if s.done {
		return s.replay()
	}
	if s.found {
		r := domain.At(s.i)
		return s.finish(domain.StepMatch, 2, &r, r)
	}
	if s.i >= len(s.data.Values) {
		return s.finish(domain.StepNotFound, 3, nil)
	}

	st := s.emit(domain.StepCompare, 1, domain.At(s.i))
	if s.data.Values[s.i] == s.target {
		s.found = true
	} else {
		s.i++
	}
	return st
}

type binaryPhase int

const (
	binInit binaryPhase = iota
	binGuard
	binMid
	binDecide
)

// BinarySearch halves [low, high] around the target. The sequence must be
// sorted in the stepper's direction.
type BinarySearch struct {
	machine
	target    int
	phase     binaryPhase
	low, high int
	mid       int
}

// NewBinarySearch returns a binary search over data for p.Target.
func NewBinarySearch(data domain.Dataset, p domain.Params) *BinarySearch {
	return &BinarySearch{
		machine: newMachine(domain.BinarySearch, BinarySearchLines, data, p.Direction),
		target:  p.Target,
	}
}

// Step implements ports.Stepper.
func (s *BinarySearch) Step() domain.Step {
	if s.done {
		return s.replay()
	}
	arr := s.data.Values

	switch s.phase {
	case binInit:
		if len(arr) == 0 {
			return s.finish(domain.StepNotFound, 6, nil)
		}
		s.low, s.high = 0, len(arr)-1
		s.phase = binGuard
		return s.emit(domain.StepInit, 0, at(s.low, s.high)...)

	case binGuard:
		if s.low > s.high {
			return s.finish(domain.StepNotFound, 6, nil)
		}
		s.phase = binMid
		return s.emit(domain.StepGuard, 1, at(s.low, s.high)...)

	case binMid:
		s.mid = (s.low + s.high) / 2
		s.phase = binDecide
		return s.emit(domain.StepMid, 2, domain.At(s.mid))

	default:
		v := arr[s.mid]
		if v == s.target {
			r := domain.At(s.mid)
			return s.finish(domain.StepMatch, 3, &r, r)
		}
		s.phase = binGuard
		if s.dir.Before(v, s.target) {
			st := s.emit(domain.StepAdvance, 4, domain.At(s.mid))
			s.low = s.mid + 1
			return st
		}
		st := s.emit(domain.StepRetreat, 5, domain.At(s.mid))
		s.high = s.mid - 1
		return st
	}
}
