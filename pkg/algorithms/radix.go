package algorithms

import (
	"slices"

	"github.com/aretw0/stepwise/pkg/domain"
)

// RadixSort is an LSD base-10 radix sort. When the sequence holds negative
// numbers every value is keyed by v - min. Descending runs collect buckets
// 9 to 0.
type RadixSort struct {
	machine
	started bool
	offset  int
	passes  int
	exp     int
}

// NewRadixSort returns a radix sort over data.
func NewRadixSort(data domain.Dataset, p domain.Params) *RadixSort {
	return &RadixSort{machine: newMachine(domain.RadixSort, RadixSortLines, data, p.Direction)}
}

// Step implements ports.Stepper.
func (s *RadixSort) Step() domain.Step {
	if s.done {
		return s.replay()
	}
	arr := s.data.Values
	if len(arr) == 0 {
		return s.finish(domain.StepDone, 3, nil)
	}

	if !s.started {
		s.started = true
		s.offset = min(slices.Min(arr), 0)
		for m := slices.Max(arr) - s.offset; m > 0; m /= 10 {
			s.passes++
		}
		s.exp = 1
		return s.emit(domain.StepInit, 0)
	}
	if s.passes == 0 {
		return s.finish(domain.StepDone, 3, nil)
	}

	var buckets [10][]int
	for _, v := range arr {
		d := ((v - s.offset) / s.exp) % 10
		buckets[d] = append(buckets[d], v)
	}
	k := 0
	for b := range 10 {
		if s.dir == domain.Descending {
			b = 9 - b
		}
		for _, v := range buckets[b] {
			arr[k] = v
			k++
		}
	}
	s.passes--
	st := s.emit(domain.StepPass, 2)
	if s.passes > 0 {
		s.exp *= 10
	}
	return st
}
