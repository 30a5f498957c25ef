package algorithms

import "github.com/aretw0/stepwise/pkg/domain"

type mergeStage int

const (
	mergeSplit mergeStage = iota
	mergeRight
	mergeBegin
	mergePlace
)

// mergeFrame is one pending call of the top-down recursion.
type mergeFrame struct {
	low, high int
	stage     mergeStage

	left, right []int
	li, ri, k   int
}

func (f *mergeFrame) mid() int {
	return (f.low + f.high) / 2
}

// MergeSort is a stable top-down merge sort driven by an explicit frame stack.
type MergeSort struct {
	machine
	stack []mergeFrame
}

// NewMergeSort returns a merge sort over data.
func NewMergeSort(data domain.Dataset, p domain.Params) *MergeSort {
	s := &MergeSort{machine: newMachine(domain.MergeSort, MergeSortLines, data, p.Direction)}
	if n := len(data.Values); n > 0 {
		s.stack = append(s.stack, mergeFrame{low: 0, high: n - 1})
	}
	return s
}

// Step implements ports.Stepper.
func (s *MergeSort) Step() domain.Step {
	if s.done {
		return s.replay()
	}
	arr := s.data.Values

	for len(s.stack) > 0 {
		top := len(s.stack) - 1
		f := &s.stack[top]

		switch f.stage {
		case mergeSplit:
			if f.low >= f.high {
				s.stack = s.stack[:top]
				continue
			}
			f.stage = mergeRight
			st := s.emit(domain.StepSplit, 2, span(f.low, f.high)...)
			s.stack = append(s.stack, mergeFrame{low: f.low, high: f.mid()})
			return st

		case mergeRight:
			f.stage = mergeBegin
			s.stack = append(s.stack, mergeFrame{low: f.mid() + 1, high: f.high})

		case mergeBegin:
			mid := f.mid()
			f.left = append([]int(nil), arr[f.low:mid+1]...)
			f.right = append([]int(nil), arr[mid+1:f.high+1]...)
			f.li, f.ri, f.k = 0, 0, f.low
			f.stage = mergePlace

		case mergePlace:
			if f.k > f.high {
				s.stack = s.stack[:top]
				continue
			}
			switch {
			case f.ri >= len(f.right):
				arr[f.k] = f.left[f.li]
				f.li++
			case f.li >= len(f.left):
				arr[f.k] = f.right[f.ri]
				f.ri++
			case s.dir.InOrder(f.left[f.li], f.right[f.ri]):
				arr[f.k] = f.left[f.li]
				f.li++
			default:
				arr[f.k] = f.right[f.ri]
				f.ri++
			}
			st := s.emit(domain.StepPlace, 5, span(f.low, f.k)...)
			f.k++
			return st
		}
	}
	return s.finish(domain.StepDone, 6, nil)
}
