package algorithms

import "github.com/aretw0/stepwise/pkg/domain"

type heapPhase int

const (
	heapBuild heapPhase = iota
	heapSift
	heapSwap
	heapExtract
	heapRootSwap
)

type siftFrame struct {
	node, size int
}

// HeapSort builds a max-heap (min-heap when descending) and repeatedly moves
// the root behind the shrinking heap. Pending sift-down work is kept on an
// explicit stack.
type HeapSort struct {
	machine
	phase heapPhase
	built bool

	i   int
	end int

	sift         []siftFrame
	swapA, swapB int
	swapSize     int
}

// NewHeapSort returns a heap sort over data.
func NewHeapSort(data domain.Dataset, p domain.Params) *HeapSort {
	n := len(data.Values)
	return &HeapSort{
		machine: newMachine(domain.HeapSort, HeapSortLines, data, p.Direction),
		i:       n/2 - 1,
		end:     n - 1,
	}
}

// Step implements ports.Stepper.
func (s *HeapSort) Step() domain.Step {
	if s.done {
		return s.replay()
	}
	arr := s.data.Values
	n := len(arr)

	for {
		switch s.phase {
		case heapBuild:
			if s.i < 0 {
				s.built = true
				s.phase = heapExtract
				continue
			}
			s.pushSift(s.i, n)
			st := s.emit(domain.StepOuter, 0, domain.At(s.i))
			s.i--
			s.phase = heapSift
			return st

		case heapSift:
			if len(s.sift) == 0 {
				if s.built {
					s.phase = heapExtract
				} else {
					s.phase = heapBuild
				}
				continue
			}
			f := s.sift[len(s.sift)-1]
			s.sift = s.sift[:len(s.sift)-1]

			best := f.node
			highlights := []domain.Position{domain.At(f.node)}
			for _, c := range []int{2*f.node + 1, 2*f.node + 2} {
				if c >= f.size {
					continue
				}
				highlights = append(highlights, domain.At(c))
				if s.dir.Before(arr[best], arr[c]) {
					best = c
				}
			}
			if best != f.node {
				s.swapA, s.swapB, s.swapSize = f.node, best, f.size
				s.phase = heapSwap
			}
			return s.emit(domain.StepCompare, 1, highlights...)

		case heapSwap:
			s.swap(s.swapA, s.swapB)
			s.pushSift(s.swapB, s.swapSize)
			s.phase = heapSift
			return s.emit(domain.StepSwap, 2, at(s.swapA, s.swapB)...)

		case heapExtract:
			if s.end < 1 {
				return s.finish(domain.StepDone, 6, nil)
			}
			s.phase = heapRootSwap
			return s.emit(domain.StepSelect, 3, at(0, s.end)...)

		case heapRootSwap:
			s.swap(0, s.end)
			st := s.emit(domain.StepSwap, 4, at(0, s.end)...)
			s.pushSift(0, s.end)
			s.end--
			s.phase = heapSift
			return st
		}
	}
}

// pushSift schedules a sift-down of node unless it is a leaf of the heap.
func (s *HeapSort) pushSift(node, size int) {
	if 2*node+1 < size {
		s.sift = append(s.sift, siftFrame{node: node, size: size})
	}
}
