package domain

import (
	"fmt"
	"strings"
)

// AlgorithmID identifies one entry of the fixed algorithm catalogue.
type AlgorithmID string

const (
	LinearSearch  AlgorithmID = "linear_search"
	BinarySearch  AlgorithmID = "binary_search"
	BubbleSort    AlgorithmID = "bubble_sort"
	InsertionSort AlgorithmID = "insertion_sort"
	SelectionSort AlgorithmID = "selection_sort"
	MergeSort     AlgorithmID = "merge_sort"
	QuickSort     AlgorithmID = "quick_sort"
	HeapSort      AlgorithmID = "heap_sort"
	RadixSort     AlgorithmID = "radix_sort"
	GridBFS       AlgorithmID = "bfs"
)

// Algorithms lists every known identifier in catalogue order.
var Algorithms = []AlgorithmID{
	LinearSearch, BinarySearch,
	BubbleSort, InsertionSort, SelectionSort, MergeSort, QuickSort, HeapSort, RadixSort,
	GridBFS,
}

// SortAlgorithms lists the sorting subset in catalogue order.
var SortAlgorithms = []AlgorithmID{
	BubbleSort, InsertionSort, SelectionSort, MergeSort, QuickSort, HeapSort, RadixSort,
}

// Kind groups algorithms by the dataset and parameters they need.
type Kind string

const (
	KindSearch Kind = "search"
	KindSort   Kind = "sort"
	KindPath   Kind = "path"
)

// Kind reports the family of the algorithm.
func (id AlgorithmID) Kind() Kind {
	switch id {
	case LinearSearch, BinarySearch:
		return KindSearch
	case GridBFS:
		return KindPath
	default:
		return KindSort
	}
}

// ParseAlgorithm resolves identifiers ("bubble_sort"), short names ("bubble")
// and display names ("Bubble Sort") to an AlgorithmID.
func ParseAlgorithm(name string) (AlgorithmID, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	for _, id := range Algorithms {
		if key == string(id) {
			return id, nil
		}
		if short, _, ok := strings.Cut(string(id), "_"); ok && key == short {
			return id, nil
		}
	}
	switch key {
	case "linear":
		return LinearSearch, nil
	case "binary":
		return BinarySearch, nil
	case "grid_bfs", "maze", "breadth_first_search":
		return GridBFS, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Direction selects the ordering used by sorts and binary search.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// ParseDirection accepts "asc"/"ascending" and "desc"/"descending" (case-insensitive).
// The empty string is Ascending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return Ascending, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

// Before reports whether a must come strictly before b in this direction.
func (d Direction) Before(a, b int) bool {
	if d == Descending {
		return a > b
	}
	return a < b
}

// InOrder reports whether a may precede b (a before b, or equal).
func (d Direction) InOrder(a, b int) bool {
	return !d.Before(b, a)
}

// Params carries the per-run inputs besides the dataset.
type Params struct {
	// Target is the value searched for by search algorithms.
	Target int `json:"target"`
	// Start and Goal are the endpoints for pathfinding.
	Start Position `json:"start"`
	Goal  Position `json:"goal"`
	// Direction is the requested ordering.
	Direction Direction `json:"direction"`
}

// LineID indexes an algorithm's pseudocode LineTable.
type LineID int

// LineTable is the published pseudocode of one algorithm, for display only.
type LineTable []string

// Valid reports whether id indexes an entry of the table.
func (t LineTable) Valid(id LineID) bool {
	return id >= 0 && int(id) < len(t)
}
