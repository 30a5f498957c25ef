// Package catalogue maps algorithm identifiers to their stepper factories
// and published pseudocode.
package catalogue

import (
	"fmt"
	"sync"

	"github.com/aretw0/stepwise/pkg/algorithms"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
)

// Factory builds a stepper that owns data.
type Factory func(data domain.Dataset, params domain.Params) ports.Stepper

// Entry describes one registered algorithm.
type Entry struct {
	ID      domain.AlgorithmID `json:"id"`
	Name    string             `json:"name"`
	Kind    domain.Kind        `json:"kind"`
	Lines   domain.LineTable   `json:"lines"`
	Factory Factory            `json:"-"`
}

// Catalogue manages the available algorithms.
type Catalogue struct {
	mu      sync.RWMutex
	entries map[domain.AlgorithmID]Entry
	order   []domain.AlgorithmID
}

// New creates a new empty catalogue.
func New() *Catalogue {
	return &Catalogue{
		entries: make(map[domain.AlgorithmID]Entry),
	}
}

// Register adds an algorithm to the catalogue.
// If an entry with the same ID exists, it is overwritten in place.
func (c *Catalogue) Register(e Entry) {
	if e.Kind == "" {
		e.Kind = e.ID.Kind()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[e.ID]; !ok {
		c.order = append(c.order, e.ID)
	}
	c.entries[e.ID] = e
}

// Lookup returns the entry registered for id.
func (c *Catalogue) Lookup(id domain.AlgorithmID) (Entry, error) {
	c.mu.RLock()
	e, ok := c.entries[id]
	c.mu.RUnlock()

	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", domain.ErrUnknownAlgorithm, id)
	}
	return e, nil
}

// List returns the entries in registration order.
func (c *Catalogue) List() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Entry, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.entries[id])
	}
	return out
}

// Lines returns the pseudocode table of id.
func (c *Catalogue) Lines(id domain.AlgorithmID) (domain.LineTable, error) {
	e, err := c.Lookup(id)
	if err != nil {
		return nil, err
	}
	return e.Lines, nil
}

// Instantiate creates a fresh stepper for id over a private copy of data.
// Sequence algorithms need a sequence, BFS needs a grid.
func (c *Catalogue) Instantiate(id domain.AlgorithmID, data *domain.Dataset, params domain.Params) (ports.Stepper, error) {
	if data == nil {
		return nil, domain.ErrNoDataset
	}
	e, err := c.Lookup(id)
	if err != nil {
		return nil, err
	}
	if wantGrid := e.Kind == domain.KindPath; wantGrid != data.IsGrid() {
		return nil, fmt.Errorf("%w: %s cannot run on this dataset", domain.ErrDatasetKind, id)
	}
	return e.Factory(data.Clone(), params), nil
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalogue
)

// Default returns the shared catalogue holding the ten built-in algorithms.
func Default() *Catalogue {
	defaultOnce.Do(func() {
		defaultCat = New()
		RegisterBuiltins(defaultCat)
	})
	return defaultCat
}

// RegisterBuiltins adds the built-in algorithms to c in display order.
func RegisterBuiltins(c *Catalogue) {
	c.Register(Entry{ID: domain.LinearSearch, Name: "Linear Search", Lines: algorithms.LinearSearchLines,
		Factory: func(d domain.Dataset, p domain.Params) ports.Stepper { return algorithms.NewLinearSearch(d, p) }})
	c.Register(Entry{ID: domain.BinarySearch, Name: "Binary Search", Lines: algorithms.BinarySearchLines,
		Factory: func(d domain.Dataset, p domain.Params) ports.Stepper { return algorithms.NewBinarySearch(d, p) }})
	c.Register(Entry{ID: domain.BubbleSort, Name: "Bubble Sort", Lines: algorithms.BubbleSortLines,
		Factory: func(d domain.Dataset, p domain.Params) ports.Stepper { return algorithms.NewBubbleSort(d, p) }})
	c.Register(Entry{ID: domain.InsertionSort, Name: "Insertion Sort", Lines: algorithms.InsertionSortLines,
		Factory: func(d domain.Dataset, p domain.Params) ports.Stepper { return algorithms.NewInsertionSort(d, p) }})
	c.Register(Entry{ID: domain.SelectionSort, Name: "Selection Sort", Lines: algorithms.SelectionSortLines,
		Factory: func(d domain.Dataset, p domain.Params) ports.Stepper { return algorithms.NewSelectionSort(d, p) }})
	c.Register(Entry{ID: domain.MergeSort, Name: "Merge Sort", Lines: algorithms.MergeSortLines,
		Factory: func(d domain.Dataset, p domain.Params) ports.Stepper { return algorithms.NewMergeSort(d, p) }})
	c.Register(Entry{ID: domain.QuickSort, Name: "Quick Sort", Lines: algorithms.QuickSortLines,
		Factory: func(d domain.Dataset, p domain.Params) ports.Stepper { return algorithms.NewQuickSort(d, p) }})
	c.Register(Entry{ID: domain.HeapSort, Name: "Heap Sort", Lines: algorithms.HeapSortLines,
		Factory: func(d domain.Dataset, p domain.Params) ports.Stepper { return algorithms.NewHeapSort(d, p) }})
	c.Register(Entry{ID: domain.RadixSort, Name: "Radix Sort", Lines: algorithms.RadixSortLines,
		Factory: func(d domain.Dataset, p domain.Params) ports.Stepper { return algorithms.NewRadixSort(d, p) }})
	c.Register(Entry{ID: domain.GridBFS, Name: "Grid BFS", Lines: algorithms.BFSLines,
		Factory: func(d domain.Dataset, p domain.Params) ports.Stepper { return algorithms.NewBFS(d, p) }})
}
