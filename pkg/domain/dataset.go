package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CellState is the content of one grid cell.
type CellState uint8

const (
	CellFree    CellState = iota // Passable, not yet explored
	CellWall                     // Blocked
	CellVisited                  // Passable and marked visited by a search
)

// Position addresses one element of a Dataset.
// Sequences use Row 0 and Col as the index (see At).
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// At returns the Position of index i in a sequence.
func At(i int) Position {
	return Position{Col: i}
}

// Index returns the sequence index addressed by p.
func (p Position) Index() int {
	return p.Col
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Grid is a row-major 2-D board of cells.
type Grid struct {
	Rows  int
	Cols  int
	Cells []CellState
}

// NewGrid creates a grid of free cells with the given walls.
func NewGrid(rows, cols int, walls ...Position) *Grid {
	g := &Grid{Rows: rows, Cols: cols, Cells: make([]CellState, rows*cols)}
	for _, w := range walls {
		if g.Contains(w) {
			g.Set(w, CellWall)
		}
	}
	return g
}

// ParseGrid reads a grid from text rows where '#' is a wall, '*' is a visited
// cell and any other rune is free. All rows must have the same width.
func ParseGrid(lines []string) (*Grid, error) {
	if len(lines) == 0 {
		return &Grid{}, nil
	}
	cols := len(lines[0])
	g := NewGrid(len(lines), cols)
	for r, line := range lines {
		if len(line) != cols {
			return nil, fmt.Errorf("grid row %d has width %d, expected %d", r, len(line), cols)
		}
		for c, ch := range line {
			switch ch {
			case '#':
				g.Set(Position{Row: r, Col: c}, CellWall)
			case '*':
				g.Set(Position{Row: r, Col: c}, CellVisited)
			}
		}
	}
	return g, nil
}

// Contains reports whether p lies inside the grid.
func (g *Grid) Contains(p Position) bool {
	return p.Row >= 0 && p.Row < g.Rows && p.Col >= 0 && p.Col < g.Cols
}

// At returns the state of cell p. p must be inside the grid.
func (g *Grid) At(p Position) CellState {
	return g.Cells[p.Row*g.Cols+p.Col]
}

// Set changes the state of cell p. p must be inside the grid.
func (g *Grid) Set(p Position, s CellState) {
	g.Cells[p.Row*g.Cols+p.Col] = s
}

// Passable reports whether p is inside the grid and not a wall.
func (g *Grid) Passable(p Position) bool {
	return g.Contains(p) && g.At(p) != CellWall
}

// FreeCells counts the non-wall cells.
func (g *Grid) FreeCells() int {
	n := 0
	for _, c := range g.Cells {
		if c != CellWall {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	cells := make([]CellState, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{Rows: g.Rows, Cols: g.Cols, Cells: cells}
}

// Lines renders each row with '#' for walls, '*' for visited and '.' for free cells.
func (g *Grid) Lines() []string {
	lines := make([]string, 0, g.Rows)
	for r := 0; r < g.Rows; r++ {
		var sb strings.Builder
		for c := 0; c < g.Cols; c++ {
			switch g.At(Position{Row: r, Col: c}) {
			case CellWall:
				sb.WriteByte('#')
			case CellVisited:
				sb.WriteByte('*')
			default:
				sb.WriteByte('.')
			}
		}
		lines = append(lines, sb.String())
	}
	return lines
}

func (g *Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}

type gridJSON struct {
	Lines []string `json:"lines"`
}

// MarshalJSON encodes the grid as its text rows.
func (g *Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(gridJSON{Lines: g.Lines()})
}

// UnmarshalJSON decodes the text-row form produced by MarshalJSON.
func (g *Grid) UnmarshalJSON(data []byte) error {
	var raw gridJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseGrid(raw.Lines)
	if err != nil {
		return err
	}
	*g = *parsed
	return nil
}

// Dataset is the data an algorithm operates on: either a sequence of
// values (sorting, searching) or a grid (pathfinding).
type Dataset struct {
	Values []int `json:"values,omitempty"`
	Grid   *Grid `json:"grid,omitempty"`
}

// NewSequence creates a sequence dataset holding a copy of values.
func NewSequence(values ...int) *Dataset {
	v := make([]int, len(values))
	copy(v, values)
	return &Dataset{Values: v}
}

// NewGridDataset wraps a grid into a dataset.
func NewGridDataset(g *Grid) *Dataset {
	return &Dataset{Grid: g}
}

// IsGrid reports whether the dataset is a grid.
func (d Dataset) IsGrid() bool {
	return d.Grid != nil
}

// Len is the number of addressable elements.
func (d Dataset) Len() int {
	if d.Grid != nil {
		return len(d.Grid.Cells)
	}
	return len(d.Values)
}

// Contains reports whether p addresses an element of the dataset.
func (d Dataset) Contains(p Position) bool {
	if d.Grid != nil {
		return d.Grid.Contains(p)
	}
	return p.Row == 0 && p.Col >= 0 && p.Col < len(d.Values)
}

// Clone returns a deep copy; no memory is shared with d.
func (d Dataset) Clone() Dataset {
	out := Dataset{Grid: d.Grid.Clone()}
	if d.Values != nil {
		out.Values = make([]int, len(d.Values))
		copy(out.Values, d.Values)
	}
	return out
}

// SortedPairs counts adjacent pairs already in dir's order, the
// "k sorted" progress figure shown next to comparison lanes.
func (d Dataset) SortedPairs(dir Direction) int {
	n := 0
	for k := 1; k < len(d.Values); k++ {
		if dir.InOrder(d.Values[k-1], d.Values[k]) {
			n++
		}
	}
	return n
}
