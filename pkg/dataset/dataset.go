// Package dataset generates the inputs the algorithms run on: random
// sequences, random mazes and the built-in demo maze.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/aretw0/stepwise/pkg/domain"
)

// Defaults of the sorting views.
const (
	DefaultMin  = 1
	DefaultMax  = 50
	DefaultSize = 20

	// MaxSize caps generated sequences and MaxSide caps each maze dimension.
	MaxSize = 10_000
	MaxSide = 200
)

// ErrInvalidRange is returned for impossible generation requests.
var ErrInvalidRange = errors.New("invalid dataset range")

// SequenceConfig describes a random sequence. Min and Max are inclusive.
type SequenceConfig struct {
	Min  int `yaml:"min" json:"min"`
	Max  int `yaml:"max" json:"max"`
	Size int `yaml:"size" json:"size"`
	// Distinct samples without replacement, as the search comparison does.
	Distinct bool `yaml:"distinct" json:"distinct"`
}

// DefaultSequence returns 20 values in [1, 50].
func DefaultSequence() SequenceConfig {
	return SequenceConfig{Min: DefaultMin, Max: DefaultMax, Size: DefaultSize}
}

// Generator produces datasets from a seeded source, so the same seed always
// yields the same data.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator seeded with seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Sequence draws a random sequence.
func (g *Generator) Sequence(cfg SequenceConfig) (*domain.Dataset, error) {
	if cfg.Size < 0 || cfg.Size > MaxSize || cfg.Min > cfg.Max {
		return nil, fmt.Errorf("%w: size %d in [%d, %d]", ErrInvalidRange, cfg.Size, cfg.Min, cfg.Max)
	}
	// Max-Min+1 must fit in an int.
	if cfg.Max-cfg.Min < 0 || cfg.Max-cfg.Min == math.MaxInt {
		return nil, fmt.Errorf("%w: [%d, %d] is too wide", ErrInvalidRange, cfg.Min, cfg.Max)
	}
	span := cfg.Max - cfg.Min + 1
	if cfg.Distinct && cfg.Size > span {
		return nil, fmt.Errorf("%w: %d distinct values do not fit in [%d, %d]", ErrInvalidRange, cfg.Size, cfg.Min, cfg.Max)
	}

	values := make([]int, cfg.Size)
	if cfg.Distinct {
		// Partial Fisher-Yates over the range, sparse so large ranges stay cheap.
		swapped := make(map[int]int)
		pick := func(i int) int {
			if v, ok := swapped[i]; ok {
				return v
			}
			return i
		}
		for i := range values {
			j := i + g.rng.IntN(span-i)
			vi, vj := pick(i), pick(j)
			swapped[i], swapped[j] = vj, vi
			values[i] = cfg.Min + vj
		}
	} else {
		for i := range values {
			values[i] = cfg.Min + g.rng.IntN(span)
		}
	}
	return domain.NewSequence(values...), nil
}

// Grid draws a rows x cols maze where each cell is a wall with probability
// density. The cells in keepFree are always passable.
func (g *Generator) Grid(rows, cols int, density float64, keepFree ...domain.Position) (*domain.Dataset, error) {
	if rows <= 0 || cols <= 0 || rows > MaxSide || cols > MaxSide || density < 0 || density >= 1 {
		return nil, fmt.Errorf("%w: %dx%d grid with wall density %.2f", ErrInvalidRange, rows, cols, density)
	}
	grid := domain.NewGrid(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if g.rng.Float64() < density {
				grid.Set(domain.Position{Row: r, Col: c}, domain.CellWall)
			}
		}
	}
	for _, p := range keepFree {
		if grid.Contains(p) {
			grid.Set(p, domain.CellFree)
		}
	}
	return domain.NewGridDataset(grid), nil
}

// DemoMaze returns the 10x10 maze shown by the maze view. Its start is the
// top-left cell and its goal the bottom-right one.
func DemoMaze() *domain.Dataset {
	var walls []domain.Position
	for c := 2; c <= 8; c++ {
		walls = append(walls, domain.Position{Row: 1, Col: c})
	}
	for r := 2; r <= 6; r++ {
		walls = append(walls, domain.Position{Row: r, Col: 5})
	}
	for c := 1; c <= 6; c++ {
		walls = append(walls, domain.Position{Row: 7, Col: c})
	}
	walls = append(walls, domain.Position{Row: 5, Col: 7}, domain.Position{Row: 5, Col: 8})
	return domain.NewGridDataset(domain.NewGrid(10, 10, walls...))
}

// ParseValues reads a comma or whitespace separated list of integers.
func ParseValues(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	values := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", f, err)
		}
		values = append(values, v)
	}
	return values, nil
}

// ParsePosition reads "row,col".
func ParsePosition(s string) (domain.Position, error) {
	values, err := ParseValues(s)
	if err != nil {
		return domain.Position{}, err
	}
	if len(values) != 2 {
		return domain.Position{}, fmt.Errorf("expected row,col, got %q", s)
	}
	return domain.Position{Row: values[0], Col: values[1]}, nil
}
