package session

import (
	"fmt"

	"github.com/aretw0/stepwise/pkg/dataset"
	"github.com/aretw0/stepwise/pkg/domain"
)

// Request describes a session as clients submit it over the wire.
// Exactly one data source is used, in order: Values, Grid, Random, Maze.
type Request struct {
	Algorithms []string       `json:"algorithms" mapstructure:"algorithms"`
	Values     []int          `json:"values,omitempty" mapstructure:"values"`
	Grid       []string       `json:"grid,omitempty" mapstructure:"grid"`
	Random     *RandomRequest `json:"random,omitempty" mapstructure:"random"`
	Maze       *MazeRequest   `json:"maze,omitempty" mapstructure:"maze"`
	Target     int            `json:"target" mapstructure:"target"`
	Start      []int          `json:"start,omitempty" mapstructure:"start"` // [row, col]
	Goal       []int          `json:"goal,omitempty" mapstructure:"goal"`  // [row, col], defaults to the bottom-right cell
	Direction  string         `json:"direction,omitempty" mapstructure:"direction"`
}

// RandomRequest asks for a generated sequence.
type RandomRequest struct {
	Min      *int   `json:"min,omitempty" mapstructure:"min"`
	Max      *int   `json:"max,omitempty" mapstructure:"max"`
	Size     *int   `json:"size,omitempty" mapstructure:"size"`
	Seed     uint64 `json:"seed" mapstructure:"seed"`
	Distinct bool   `json:"distinct" mapstructure:"distinct"`
}

// MazeRequest asks for a generated grid. Zero rows selects the demo maze.
type MazeRequest struct {
	Rows    int     `json:"rows" mapstructure:"rows"`
	Cols    int     `json:"cols" mapstructure:"cols"`
	Density float64 `json:"density" mapstructure:"density"`
	Seed    uint64  `json:"seed" mapstructure:"seed"`
}

// Resolve parses the algorithm names and builds or generates the dataset.
func (req Request) Resolve() ([]domain.AlgorithmID, *domain.Dataset, domain.Params, error) {
	var params domain.Params
	algorithms := make([]domain.AlgorithmID, 0, len(req.Algorithms))
	for _, name := range req.Algorithms {
		id, err := domain.ParseAlgorithm(name)
		if err != nil {
			return nil, nil, params, err
		}
		algorithms = append(algorithms, id)
	}

	dir, err := domain.ParseDirection(req.Direction)
	if err != nil {
		return nil, nil, params, err
	}
	params.Direction = dir
	params.Target = req.Target

	var data *domain.Dataset
	switch {
	case req.Values != nil:
		data = domain.NewSequence(req.Values...)
	case len(req.Grid) > 0:
		g, err := domain.ParseGrid(req.Grid)
		if err != nil {
			return nil, nil, params, err
		}
		data = domain.NewGridDataset(g)
	case req.Random != nil:
		cfg := dataset.DefaultSequence()
		if req.Random.Min != nil {
			cfg.Min = *req.Random.Min
		}
		if req.Random.Max != nil {
			cfg.Max = *req.Random.Max
		}
		if req.Random.Size != nil {
			cfg.Size = *req.Random.Size
		}
		cfg.Distinct = req.Random.Distinct
		if data, err = dataset.NewGenerator(req.Random.Seed).Sequence(cfg); err != nil {
			return nil, nil, params, err
		}
	case req.Maze != nil:
		if req.Maze.Rows == 0 {
			data = dataset.DemoMaze()
			break
		}
		corners := []domain.Position{{}, {Row: req.Maze.Rows - 1, Col: req.Maze.Cols - 1}}
		if data, err = dataset.NewGenerator(req.Maze.Seed).Grid(req.Maze.Rows, req.Maze.Cols, req.Maze.Density, corners...); err != nil {
			return nil, nil, params, err
		}
	}

	if data != nil && data.IsGrid() {
		params.Goal = domain.Position{Row: data.Grid.Rows - 1, Col: data.Grid.Cols - 1}
	}
	if params.Start, err = position(req.Start, params.Start); err != nil {
		return nil, nil, params, fmt.Errorf("start: %w", err)
	}
	if params.Goal, err = position(req.Goal, params.Goal); err != nil {
		return nil, nil, params, fmt.Errorf("goal: %w", err)
	}
	return algorithms, data, params, nil
}

func position(rc []int, fallback domain.Position) (domain.Position, error) {
	switch len(rc) {
	case 0:
		return fallback, nil
	case 2:
		return domain.Position{Row: rc[0], Col: rc[1]}, nil
	default:
		return fallback, fmt.Errorf("expected [row, col], got %v", rc)
	}
}
