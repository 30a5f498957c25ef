package loam

import (
	"fmt"
	"strings"

	"github.com/aretw0/stepwise/pkg/domain"
)

// ScenarioMetadata is the frontmatter of a scenario document.
// It uses "mapstructure" tags to match the YAML keys.
type ScenarioMetadata struct {
	ID    string `json:"id" mapstructure:"id"`
	Title string `json:"title" mapstructure:"title"`

	// Algorithm is shorthand for a single-entry Algorithms list.
	Algorithm  string   `json:"algorithm" mapstructure:"algorithm"`
	Algorithms []string `json:"algorithms" mapstructure:"algorithms"`

	// Values is a sequence dataset; Grid is a maze in text rows ('#' walls).
	Values []int    `json:"values" mapstructure:"values"`
	Grid   []string `json:"grid" mapstructure:"grid"`

	Target    int    `json:"target" mapstructure:"target"`
	Start     []int  `json:"start" mapstructure:"start"` // [row, col]
	Goal      []int  `json:"goal" mapstructure:"goal"`   // [row, col], defaults to the bottom-right cell
	Direction string `json:"direction" mapstructure:"direction"`
}

// Scenario converts the metadata into a domain scenario.
func (m ScenarioMetadata) Scenario(name, description string) (domain.Scenario, error) {
	sc := domain.Scenario{
		Name:        name,
		Title:       m.Title,
		Description: strings.TrimSpace(description),
	}

	names := m.Algorithms
	if m.Algorithm != "" {
		names = append([]string{m.Algorithm}, names...)
	}
	if len(names) == 0 {
		return sc, fmt.Errorf("scenario %s: %w: none listed", name, domain.ErrUnknownAlgorithm)
	}
	for _, n := range names {
		id, err := domain.ParseAlgorithm(n)
		if err != nil {
			return sc, fmt.Errorf("scenario %s: %w", name, err)
		}
		sc.Algorithms = append(sc.Algorithms, id)
	}

	dir, err := domain.ParseDirection(m.Direction)
	if err != nil {
		return sc, fmt.Errorf("scenario %s: %w", name, err)
	}
	sc.Params = domain.Params{Target: m.Target, Direction: dir}

	switch {
	case len(m.Grid) > 0:
		g, err := domain.ParseGrid(m.Grid)
		if err != nil {
			return sc, fmt.Errorf("scenario %s: %w", name, err)
		}
		sc.Dataset = domain.NewGridDataset(g)
		sc.Params.Goal = domain.Position{Row: g.Rows - 1, Col: g.Cols - 1}
	case m.Values != nil:
		sc.Dataset = domain.NewSequence(m.Values...)
	default:
		return sc, fmt.Errorf("scenario %s: %w", name, domain.ErrNoDataset)
	}

	if sc.Params.Start, err = position(m.Start, sc.Params.Start); err != nil {
		return sc, fmt.Errorf("scenario %s: start: %w", name, err)
	}
	if sc.Params.Goal, err = position(m.Goal, sc.Params.Goal); err != nil {
		return sc, fmt.Errorf("scenario %s: goal: %w", name, err)
	}
	return sc, nil
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
