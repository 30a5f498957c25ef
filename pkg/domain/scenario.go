package domain

import "errors"

// ErrScenarioNotFound is returned when a named scenario does not exist.
var ErrScenarioNotFound = errors.New("scenario not found")

// Scenario is a stored, repeatable run setup: which algorithms to run on
// which data with which parameters.
type Scenario struct {
	Name        string        `json:"name"`
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	Algorithms  []AlgorithmID `json:"algorithms"`
	Dataset     *Dataset      `json:"dataset"`
	Params      Params        `json:"params"`
}
