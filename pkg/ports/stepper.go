package ports

import "github.com/aretw0/stepwise/pkg/domain"

// Stepper is one resumable instance of one algorithm.
//
// Step performs the work of exactly one pseudocode line and returns the
// resulting Step. Once a terminal Step has been returned, Done reports true
// and every later Step call returns that same terminal Step again.
type Stepper interface {
	Algorithm() domain.AlgorithmID
	Step() domain.Step
	Done() bool
}
