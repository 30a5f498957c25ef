/*
Package domain contains the core domain models of the stepwise engine.

It defines the values that flow between algorithm steppers, the scheduler and
renderers. This package is kept pure and free of external dependencies like
I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Dataset: the sequence or grid an algorithm works on.
  - Step: an immutable record of one pseudocode line of progress (snapshot, highlights, line).
  - AlgorithmID / Params / Direction: what to run and how.
  - RunState: the scheduler's run-state machine.
  - RunSummary: the final outcome of one lane, the only persisted value.
*/
package domain
