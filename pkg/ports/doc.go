/*
Package ports defines the driven ports (interfaces) for the stepwise engine.

These interfaces decouple the scheduler from concrete algorithm machines and the
session layer from storage backends.

# Key Interfaces

  - Stepper: one resumable algorithm instance advancing one pseudocode line per call.
  - ResultStore: persists final RunSummary values (Memory, Redis, SQLite).
*/
package ports
