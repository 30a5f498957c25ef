package domain

import "errors"

// ErrNoDataset is returned when a run is started before a dataset was generated.
var ErrNoDataset = errors.New("no dataset")

// ErrUnknownAlgorithm is returned for identifiers missing from the catalogue.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// ErrDatasetKind is returned when an algorithm receives a dataset of the wrong shape
// (a grid for a sort, a sequence for pathfinding).
var ErrDatasetKind = errors.New("dataset kind does not match algorithm")

// ErrInvalidTransition is returned when a control call is not allowed in the current run-state.
var ErrInvalidTransition = errors.New("invalid run-state transition")

// ErrSessionNotFound is returned when a session ID cannot be found.
var ErrSessionNotFound = errors.New("session not found")

// ErrResultNotFound is returned when a run summary cannot be found in a store.
var ErrResultNotFound = errors.New("result not found")
