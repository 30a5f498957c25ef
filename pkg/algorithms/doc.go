// Package algorithms implements the catalogue algorithms as resumable steppers.
//
// Every stepper is a small state machine over an explicit program counter,
// so a run can be suspended after any Step and continued later without
// replaying or skipping work. Algorithms that are naturally recursive keep
// their pending ranges on an explicit stack.
//
// A stepper owns the Dataset it is constructed with; callers that need to
// keep their data should pass a clone (the catalogue does this).
package algorithms
