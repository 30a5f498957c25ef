/*
Package session runs one or more algorithms side by side over the same data.

A Session pairs a scheduler with the lanes built for it and reports every
state change, step and finished lane through domain.LifecycleHooks. The
Manager keeps live sessions by ID, serializes access to each of them and
persists a RunSummary to a ports.ResultStore whenever a lane finishes.
*/
package session
