// Package guidance runs the live per-user state machine over a built route.
//
// A Session consumes a sequential stream of position updates and emits one
// guidance event per sample: checkpoint arrival, off-route drift, route
// completion, or nothing. A session belongs to exactly one user and is never
// mutated concurrently; coordinating access across users is the session
// store's job.
package guidance
