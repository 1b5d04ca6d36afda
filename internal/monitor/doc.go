// Package monitor implements the auto-fill loop: a scheduled state machine
// that watches the daemon's queue and tops it up before it runs dry.
//
// Each tick reads one atomic settings snapshot, evaluates the queue against
// the refill threshold, runs the configured selection strategy against the
// dedup set, and applies the result through the serialized daemon client.
// Ticks are not reentrant; a tick still running when the timer fires again
// causes the new tick to be dropped. Daemon failures are contained within the
// tick that saw them and never stop the loop.
//
// Outcomes are published as best-effort [Notification] values for the web
// layer and persisted through an optional [Recorder].
package monitor
