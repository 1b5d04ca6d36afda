// Package queue holds the monitor's read model of the playback queue: the
// dedup exclusion set computed from a fresh daemon snapshot, and the bounded
// history of recently auto-enqueued tracks.
package queue
