// Package models defines domain entities for the qfill auto-fill remote.
//
// The package contains two categories of types:
//
// 1. Ephemeral read models, rebuilt each tick from the daemon's authoritative state:
//   - [Track] : Library track metadata keyed by URI
//   - [QueueEntry] : A track together with its queue position and daemon-assigned id
//   - [PlaybackStatus] : Playback state, elapsed time, and queue length
//
// 2. Monitor state:
//   - [AutoFillConfig] : Runtime auto-fill settings, validated at the write boundary
//   - [Mode] : Tagged selection-strategy variant (artist similarity or genre radio)
//   - [RefillRecord] : Persisted outcome of one monitor tick
//
// The daemon is the sole authority on queue contents and ordering; nothing here
// caches an order across ticks.
package models
