// Package mpd wraps the daemon's line-based control protocol behind the small
// command surface the auto-fill monitor and the web remote need: status, queue
// snapshot, tag search, enqueue, and basic transport controls.
//
// [Client] serializes every command against a single logical connection, so a
// monitor-issued enqueue and a user-issued clear can never interleave
// mid-command. Each call carries a bounded deadline; a call that cannot finish
// in time drops the connection and fails instead of hanging the caller. The
// connection is re-established lazily on the next command.
//
// Failures are classified with the shared sentinels: [shared.ErrConnection]
// when the daemon is unreachable (or a command timed out), and
// [shared.ErrProtocol] when a response cannot be interpreted. Both are
// non-fatal to callers.
package mpd
