package models

import (
	"fmt"
	"time"

	"github.com/desertthunder/qfill/internal/shared"
)

// Track represents a library track as reported by the daemon.
// Immutable for the lifetime of a tick.
type Track struct {
	URI    string   // Stable identifier (library path)
	Title  string
	Artist string
	Album  string
	Genres []string
}

// QueueEntry is a track in the playback queue together with its position and
// the daemon-assigned queue id.
type QueueEntry struct {
	Track
	Pos int // Zero-based queue position
	ID  int // Daemon-assigned queue id, stable across moves
}

// PlayState is the daemon's reported playback state.
type PlayState int

const (
	StateStopped PlayState = iota
	StatePlaying
	StatePaused
)

func (s PlayState) String() string {
	switch s {
	case StatePlaying:
		return "play"
	case StatePaused:
		return "pause"
	default:
		return "stop"
	}
}

// ParsePlayState maps the daemon's state field to a [PlayState].
func ParsePlayState(s string) PlayState {
	switch s {
	case "play":
		return StatePlaying
	case "pause":
		return StatePaused
	default:
		return StateStopped
	}
}

// PlaybackStatus is a snapshot of the daemon's player state.
type PlaybackStatus struct {
	State       PlayState
	CurrentURI  string  // URI of the current track, empty when stopped
	CurrentID   int     // Queue id of the current track, -1 when none
	Elapsed     float64 // Seconds into the current track
	QueueLength int
}

// Mode selects the candidate-picking strategy used by the monitor.
type Mode int

const (
	ModeArtist Mode = iota // Continue with tracks by the seed/current artist
	ModeGenre              // Genre-scoped radio station
)

func (m Mode) String() string {
	switch m {
	case ModeGenre:
		return "genre"
	default:
		return "artist"
	}
}

// ParseMode converts a mode name to a [Mode].
// Unknown names are rejected with [shared.ErrInvalidConfig].
func ParseMode(s string) (Mode, error) {
	switch s {
	case "artist":
		return ModeArtist, nil
	case "genre":
		return ModeGenre, nil
	default:
		return ModeArtist, fmt.Errorf("%w: unknown mode %q", shared.ErrInvalidConfig, s)
	}
}

// AutoFillConfig holds the mutable runtime settings the monitor reads once per
// tick. The UI layer writes it through the settings store; the monitor never
// mutates it.
type AutoFillConfig struct {
	Enabled    bool
	Mode       Mode
	Threshold  int // Refill when queue length <= Threshold
	BatchSize  int // Tracks requested per refill
	Genres     []string
	SeedArtist string // Overrides the current artist in artist mode when set
}

// Validate rejects settings the monitor must never observe.
func (c AutoFillConfig) Validate() error {
	if c.Threshold < 1 {
		return fmt.Errorf("%w: threshold must be >= 1, got %d", shared.ErrInvalidConfig, c.Threshold)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("%w: batch_size must be >= 1, got %d", shared.ErrInvalidConfig, c.BatchSize)
	}
	if c.Mode != ModeArtist && c.Mode != ModeGenre {
		return fmt.Errorf("%w: unknown mode %d", shared.ErrInvalidConfig, int(c.Mode))
	}
	return nil
}

// Clone returns a deep copy so a snapshot never aliases the stored genre slice.
func (c AutoFillConfig) Clone() AutoFillConfig {
	out := c
	out.Genres = append([]string(nil), c.Genres...)
	return out
}

// Refill outcome enumeration
const (
	RefillOutcomeCompleted = "completed"
	RefillOutcomeSkipped   = "skipped"
	RefillOutcomeError     = "error"
)

// RefillRecord is the persisted outcome of one monitor tick.
type RefillRecord struct {
	ID        string
	CreatedAt time.Time
	Mode      Mode
	Outcome   string // completed | skipped | error
	Requested int
	Added     int
	Reason    string   // Skip reason or error detail
	URIs      []string // URIs actually enqueued
}

// NewRefillRecord builds a record with a fresh id and timestamp.
func NewRefillRecord(mode Mode, outcome string, requested, added int, reason string, uris []string) RefillRecord {
	return RefillRecord{
		ID:        shared.GenerateID(),
		CreatedAt: time.Now().UTC(),
		Mode:      mode,
		Outcome:   outcome,
		Requested: requested,
		Added:     added,
		Reason:    reason,
		URIs:      append([]string(nil), uris...),
	}
}
