package monitor

import (
	"errors"
	"time"

	"github.com/desertthunder/qfill/internal/models"
	"github.com/desertthunder/qfill/internal/shared"
)

// Notification is a tick-transition event published for the UI layer.
// Delivery is best-effort; a missed notification never affects the queue.
type Notification struct {
	ID     string    `json:"id"`
	Kind   Kind      `json:"kind"`
	Mode   string    `json:"mode"`
	Count  int       `json:"count,omitempty"`  // Tracks added (refill_completed)
	Reason string    `json:"reason,omitempty"` // Skip reason (refill_skipped)
	Detail string    `json:"detail,omitempty"` // Error detail (error)
	At     time.Time `json:"at"`
}

// Notification kind enumeration
type Kind int

const (
	RefillStarted Kind = iota
	RefillCompleted
	RefillSkipped
	RefillError
)

func (k Kind) String() string {
	switch k {
	case RefillStarted:
		return "refill_started"
	case RefillCompleted:
		return "refill_completed"
	case RefillSkipped:
		return "refill_skipped"
	case RefillError:
		return "error"
	default:
		return ""
	}
}

// MarshalText renders the kind name for JSON payloads.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func startedNotification(mode models.Mode) Notification {
	return Notification{
		ID:   shared.GenerateID(),
		Kind: RefillStarted,
		Mode: mode.String(),
		At:   time.Now().UTC(),
	}
}

func completedNotification(mode models.Mode, count int) Notification {
	return Notification{
		ID:    shared.GenerateID(),
		Kind:  RefillCompleted,
		Mode:  mode.String(),
		Count: count,
		At:    time.Now().UTC(),
	}
}

func skippedNotification(mode models.Mode, reason string) Notification {
	return Notification{
		ID:     shared.GenerateID(),
		Kind:   RefillSkipped,
		Mode:   mode.String(),
		Reason: reason,
		At:     time.Now().UTC(),
	}
}

func errorNotification(mode models.Mode, err error) Notification {
	return Notification{
		ID:     shared.GenerateID(),
		Kind:   RefillError,
		Mode:   mode.String(),
		Reason: errorKind(err),
		Detail: err.Error(),
		At:     time.Now().UTC(),
	}
}

// errorKind maps a daemon-layer failure to its taxonomy bucket.
func errorKind(err error) string {
	switch {
	case errors.Is(err, shared.ErrProtocol):
		return "protocol"
	case errors.Is(err, shared.ErrTimeout):
		return "timeout"
	default:
		return "connection"
	}
}
