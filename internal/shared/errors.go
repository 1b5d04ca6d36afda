package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Daemon protocol errors
	ErrConnection = fmt.Errorf("daemon unreachable")
	ErrProtocol   = fmt.Errorf("malformed daemon response")
	ErrTimeout    = fmt.Errorf("operation timed out")

	// Queue and library errors
	ErrTrackNotFound = fmt.Errorf("track not found")
	ErrEmptyQueue    = fmt.Errorf("queue is empty")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
