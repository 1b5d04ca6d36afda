// Package repositories provides the persistence layer for monitor outcomes.
//
// The refill log is append-only; records are written once per tick and read
// back newest-first for the web UI's history view.
package repositories
