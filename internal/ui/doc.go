// Package ui renders daemon state for the terminal using lipgloss styles.
//
// The web remote is the primary interface; these helpers back the CLI's
// status, queue, and history commands.
package ui
