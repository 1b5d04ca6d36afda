package ui

import (
	"fmt"
	"strings"

	"github.com/desertthunder/qfill/internal/models"
	"github.com/desertthunder/qfill/internal/shared"
)

// RenderStatus formats a playback snapshot for terminal output.
func RenderStatus(status models.PlaybackStatus) string {
	var b strings.Builder

	b.WriteString(styles.title.Render("Playback") + "\n")

	state := status.State.String()
	switch status.State {
	case models.StatePlaying:
		state = styles.ok.Render(state)
	case models.StatePaused:
		state = styles.warn.Render(state)
	default:
		state = styles.help.Render(state)
	}
	b.WriteString(fmt.Sprintf("State:  %s\n", state))

	if status.State != models.StateStopped && status.CurrentURI != "" {
		b.WriteString(fmt.Sprintf("Track:  %s\n", status.CurrentURI))
		b.WriteString(fmt.Sprintf("At:     %s\n", shared.FormatElapsed(status.Elapsed)))
	}
	b.WriteString(fmt.Sprintf("Queue:  %d tracks\n", status.QueueLength))

	return b.String()
}

// RenderQueue formats queue contents, marking the current track.
func RenderQueue(entries []models.QueueEntry, currentID int) string {
	if len(entries) == 0 {
		return styles.help.Render("Queue is empty") + "\n"
	}

	var b strings.Builder
	b.WriteString(styles.title.Render(fmt.Sprintf("Queue (%d tracks)", len(entries))) + "\n")

	for _, entry := range entries {
		line := fmt.Sprintf("%3d. %s", entry.Pos+1, describe(entry.Track))
		if entry.ID >= 0 && entry.ID == currentID {
			line = styles.ok.Render("▶ " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}

// RenderRefills formats recent refill outcomes, newest first.
func RenderRefills(records []models.RefillRecord) string {
	if len(records) == 0 {
		return styles.help.Render("No refills recorded") + "\n"
	}

	var b strings.Builder
	b.WriteString(styles.title.Render("Recent refills") + "\n")

	for _, record := range records {
		stamp := record.CreatedAt.Format("2006-01-02 15:04:05")
		var outcome string
		switch record.Outcome {
		case models.RefillOutcomeCompleted:
			outcome = styles.ok.Render(fmt.Sprintf("added %d/%d", record.Added, record.Requested))
		case models.RefillOutcomeSkipped:
			outcome = styles.warn.Render("skipped: " + record.Reason)
		default:
			outcome = styles.err.Render("error: " + record.Reason)
		}
		b.WriteString(fmt.Sprintf("%s  [%s]  %s\n", stamp, record.Mode, outcome))
	}

	return b.String()
}

// Success renders a green confirmation line.
func Success(msg string) string {
	return styles.ok.Render(msg)
}

// Hint renders dimmed helper text.
func Hint(msg string) string {
	return styles.help.Render(msg)
}

func describe(track models.Track) string {
	if track.Title == "" {
		return track.URI
	}
	if track.Artist == "" {
		return track.Title
	}
	return fmt.Sprintf("%s - %s", track.Artist, track.Title)
}
