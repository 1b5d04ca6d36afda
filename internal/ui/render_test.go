package ui

import (
	"strings"
	"testing"

	"github.com/desertthunder/qfill/internal/models"
)

func TestRenderStatus(t *testing.T) {
	t.Run("playing shows track and position", func(t *testing.T) {
		out := RenderStatus(models.PlaybackStatus{
			State:       models.StatePlaying,
			CurrentURI:  "albums/a.flac",
			Elapsed:     65,
			QueueLength: 3,
		})

		for _, want := range []string{"albums/a.flac", "1:05", "3 tracks"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("stopped omits track line", func(t *testing.T) {
		out := RenderStatus(models.PlaybackStatus{State: models.StateStopped, QueueLength: 0})
		if strings.Contains(out, "Track:") {
			t.Errorf("stopped status should not show a track:\n%s", out)
		}
	})
}

func TestRenderQueue(t *testing.T) {
	entries := []models.QueueEntry{
		{Track: models.Track{URI: "a.flac", Title: "One", Artist: "Queen"}, Pos: 0, ID: 1},
		{Track: models.Track{URI: "b.flac"}, Pos: 1, ID: 2},
	}

	out := RenderQueue(entries, 1)
	if !strings.Contains(out, "Queen - One") {
		t.Errorf("expected artist - title form:\n%s", out)
	}
	if !strings.Contains(out, "b.flac") {
		t.Errorf("untitled track should fall back to URI:\n%s", out)
	}
	if !strings.Contains(out, "▶") {
		t.Errorf("current track marker missing:\n%s", out)
	}

	t.Run("empty queue", func(t *testing.T) {
		if out := RenderQueue(nil, -1); !strings.Contains(out, "empty") {
			t.Errorf("expected empty message, got %q", out)
		}
	})
}

func TestRenderRefills(t *testing.T) {
	records := []models.RefillRecord{
		models.NewRefillRecord(models.ModeArtist, models.RefillOutcomeCompleted, 5, 5, "", []string{"a"}),
		models.NewRefillRecord(models.ModeGenre, models.RefillOutcomeSkipped, 5, 0, "no_candidates", nil),
	}

	out := RenderRefills(records)
	if !strings.Contains(out, "added 5/5") {
		t.Errorf("completed outcome missing:\n%s", out)
	}
	if !strings.Contains(out, "no_candidates") {
		t.Errorf("skip reason missing:\n%s", out)
	}
}
