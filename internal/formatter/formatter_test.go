package formatter

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/qfill/internal/models"
)

func sampleQueue() []models.QueueEntry {
	return []models.QueueEntry{
		{Track: models.Track{URI: "albums/a.flac", Title: "One", Artist: "Queen", Album: "Night"}, Pos: 0, ID: 1},
		{Track: models.Track{URI: "albums/b.flac"}, Pos: 1, ID: 2},
	}
}

func TestQueueToCSV(t *testing.T) {
	data, err := QueueToCSV(sampleQueue())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[1][1] != "albums/a.flac" || rows[1][3] != "Queen" {
		t.Errorf("unexpected first row: %v", rows[1])
	}
	if rows[2][2] != "" {
		t.Errorf("untitled track should have empty title column: %v", rows[2])
	}
}

func TestQueueToText(t *testing.T) {
	out := string(QueueToText(sampleQueue()))

	if !strings.Contains(out, "2 tracks") {
		t.Errorf("missing track count:\n%s", out)
	}
	if !strings.Contains(out, "1. Queen - One") {
		t.Errorf("missing artist - title line:\n%s", out)
	}
	if !strings.Contains(out, "2. albums/b.flac") {
		t.Errorf("untitled track should fall back to URI:\n%s", out)
	}
}

func TestQueueToJSON(t *testing.T) {
	data, err := QueueToJSON(sampleQueue())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded []models.QueueEntry
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[0].URI != "albums/a.flac" {
		t.Errorf("round trip mismatch: %+v", decoded)
	}
}

func TestRefillsToCSV(t *testing.T) {
	records := []models.RefillRecord{
		models.NewRefillRecord(models.ModeGenre, models.RefillOutcomeCompleted, 5, 3, "", []string{"a", "b", "c"}),
	}

	data, err := RefillsToCSV(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if rows[1][1] != "genre" || rows[1][4] != "3" {
		t.Errorf("unexpected row: %v", rows[1])
	}
	if rows[1][6] != "a; b; c" {
		t.Errorf("uris column mismatch: %v", rows[1][6])
	}
}

func TestWriteQueueExport(t *testing.T) {
	dir := t.TempDir()

	t.Run("csv", func(t *testing.T) {
		path := filepath.Join(dir, "out.csv")
		written, err := WriteQueueExport(sampleQueue(), "csv", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if written != path {
			t.Errorf("expected %s, got %s", path, written)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("export file missing: %v", err)
		}
	})

	t.Run("default path for text", func(t *testing.T) {
		cwd, _ := os.Getwd()
		if err := os.Chdir(dir); err != nil {
			t.Fatalf("chdir failed: %v", err)
		}
		t.Cleanup(func() { os.Chdir(cwd) })

		written, err := WriteQueueExport(sampleQueue(), "", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if written != "queue.txt" {
			t.Errorf("expected queue.txt, got %s", written)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if _, err := WriteQueueExport(sampleQueue(), "xml", ""); err == nil {
			t.Error("expected error for unsupported format")
		}
	})
}
