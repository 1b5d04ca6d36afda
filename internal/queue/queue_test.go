package queue

import (
	"fmt"
	"testing"

	"github.com/desertthunder/qfill/internal/models"
)

func TestRecentHistoryEviction(t *testing.T) {
	h := NewRecentHistory(3)

	h.Add("a", "b", "c")
	if h.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", h.Len())
	}

	h.Add("d")
	if h.Len() != 3 {
		t.Fatalf("capacity should cap length at 3, got %d", h.Len())
	}

	if h.Contains("a") {
		t.Error("oldest entry should have been evicted")
	}

	for _, uri := range []string{"b", "c", "d"} {
		if !h.Contains(uri) {
			t.Errorf("expected %q to be retained", uri)
		}
	}

	got := h.Snapshot()
	want := []string{"b", "c", "d"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("snapshot order = %v, want %v", got, want)
		}
	}
}

func TestRecentHistoryReAddRefreshes(t *testing.T) {
	h := NewRecentHistory(3)

	h.Add("a", "b", "c")
	h.Add("a") // a becomes newest
	h.Add("d") // evicts b, not a

	if !h.Contains("a") {
		t.Error("re-added entry should survive the next eviction")
	}
	if h.Contains("b") {
		t.Error("b should have been evicted")
	}
}

func TestRecentHistoryMinimumCapacity(t *testing.T) {
	h := NewRecentHistory(0)
	h.Add("a", "b")

	if h.Len() != 1 || !h.Contains("b") {
		t.Errorf("zero capacity should clamp to 1, got %v", h.Snapshot())
	}
}

func TestExclusions(t *testing.T) {
	entries := []models.QueueEntry{
		{Track: models.Track{URI: "queued/1.flac"}, Pos: 0, ID: 1},
		{Track: models.Track{URI: "queued/2.flac"}, Pos: 1, ID: 2},
	}

	h := NewRecentHistory(4)
	h.Add("recent/1.flac", "queued/2.flac")

	exclude := Exclusions(entries, h)

	for _, uri := range []string{"queued/1.flac", "queued/2.flac", "recent/1.flac"} {
		if _, ok := exclude[uri]; !ok {
			t.Errorf("expected %q in exclusion set", uri)
		}
	}

	if len(exclude) != 3 {
		t.Errorf("overlapping URIs should count once, got %d entries", len(exclude))
	}
}

func TestExclusionsNilHistory(t *testing.T) {
	exclude := Exclusions([]models.QueueEntry{{Track: models.Track{URI: "x"}}}, nil)
	if len(exclude) != 1 {
		t.Errorf("expected 1 entry, got %d", len(exclude))
	}
}

func TestRecentHistoryLargeWindow(t *testing.T) {
	h := NewRecentHistory(10)
	for i := 0; i < 25; i++ {
		h.Add(fmt.Sprintf("track/%d", i))
	}

	if h.Len() != 10 {
		t.Fatalf("expected 10 retained, got %d", h.Len())
	}
	if h.Contains("track/14") {
		t.Error("track/14 should have been evicted")
	}
	if !h.Contains("track/15") {
		t.Error("track/15 should be retained")
	}
}
