package strategy

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/desertthunder/qfill/internal/models"
)

// mockSearcher is a test double for [Searcher] backed by static maps.
type mockSearcher struct {
	byArtist map[string][]models.Track
	byGenre  map[string][]models.Track
	err      error
}

func (m *mockSearcher) SearchArtist(ctx context.Context, artist string) ([]models.Track, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byArtist[artist], nil
}

func (m *mockSearcher) SearchGenre(ctx context.Context, genre string) ([]models.Track, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byGenre[genre], nil
}

func tracks(uris ...string) []models.Track {
	out := make([]models.Track, len(uris))
	for i, uri := range uris {
		out[i] = models.Track{URI: uri}
	}
	return out
}

func uriSet(batch []models.Track) map[string]struct{} {
	set := make(map[string]struct{}, len(batch))
	for _, t := range batch {
		set[t.URI] = struct{}{}
	}
	return set
}

func TestArtistSimilaritySelect(t *testing.T) {
	lib := &mockSearcher{
		byArtist: map[string][]models.Track{
			"Queen": tracks("q/1", "q/2", "q/3", "q/4"),
		},
	}
	rng := rand.New(rand.NewSource(1))

	t.Run("respects exclusions and batch size", func(t *testing.T) {
		s := NewArtistSimilarity("Queen", rng)
		exclude := map[string]struct{}{"q/2": {}}

		batch, err := s.Select(context.Background(), lib, exclude, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(batch) != 2 {
			t.Fatalf("expected 2 tracks, got %d", len(batch))
		}
		for _, track := range batch {
			if track.URI == "q/2" {
				t.Error("excluded track was selected")
			}
		}
	})

	t.Run("batch larger than pool returns whole pool", func(t *testing.T) {
		s := NewArtistSimilarity("Queen", rng)

		batch, err := s.Select(context.Background(), lib, nil, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(batch) != 4 {
			t.Errorf("expected 4 tracks, got %d", len(batch))
		}
	})

	t.Run("empty artist yields empty batch", func(t *testing.T) {
		s := NewArtistSimilarity("", rng)

		batch, err := s.Select(context.Background(), lib, nil, 5)
		if err != nil || len(batch) != 0 {
			t.Errorf("expected empty batch without error, got %d tracks, err=%v", len(batch), err)
		}
	})

	t.Run("unknown artist yields empty batch", func(t *testing.T) {
		s := NewArtistSimilarity("Nobody", rng)

		batch, err := s.Select(context.Background(), lib, nil, 5)
		if err != nil || len(batch) != 0 {
			t.Errorf("expected empty batch without error, got %d tracks, err=%v", len(batch), err)
		}
	})

	t.Run("search error propagates", func(t *testing.T) {
		failing := &mockSearcher{err: errors.New("boom")}
		s := NewArtistSimilarity("Queen", rng)

		if _, err := s.Select(context.Background(), failing, nil, 5); err == nil {
			t.Error("expected error from searcher")
		}
	})
}

func TestGenreRadioSelect(t *testing.T) {
	lib := &mockSearcher{
		byGenre: map[string][]models.Track{
			"Holiday":   tracks("h/1", "h/2", "h/3", "both/1"),
			"Christmas": tracks("c/1", "c/2", "c/3", "both/1"),
		},
	}
	rng := rand.New(rand.NewSource(7))

	t.Run("unions genres and dedups overlap", func(t *testing.T) {
		s := NewGenreRadio([]string{"Holiday", "Christmas"}, rng)

		batch, err := s.Select(context.Background(), lib, nil, 20)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// 4 + 4 tracks with one URI shared between genres
		if len(batch) != 7 {
			t.Fatalf("expected 7 distinct tracks, got %d", len(batch))
		}
		if len(uriSet(batch)) != len(batch) {
			t.Error("batch contains duplicate URIs")
		}
	})

	t.Run("caps at batch size", func(t *testing.T) {
		s := NewGenreRadio([]string{"Holiday", "Christmas"}, rng)

		batch, err := s.Select(context.Background(), lib, nil, 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(batch) != 5 {
			t.Errorf("expected 5 tracks, got %d", len(batch))
		}
	})

	t.Run("fully excluded pool yields empty batch", func(t *testing.T) {
		exclude := map[string]struct{}{}
		for _, uri := range []string{"h/1", "h/2", "h/3", "c/1", "c/2", "c/3", "both/1"} {
			exclude[uri] = struct{}{}
		}

		s := NewGenreRadio([]string{"Holiday", "Christmas"}, rng)
		batch, err := s.Select(context.Background(), lib, exclude, 5)
		if err != nil || len(batch) != 0 {
			t.Errorf("expected empty batch, got %d tracks, err=%v", len(batch), err)
		}
	})

	t.Run("no genres configured yields empty batch", func(t *testing.T) {
		s := NewGenreRadio(nil, rng)
		batch, err := s.Select(context.Background(), lib, nil, 5)
		if err != nil || len(batch) != 0 {
			t.Errorf("expected empty batch, got %d tracks, err=%v", len(batch), err)
		}
	})
}

func TestSampleIsSeededDeterministic(t *testing.T) {
	pool := tracks("a", "b", "c", "d", "e")

	first := sample(append([]models.Track(nil), pool...), nil, 3, rand.New(rand.NewSource(42)))
	second := sample(append([]models.Track(nil), pool...), nil, 3, rand.New(rand.NewSource(42)))

	for i := range first {
		if first[i].URI != second[i].URI {
			t.Fatalf("same seed should give same order: %v vs %v", first, second)
		}
	}
}

func TestForMode(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("genre mode", func(t *testing.T) {
		cfg := models.AutoFillConfig{Mode: models.ModeGenre, Genres: []string{"Jazz"}, Threshold: 1, BatchSize: 1}
		if got := ForMode(cfg, "Queen", rng); got.Name() != "genre" {
			t.Errorf("expected genre strategy, got %s", got.Name())
		}
	})

	t.Run("artist mode prefers configured seed", func(t *testing.T) {
		cfg := models.AutoFillConfig{Mode: models.ModeArtist, SeedArtist: "Seeded", Threshold: 1, BatchSize: 1}
		s := ForMode(cfg, "Playing", rng).(*ArtistSimilarity)
		if s.artist != "Seeded" {
			t.Errorf("expected seed artist, got %s", s.artist)
		}
	})

	t.Run("artist mode falls back to current artist", func(t *testing.T) {
		cfg := models.AutoFillConfig{Mode: models.ModeArtist, Threshold: 1, BatchSize: 1}
		s := ForMode(cfg, "Playing", rng).(*ArtistSimilarity)
		if s.artist != "Playing" {
			t.Errorf("expected current artist, got %s", s.artist)
		}
	})
}
