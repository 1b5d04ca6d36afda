package strategy

import (
	"context"
	"math/rand"

	"github.com/desertthunder/qfill/internal/models"
)

// Searcher is the library-lookup slice of the daemon client that strategies
// consume.
type Searcher interface {
	SearchArtist(ctx context.Context, artist string) ([]models.Track, error)
	SearchGenre(ctx context.Context, genre string) ([]models.Track, error)
}

// Strategy picks an ordered batch of candidate tracks from the library.
type Strategy interface {
	// Name identifies the variant in logs and notifications.
	Name() string

	// Select returns up to n tracks, none of which appear in exclude and no
	// URI twice. An empty slice means no candidates this tick.
	Select(ctx context.Context, lib Searcher, exclude map[string]struct{}, n int) ([]models.Track, error)
}

// ForMode builds the strategy variant for one tick's config snapshot.
// In artist mode the configured seed artist wins over the currently playing
// artist when both are set.
func ForMode(cfg models.AutoFillConfig, currentArtist string, rng *rand.Rand) Strategy {
	switch cfg.Mode {
	case models.ModeGenre:
		return NewGenreRadio(cfg.Genres, rng)
	default:
		artist := cfg.SeedArtist
		if artist == "" {
			artist = currentArtist
		}
		return NewArtistSimilarity(artist, rng)
	}
}

// sample filters pool through exclude, drops duplicate URIs, shuffles
// uniformly without replacement, and returns min(n, len(pool)) tracks.
func sample(pool []models.Track, exclude map[string]struct{}, n int, rng *rand.Rand) []models.Track {
	seen := make(map[string]struct{}, len(pool))
	candidates := make([]models.Track, 0, len(pool))

	for _, track := range pool {
		if _, dup := seen[track.URI]; dup {
			continue
		}
		if _, excluded := exclude[track.URI]; excluded {
			continue
		}
		seen[track.URI] = struct{}{}
		candidates = append(candidates, track)
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if n > len(candidates) {
		n = len(candidates)
	}
	return candidates[:n]
}
