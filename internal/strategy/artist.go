package strategy

import (
	"context"
	"math/rand"

	"github.com/desertthunder/qfill/internal/models"
)

// ArtistSimilarity continues the queue with more tracks by the seed artist.
type ArtistSimilarity struct {
	artist string
	rng    *rand.Rand
}

// NewArtistSimilarity creates the artist-continuation variant. An empty
// artist yields empty batches (there is nothing to search for).
func NewArtistSimilarity(artist string, rng *rand.Rand) *ArtistSimilarity {
	return &ArtistSimilarity{artist: artist, rng: rng}
}

func (s *ArtistSimilarity) Name() string { return "artist" }

// Select implements [Strategy].
func (s *ArtistSimilarity) Select(ctx context.Context, lib Searcher, exclude map[string]struct{}, n int) ([]models.Track, error) {
	if s.artist == "" {
		return nil, nil
	}

	pool, err := lib.SearchArtist(ctx, s.artist)
	if err != nil {
		return nil, err
	}

	return sample(pool, exclude, n, s.rng), nil
}
