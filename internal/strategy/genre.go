package strategy

import (
	"context"
	"math/rand"

	"github.com/desertthunder/qfill/internal/models"
)

// GenreRadio unions library tracks across the configured genre tags,
// radio-station style.
type GenreRadio struct {
	genres []string
	rng    *rand.Rand
}

// NewGenreRadio creates the genre-radio variant.
func NewGenreRadio(genres []string, rng *rand.Rand) *GenreRadio {
	return &GenreRadio{genres: genres, rng: rng}
}

func (s *GenreRadio) Name() string { return "genre" }

// Select implements [Strategy]. A track matching several configured genres
// enters the pool once; sample dedups by URI.
func (s *GenreRadio) Select(ctx context.Context, lib Searcher, exclude map[string]struct{}, n int) ([]models.Track, error) {
	var pool []models.Track

	for _, genre := range s.genres {
		tracks, err := lib.SearchGenre(ctx, genre)
		if err != nil {
			return nil, err
		}
		pool = append(pool, tracks...)
	}

	return sample(pool, exclude, n, s.rng), nil
}
