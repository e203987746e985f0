package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/temcen/songmatch/internal/similarity"
	"github.com/temcen/songmatch/pkg/models"
)

// TopInGenre returns the genre's songs ordered by energy, then danceability,
// tempo and valence, all descending. Equal songs keep catalog order.
func (s *RecommendationService) TopInGenre(ctx context.Context, genre string, n int) (*models.GenreChartResponse, error) {
	start := time.Now()
	resp, err := s.topInGenre(genre, s.count(n))
	s.observe(ModeChart, start, err)
	return resp, err
}

func (s *RecommendationService) topInGenre(genre string, n int) (*models.GenreChartResponse, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: result count must be positive, got %d", similarity.ErrContractViolation, n)
	}
	snap, err := s.active()
	if err != nil {
		return nil, err
	}

	view := snap.space.Genre(genre)
	if view.Len() == 0 {
		return nil, fmt.Errorf("%w: %q", similarity.ErrEmptyGenre, genre)
	}

	songs := make([]models.Song, view.Len())
	for k := range songs {
		songs[k] = snap.space.Entry(view.Index(k))
	}
	sort.SliceStable(songs, func(i, j int) bool {
		return chartLess(songs[j].Features, songs[i].Features)
	})
	if len(songs) > n {
		songs = songs[:n]
	}

	entries := make([]models.ChartEntry, len(songs))
	for i, song := range songs {
		entries[i] = models.ChartEntry{Position: i + 1, Song: song}
	}
	return &models.GenreChartResponse{Genre: songs[0].Genre, Songs: entries}, nil
}

// chartLess orders features lexicographically by energy, danceability, tempo
// and valence.
func chartLess(a, b models.AudioFeatures) bool {
	keys := [][2]float64{
		{a.Energy, b.Energy},
		{a.Danceability, b.Danceability},
		{a.Tempo, b.Tempo},
		{a.Valence, b.Valence},
	}
	for _, k := range keys {
		if k[0] != k[1] {
			return k[0] < k[1]
		}
	}
	return false
}

// Genres returns the distinct catalog genres sorted case-insensitively.
func (s *RecommendationService) Genres(ctx context.Context) ([]string, error) {
	snap, err := s.active()
	if err != nil {
		return nil, err
	}
	genres := make([]string, len(snap.genres))
	copy(genres, snap.genres)
	return genres, nil
}

// Sample returns n catalog songs to try as similarity seeds. The selection is
// drawn from the configured seed, so a given catalog always yields the same
// sample. Zero uses the configured sample size.
func (s *RecommendationService) Sample(ctx context.Context, n int) ([]models.Identity, error) {
	if n == 0 {
		n = s.config.SampleSize
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: sample size must be positive, got %d", similarity.ErrContractViolation, n)
	}
	snap, err := s.active()
	if err != nil {
		return nil, err
	}

	total := snap.space.Len()
	if n > total {
		n = total
	}

	seed := uint64(s.config.SampleSeed)
	rng := rand.New(rand.NewPCG(seed, seed))
	perm := rng.Perm(total)[:n]

	out := make([]models.Identity, n)
	for i, idx := range perm {
		out[i] = snap.space.Entry(idx).Identity
	}
	return out, nil
}

// Stats returns the analysis of the active catalog.
func (s *RecommendationService) Stats(ctx context.Context) (*CatalogStats, error) {
	snap, err := s.active()
	if err != nil {
		return nil, err
	}
	return &CatalogStats{
		Summary:  snap.summary,
		Load:     snap.load,
		LoadedAt: snap.loadedAt,
	}, nil
}

// Moods lists the registered mood profiles.
func (s *RecommendationService) Moods() []models.MoodInfo {
	profiles := similarity.Moods()
	out := make([]models.MoodInfo, len(profiles))
	for i, p := range profiles {
		out[i] = models.MoodInfo{Name: p.Name, Energy: p.Energy, Valence: p.Valence}
	}
	return out
}
