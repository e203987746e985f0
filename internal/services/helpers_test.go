package services

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/temcen/songmatch/internal/catalog"
	"github.com/temcen/songmatch/internal/config"
	"github.com/temcen/songmatch/pkg/models"
)

type MockCatalogLoader struct {
	mock.Mock
}

func (m *MockCatalogLoader) Load(ctx context.Context) ([]models.Song, catalog.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, catalog.Stats{}, args.Error(2)
	}
	return args.Get(0).([]models.Song), args.Get(1).(catalog.Stats), args.Error(2)
}

type MockLiveLookup struct {
	mock.Mock
}

func (m *MockLiveLookup) Lookup(ctx context.Context, query string) (*models.LiveTrack, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LiveTrack), args.Error(1)
}

func song(title, artist, genre string, d, e, t, v float64) models.Song {
	return models.Song{
		Identity: models.Identity{Title: title, Artist: artist, Genre: genre},
		Features: models.AudioFeatures{Danceability: d, Energy: e, Tempo: t, Valence: v},
	}
}

func testCatalog() []models.Song {
	return []models.Song{
		song("Sunrise", "Lumen", "pop", 0.72, 0.81, 124, 0.86),
		song("Rainfall", "Grey Skies", "acoustic", 0.31, 0.22, 78, 0.18),
		song("Overdrive", "Voltage", "rock", 0.55, 0.95, 160, 0.62),
		song("Drift", "Lowtide", "chill", 0.48, 0.35, 92, 0.52),
		song("Sunrise", "Another Band", "Rock", 0.40, 0.60, 140, 0.30),
		song("Bloom", "Petal", "pop", 0.70, 0.79, 122, 0.84),
		song("Static", "Voltage", "rock", 0.52, 0.88, 150, 0.41),
	}
}

func testConfig() *config.RecommendationConfig {
	return &config.RecommendationConfig{
		DefaultCount: 5,
		MaxCount:     100,
		SampleSize:   3,
		SampleSeed:   42,
		TopGenres:    10,
	}
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

// newLoadedService returns a service whose catalog has been loaded from songs.
func newLoadedService(t *testing.T, songs []models.Song, live LiveLookup) *RecommendationService {
	t.Helper()
	loader := new(MockCatalogLoader)
	loader.On("Load", mock.Anything).Return(songs, catalog.Stats{Read: len(songs), Kept: len(songs)}, nil)

	svc := NewRecommendationService(loader, live, testConfig(), testLogger())
	_, err := svc.Reload(context.Background())
	require.NoError(t, err)
	return svc
}

func recTitles(recs []models.Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Title
	}
	return out
}
